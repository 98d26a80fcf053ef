package report

import (
	"fmt"
	"io"
	"sort"

	"sasic/placement"
)

// WritePlacementMap writes the deterministic placement map: one line
// per bound instance, "instance_name slot_id x_um y_um", sorted by
// instance name (§6 "Placement map").
func WritePlacementMap(w io.Writer, pl *placement.Placement) error {
	nl := pl.Netlist()
	fab := pl.Fabric()

	byName := make(map[string]int32, nl.Len())
	names := make([]string, 0, nl.Len())
	for i := int32(0); i < nl.Len(); i++ {
		name := nl.InstanceByIndex(i).Name
		byName[name] = i
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		slotIdx, bound := pl.SlotOf(byName[name])
		if !bound {
			continue
		}
		s := fab.SlotByIndex(slotIdx)
		if _, err := fmt.Fprintf(w, "%s %s %d %d\n", name, s.ID, s.X, s.Y); err != nil {
			return err
		}
	}
	return nil
}
