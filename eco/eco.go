package eco

import (
	"errors"
	"fmt"

	"sasic/cts"
	"sasic/fabric"
	"sasic/netlist"
	"sasic/placement"
)

// ErrEcoConflict is returned when an instance lacks a slot binding or
// two instances would rename to the same slot-qualified name (§4.8,
// §7).
var ErrEcoConflict = errors.New("eco: rename conflict or missing slot binding")

// Rewrite produces the final gate-level netlist (§4.8):
//  1. every original instance is renamed to slot_<slot_id> using its
//     binding in pl;
//  2. every DFF's clock pin is disconnected from the flat clk net and
//     rewired to the leaf clock buffer that drives it in tree;
//  3. tree's buffers are materialized as new instances of bufferCell,
//     wired root-to-leaf, with the root's input on the original clk
//     net.
//
// Rewrite is a pure function: nl, pl, and tree are read-only. The
// rename is a function of each instance's current slot binding alone,
// never of a prior name, so applying Rewrite to its own output (after
// re-placing and re-synthesizing a clock tree over the renamed
// netlist) reproduces the same names — the idempotence required by
// §4.8.
func Rewrite(nl *netlist.Netlist, pl *placement.Placement, tree *cts.Tree, bufferCell netlist.CellKind) (*netlist.Netlist, error) {
	fab := pl.Fabric()
	seen := make(map[string]bool, int(nl.Len())+countNodes(tree.Root))

	specs := make([]netlist.InstanceSpec, 0, int(nl.Len())+countNodes(tree.Root))

	for i := int32(0); i < nl.Len(); i++ {
		inst := nl.InstanceByIndex(i)
		slotIdx, bound := pl.SlotOf(i)
		if !bound {
			return nil, fmt.Errorf("%w: instance %q has no slot binding", ErrEcoConflict, inst.Name)
		}
		name := "slot_" + fab.SlotByIndex(slotIdx).ID
		if seen[name] {
			return nil, fmt.Errorf("%w: rename collision at %q", ErrEcoConflict, name)
		}
		seen[name] = true

		leaf, hasClockPin := tree.LeafOf[i]

		pins := make([]netlist.PinSpec, 0, len(inst.PinIdxs))
		for _, pinIdx := range inst.PinIdxs {
			p := nl.PinByIndex(pinIdx)
			netName := nl.NetByIndex(p.NetIdx).Name

			if inst.Kind == netlist.Seq && p.Role == netlist.RoleSink && netName == netlist.ClockNetName {
				if !hasClockPin {
					return nil, fmt.Errorf("%w: DFF %q has no clock buffer assignment", ErrEcoConflict, inst.Name)
				}
				netName = bufferOutputNet(leaf)
			}

			pins = append(pins, netlist.PinSpec{Name: p.Name, Net: netName, Role: p.Role})
		}

		specs = append(specs, netlist.InstanceSpec{Name: name, Cell: inst.Kind, Pins: pins})
	}

	bufSpecs, err := materializeBuffers(tree.Root, fab, bufferCell, netlist.ClockNetName, seen)
	if err != nil {
		return nil, err
	}
	specs = append(specs, bufSpecs...)

	return netlist.New(specs)
}

// materializeBuffers walks the clock tree depth-first, producing one
// instance spec per buffer node, wired to its parent's output net
// (inputNet for node) and driving its own output net (§4.8 step 1).
func materializeBuffers(node *cts.Node, fab *fabric.Fabric, bufferCell netlist.CellKind, inputNet string, seen map[string]bool) ([]netlist.InstanceSpec, error) {
	name := "slot_" + fab.SlotByIndex(node.SlotIdx).ID
	if seen[name] {
		return nil, fmt.Errorf("%w: rename collision at %q", ErrEcoConflict, name)
	}
	seen[name] = true

	outputNet := bufferOutputNet(node)
	pins := []netlist.PinSpec{
		{Name: "A", Net: inputNet, Role: netlist.RoleSink},
		{Name: "Y", Net: outputNet, Role: netlist.RoleDriver},
	}
	specs := []netlist.InstanceSpec{{Name: name, Cell: bufferCell, Pins: pins}}

	for _, child := range node.Children {
		childSpecs, err := materializeBuffers(child, fab, bufferCell, outputNet, seen)
		if err != nil {
			return nil, err
		}
		specs = append(specs, childSpecs...)
	}
	return specs, nil
}

func countNodes(n *cts.Node) int {
	if n == nil {
		return 0
	}
	total := 1
	for _, c := range n.Children {
		total += countNodes(c)
	}
	return total
}

func bufferOutputNet(n *cts.Node) string {
	return n.ID + "_q"
}
