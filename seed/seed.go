package seed

import (
	"errors"
	"fmt"
	"sort"

	"sasic/fabric"
	"sasic/netlist"
	"sasic/placement"
)

// ErrUnplaceableInstance is returned when no kind-compatible free slot
// exists for an instance that must be placed. This is fatal (§4.5,
// §7): the engine does not retry or partially place.
var ErrUnplaceableInstance = errors.New("seed: no compatible free slot for instance")

// TargetSlotKind maps a logical cell kind to the single physical slot
// kind it may bind to, per placement.Compatible. Exported so other
// packages (anneal) that need to find compatible slots/instances
// share this one definition instead of re-deriving it.
func TargetSlotKind(k netlist.CellKind) fabric.SlotKind {
	switch k {
	case netlist.Seq:
		return fabric.DFF
	case netlist.IO:
		return fabric.IO
	default: // netlist.Comb, netlist.Tie
		return fabric.LOGIC
	}
}

// Run fills pl with a feasible placement using the greedy seeder
// (§4.5):
//  1. rank instances by fanout descending, name ascending;
//  2. for each, in rank order, find the free compatible slot nearest
//     (Manhattan) to a reference point derived from already-placed
//     neighbours, or the die centre if none are placed yet;
//  3. bind it.
//
// pl must be empty (no instance bound) on entry. Run fails fast with
// ErrUnplaceableInstance, wrapped with the offending instance's name,
// on the first instance with no compatible free slot; no partial
// artefact is left bound beyond whatever Run itself just bound (the
// caller should discard pl on error, per §7 "partial artefacts are
// not written on error").
func Run(pl *placement.Placement) error {
	nl := pl.Netlist()
	fab := pl.Fabric()

	order := rankInstances(nl)
	for _, instIdx := range order {
		refX, refY := referencePoint(pl, nl, fab, instIdx)
		kind := TargetSlotKind(nl.InstanceByIndex(instIdx).Kind)

		slotIdx, ok := NearestFreeSlot(pl, fab, kind, refX, refY)
		if !ok {
			return fmt.Errorf("%w: instance %q (kind %v) needs a free %v slot",
				ErrUnplaceableInstance, nl.InstanceByIndex(instIdx).Name, nl.InstanceByIndex(instIdx).Kind, kind)
		}
		if err := pl.Bind(instIdx, slotIdx); err != nil {
			// kindsCompatible was already checked by nearestFreeSlot's
			// kind filter; a bind failure here is a programmer error.
			return fmt.Errorf("seed: unexpected bind failure for instance %q: %w",
				nl.InstanceByIndex(instIdx).Name, err)
		}
	}
	return nil
}

// rankInstances returns instance indices ordered by fanout descending,
// instance name ascending on ties (§4.5 step 1).
func rankInstances(nl *netlist.Netlist) []int32 {
	n := nl.Len()
	order := make([]int32, n)
	for i := range order {
		order[i] = int32(i)
	}
	sort.Slice(order, func(i, j int) bool {
		oi, oj := order[i], order[j]
		fi, fj := nl.Fanout(oi), nl.Fanout(oj)
		if fi != fj {
			return fi > fj
		}
		return nl.InstanceByIndex(oi).Name < nl.InstanceByIndex(oj).Name
	})
	return order
}

// referencePoint computes the point an instance should be placed near:
// the centroid of its already-placed neighbours (driver of its input
// nets, sinks of its output nets), or the die centre if none of its
// neighbours are placed yet (§4.5 step 2).
func referencePoint(pl *placement.Placement, nl *netlist.Netlist, fab *fabric.Fabric, instIdx int32) (int32, int32) {
	var sumX, sumY, count int64

	for _, netIdx := range nl.NetsOf(instIdx) {
		n := nl.NetByIndex(netIdx)
		addNeighbor := func(pinIdx int32) {
			neighbor := nl.PinByIndex(pinIdx).InstIdx
			if neighbor == instIdx {
				return
			}
			x, y, ok := pl.Coord(neighbor)
			if !ok {
				return
			}
			sumX += int64(x)
			sumY += int64(y)
			count++
		}

		if nl.PinByIndex(n.Driver).InstIdx == instIdx {
			for _, sinkPin := range n.Sinks {
				addNeighbor(sinkPin)
			}
		} else {
			addNeighbor(n.Driver)
		}
	}

	if count == 0 {
		return fab.DieCenter()
	}
	return int32(sumX / count), int32(sumY / count)
}

// NearestFreeSlot scans fab's row-major SlotsOfKind(kind) view for the
// nearest free slot to (refX, refY), treating a slot as free when no
// instance of pl is bound to it. Run uses it for instance seeding.
func NearestFreeSlot(pl *placement.Placement, fab *fabric.Fabric, kind fabric.SlotKind, refX, refY int32) (int32, bool) {
	return nearestFreeSlot(fab, kind, refX, refY, func(slotIdx int32) bool {
		_, occupied := pl.InstOf(slotIdx)
		return !occupied
	})
}

// NearestSlotWhere is the generalization NearestFreeSlot is built on:
// it scans fab's row-major SlotsOfKind(kind) view for the nearest slot
// to (refX, refY) for which free reports true. It is exported so
// callers tracking occupancy outside of a placement.Placement (e.g.
// the clock tree synthesizer, whose buffer nodes are not netlist
// instances) can reuse the same deterministic scan and tie-break.
func NearestSlotWhere(fab *fabric.Fabric, kind fabric.SlotKind, refX, refY int32, free func(slotIdx int32) bool) (int32, bool) {
	return nearestFreeSlot(fab, kind, refX, refY, free)
}

// nearestFreeSlot scans fab's row-major SlotsOfKind(kind) view for the
// first slot satisfying free at minimal Manhattan distance from
// (refX, refY). Row-major order supplies the tie-break required when
// two candidate slots are equidistant (§4.5).
func nearestFreeSlot(fab *fabric.Fabric, kind fabric.SlotKind, refX, refY int32, free func(slotIdx int32) bool) (int32, bool) {
	var (
		best    int32 = -1
		bestDst int64 = -1
	)
	for _, slotIdx := range fab.SlotsOfKind(kind) {
		if !free(slotIdx) {
			continue
		}
		s := fab.SlotByIndex(slotIdx)
		d := manhattan(s.X, s.Y, refX, refY)
		if bestDst == -1 || d < bestDst {
			best, bestDst = slotIdx, d
		}
	}
	if best == -1 {
		return 0, false
	}
	return best, true
}

func manhattan(x1, y1, x2, y2 int32) int64 {
	dx := int64(x1) - int64(x2)
	dy := int64(y1) - int64(y2)
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}
