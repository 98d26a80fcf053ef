package cost

import (
	"sasic/netlist"
	"sasic/placement"
)

// noOverride is the sentinel instance index meaning "no hypothetical
// coordinate substitution for this call".
const noOverride int32 = -1

type override struct {
	inst int32
	x, y int32
}

var none = override{inst: noOverride}

// Model maintains the running HPWL total and a per-net cache so that
// moves touch only the handful of nets they actually affect, never the
// whole netlist.
type Model struct {
	nl *netlist.Netlist
	pl *placement.Placement

	netCost []int64 // cached per-net HPWL, indexed by net idx; 0 for clock nets
	total   int64
}

// New builds a Model from the current state of pl. Call it once after
// seeding (C5); the SA refiner (C6) then owns the returned Model for
// the rest of the run.
func New(pl *placement.Placement) *Model {
	nl := pl.Netlist()
	m := &Model{
		nl:      nl,
		pl:      pl,
		netCost: make([]int64, nl.NetCount()),
	}
	for _, netIdx := range nl.CostNets() {
		c := m.hpwlOf(netIdx, none, none)
		m.netCost[netIdx] = c
		m.total += c
	}
	return m
}

// Total returns the running total cost, maintained incrementally by
// ApplySwap/ApplyRelocate.
func (m *Model) Total() int64 { return m.total }

// NetHPWL returns the cached HPWL of a single net under the current
// placement.
func (m *Model) NetHPWL(netIdx int32) int64 { return m.netCost[netIdx] }

// Recompute sums HPWL over every non-clock net from scratch, ignoring
// the cache. Used to verify the incrementally maintained Total at
// temperature boundaries and in tests (§8, invariant 4).
func (m *Model) Recompute() int64 {
	var total int64
	for _, netIdx := range m.nl.CostNets() {
		total += m.hpwlOf(netIdx, none, none)
	}
	return total
}

// hpwlOf computes the bounding box of netIdx's driver + sinks under
// the current placement, with up to two instances' coordinates
// hypothetically substituted. Clock nets and nets with fewer than two
// placed pins contribute 0 (§4.4).
func (m *Model) hpwlOf(netIdx int32, ov1, ov2 override) int64 {
	n := m.nl.NetByIndex(netIdx)
	if n.IsClock {
		return 0
	}

	var (
		minX, minY = int32(0), int32(0)
		maxX, maxY = int32(0), int32(0)
		placed     int
	)

	consider := func(pinIdx int32) {
		instIdx := m.nl.PinByIndex(pinIdx).InstIdx
		var x, y int32
		switch {
		case instIdx == ov1.inst:
			x, y = ov1.x, ov1.y
		case instIdx == ov2.inst:
			x, y = ov2.x, ov2.y
		default:
			cx, cy, ok := m.pl.Coord(instIdx)
			if !ok {
				return
			}
			x, y = cx, cy
		}

		if placed == 0 {
			minX, maxX, minY, maxY = x, x, y, y
		} else {
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
		placed++
	}

	consider(n.Driver)
	for _, sinkPin := range n.Sinks {
		consider(sinkPin)
	}

	if placed < 2 {
		return 0
	}
	return int64(maxX-minX) + int64(maxY-minY)
}

// affectedNets returns the unique, non-clock net indices touched by
// instances a and b. b may be noOverride (a single-instance relocate),
// in which case only a's nets are returned.
func (m *Model) affectedNets(a, b int32) []int32 {
	seen := make(map[int32]bool)
	var nets []int32
	add := func(instIdx int32) {
		if instIdx < 0 {
			return
		}
		for _, netIdx := range m.nl.NetsOf(instIdx) {
			if m.nl.NetByIndex(netIdx).IsClock || seen[netIdx] {
				continue
			}
			seen[netIdx] = true
			nets = append(nets, netIdx)
		}
	}
	add(a)
	add(b)
	return nets
}

// DeltaForSwap evaluates, without mutating pl, the cost delta of
// exchanging the slots of two bound instances a and b (§4.6 step 5,
// §4.4 hypothetical evaluation).
func (m *Model) DeltaForSwap(a, b int32) int64 {
	sa, _ := m.pl.SlotOf(a)
	sb, _ := m.pl.SlotOf(b)
	slotA := m.pl.Fabric().SlotByIndex(sa)
	slotB := m.pl.Fabric().SlotByIndex(sb)
	ovA := override{inst: a, x: slotB.X, y: slotB.Y}
	ovB := override{inst: b, x: slotA.X, y: slotA.Y}

	var before, after int64
	for _, netIdx := range m.affectedNets(a, b) {
		before += m.netCost[netIdx]
		after += m.hpwlOf(netIdx, ovA, ovB)
	}
	return after - before
}

// DeltaForRelocate evaluates, without mutating pl, the cost delta of
// moving instance i onto the free slot newSlot.
func (m *Model) DeltaForRelocate(i, newSlot int32) int64 {
	slot := m.pl.Fabric().SlotByIndex(newSlot)
	ov := override{inst: i, x: slot.X, y: slot.Y}

	var before, after int64
	for _, netIdx := range m.affectedNets(i, noOverride) {
		before += m.netCost[netIdx]
		after += m.hpwlOf(netIdx, ov, none)
	}
	return after - before
}

// ApplySwap commits a swap to pl and updates the cached per-net costs
// and running total by exactly the nets affected.
func (m *Model) ApplySwap(a, b int32) error {
	nets := m.affectedNets(a, b)
	if err := m.pl.Swap(a, b); err != nil {
		return err
	}
	m.refresh(nets)
	return nil
}

// ApplyRelocate commits a relocate to pl and updates the cached
// per-net costs and running total by exactly the nets affected.
func (m *Model) ApplyRelocate(i, newSlot int32) error {
	nets := m.affectedNets(i, noOverride)
	if err := m.pl.Relocate(i, newSlot); err != nil {
		return err
	}
	m.refresh(nets)
	return nil
}

// refresh recomputes netCost for the given nets against the
// now-current placement and folds the change into total.
func (m *Model) refresh(nets []int32) {
	for _, netIdx := range nets {
		newCost := m.hpwlOf(netIdx, none, none)
		m.total += newCost - m.netCost[netIdx]
		m.netCost[netIdx] = newCost
	}
}
