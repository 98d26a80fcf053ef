package placement

import (
	"errors"
	"fmt"

	"sasic/fabric"
	"sasic/netlist"
)

// ErrKindMismatch is returned by Bind/Swap/Relocate when the requested
// binding would pair a cell kind with an incompatible slot kind.
// Per §7 this is a programmer-error assertion: correct callers (seed,
// anneal) only ever offer kind-compatible candidates, so a caller
// seeing this error has a bug upstream of placement itself.
var ErrKindMismatch = errors.New("placement: cell kind incompatible with slot kind")

// none is the sentinel stored for an unbound instance or slot.
const none int32 = -1

// Compatible reports whether a logical cell kind may bind to a
// physical slot kind, per §3: DFF<->DFF, IO<->IO, everything else
// (COMB, TIE) <->LOGIC. This is the 2-D table lookup called for by the
// "Polymorphism over SlotKind/CellKind" design note (§9).
func Compatible(c netlist.CellKind, k fabric.SlotKind) bool {
	switch c {
	case netlist.Seq:
		return k == fabric.DFF
	case netlist.IO:
		return k == fabric.IO
	default: // netlist.Comb, netlist.Tie
		return k == fabric.LOGIC
	}
}

// Placement is the partial bijection pi: Instance -> Slot.
type Placement struct {
	fab *fabric.Fabric
	nl  *netlist.Netlist

	slotOf []int32 // instance idx -> slot idx, or none
	instOf []int32 // slot idx -> instance idx, or none
	bound  int32   // number of currently bound instances
}

// New builds an empty Placement over fab and nl: every instance and
// every slot starts unbound.
func New(fab *fabric.Fabric, nl *netlist.Netlist) *Placement {
	p := &Placement{fab: fab, nl: nl}
	p.slotOf = make([]int32, nl.Len())
	p.instOf = make([]int32, fab.Len())
	for i := range p.slotOf {
		p.slotOf[i] = none
	}
	for i := range p.instOf {
		p.instOf[i] = none
	}
	return p
}

// Fabric returns the fabric this placement is bound into.
func (p *Placement) Fabric() *fabric.Fabric { return p.fab }

// Netlist returns the netlist this placement assigns.
func (p *Placement) Netlist() *netlist.Netlist { return p.nl }

// BoundCount returns the number of instances currently bound.
func (p *Placement) BoundCount() int32 { return p.bound }

// SlotOf returns the slot index instIdx is bound to, and whether it is
// bound at all.
func (p *Placement) SlotOf(instIdx int32) (int32, bool) {
	s := p.slotOf[instIdx]
	return s, s != none
}

// InstOf returns the instance index bound to slotIdx, and whether the
// slot is occupied at all.
func (p *Placement) InstOf(slotIdx int32) (int32, bool) {
	i := p.instOf[slotIdx]
	return i, i != none
}

// Coord returns the (x, y) of the slot instIdx is currently bound to,
// and whether instIdx is bound.
func (p *Placement) Coord(instIdx int32) (x, y int32, ok bool) {
	slotIdx, bound := p.SlotOf(instIdx)
	if !bound {
		return 0, 0, false
	}
	s := p.fab.SlotByIndex(slotIdx)
	return s.X, s.Y, true
}

func (p *Placement) kindsCompatible(instIdx, slotIdx int32) bool {
	return Compatible(p.nl.InstanceByIndex(instIdx).Kind, p.fab.SlotByIndex(slotIdx).Kind)
}

// Bind assigns instIdx to slotIdx. Both must currently be free and
// kind-compatible.
func (p *Placement) Bind(instIdx, slotIdx int32) error {
	if p.slotOf[instIdx] != none {
		return fmt.Errorf("placement: instance %d already bound to slot %d", instIdx, p.slotOf[instIdx])
	}
	if p.instOf[slotIdx] != none {
		return fmt.Errorf("placement: slot %d already bound to instance %d", slotIdx, p.instOf[slotIdx])
	}
	if !p.kindsCompatible(instIdx, slotIdx) {
		return fmt.Errorf("%w: instance %d kind %v, slot %d kind %v",
			ErrKindMismatch, instIdx, p.nl.InstanceByIndex(instIdx).Kind, slotIdx, p.fab.SlotByIndex(slotIdx).Kind)
	}

	p.slotOf[instIdx] = slotIdx
	p.instOf[slotIdx] = instIdx
	p.bound++
	return nil
}

// Unbind frees instIdx's slot, if any. Unbinding an already-unbound
// instance is a no-op.
func (p *Placement) Unbind(instIdx int32) {
	slotIdx := p.slotOf[instIdx]
	if slotIdx == none {
		return
	}
	p.slotOf[instIdx] = none
	p.instOf[slotIdx] = none
	p.bound--
}

// Swap exchanges the slot bindings of two bound, kind-compatible
// instances. Both instances must already be bound; use Relocate to
// move an instance onto a free slot instead.
func (p *Placement) Swap(a, b int32) error {
	sa, boundA := p.SlotOf(a)
	sb, boundB := p.SlotOf(b)
	if !boundA || !boundB {
		return fmt.Errorf("placement: Swap requires two bound instances (got %d bound=%t, %d bound=%t)", a, boundA, b, boundB)
	}
	if a == b {
		return nil
	}
	if !p.kindsCompatible(a, sb) || !p.kindsCompatible(b, sa) {
		return fmt.Errorf("%w: instances %d and %d are not mutually kind-compatible", ErrKindMismatch, a, b)
	}

	p.slotOf[a], p.slotOf[b] = sb, sa
	p.instOf[sa], p.instOf[sb] = b, a
	return nil
}

// Relocate moves instIdx onto slotIdx, which must currently be free
// and kind-compatible. If instIdx is already bound elsewhere, it is
// unbound first; this is the "degenerate swap" move described in
// §4.3 for moving a single instance rather than exchanging two.
func (p *Placement) Relocate(instIdx, slotIdx int32) error {
	if p.instOf[slotIdx] != none {
		return fmt.Errorf("placement: Relocate target slot %d is occupied by instance %d", slotIdx, p.instOf[slotIdx])
	}
	if !p.kindsCompatible(instIdx, slotIdx) {
		return fmt.Errorf("%w: instance %d kind %v, slot %d kind %v",
			ErrKindMismatch, instIdx, p.nl.InstanceByIndex(instIdx).Kind, slotIdx, p.fab.SlotByIndex(slotIdx).Kind)
	}

	p.Unbind(instIdx)
	p.slotOf[instIdx] = slotIdx
	p.instOf[slotIdx] = instIdx
	p.bound++
	return nil
}

// CheckBijection verifies pi^-1(pi(i)) == i for every bound instance
// and that no two instances share a slot. It is O(bound instances) and
// intended for tests and assertions, not hot paths.
func (p *Placement) CheckBijection() error {
	seen := make(map[int32]int32, p.bound)
	for instIdx, slotIdx := range p.slotOf {
		if slotIdx == none {
			continue
		}
		if other, dup := seen[slotIdx]; dup {
			return fmt.Errorf("placement: slot %d bound to both instance %d and %d", slotIdx, other, instIdx)
		}
		seen[slotIdx] = int32(instIdx)

		if back, _ := p.InstOf(slotIdx); back != int32(instIdx) {
			return fmt.Errorf("placement: inverse map mismatch at slot %d: got %d, want %d", slotIdx, back, instIdx)
		}
	}
	return nil
}
