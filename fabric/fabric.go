package fabric

import (
	"fmt"
	"sort"
)

// Fabric is the immutable slot grid of a structured-ASIC die. It is
// constructed once via New and never mutated afterward; all reads are
// safe for concurrent use by independent SA runs sharing one Fabric
// (§5).
type Fabric struct {
	die    Die
	slots  []Slot             // canonical, row-major order
	byID   map[string]int32   // slot id -> index into slots
	byKind [numKinds][]int32  // per-kind indices, row-major order preserved
}

// New validates specs against die and builds a Fabric.
//
// Validation (all return ErrInvalidFabric, wrapped with the offending
// entity):
//   - specs must be non-empty.
//   - slot ids must be pairwise distinct.
//   - every (x, y) must lie within [0, die.Width] x [0, die.Height].
//
// Complexity: O(n log n) for the row-major sort; O(n) otherwise.
func New(die Die, specs []SlotSpec) (*Fabric, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("%w: empty slot list", ErrInvalidFabric)
	}
	if die.Width < 0 || die.Height < 0 {
		return nil, fmt.Errorf("%w: negative die box %dx%d", ErrInvalidFabric, die.Width, die.Height)
	}

	// Stable row-major ordering: by Y, then X, then ID for determinism
	// when two slots share a coordinate (should not happen in a valid
	// fabric, but the tie-break keeps iteration deterministic anyway).
	ordered := make([]SlotSpec, len(specs))
	copy(ordered, specs)
	sort.Slice(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		if a.X != b.X {
			return a.X < b.X
		}
		return a.ID < b.ID
	})

	f := &Fabric{
		die:  die,
		byID: make(map[string]int32, len(ordered)),
	}
	f.slots = make([]Slot, len(ordered))
	for i, spec := range ordered {
		if _, dup := f.byID[spec.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate slot id %q", ErrInvalidFabric, spec.ID)
		}
		if !die.contains(spec.X, spec.Y) {
			return nil, fmt.Errorf("%w: slot %q coordinate (%d,%d) outside die %dx%d",
				ErrInvalidFabric, spec.ID, spec.X, spec.Y, die.Width, die.Height)
		}

		idx := int32(i)
		f.slots[idx] = Slot{ID: spec.ID, X: spec.X, Y: spec.Y, Kind: spec.Kind}
		f.byID[spec.ID] = idx
		f.byKind[spec.Kind] = append(f.byKind[spec.Kind], idx)
	}

	return f, nil
}

// Die returns the fabric's die bounding box.
func (f *Fabric) Die() Die { return f.die }

// Len returns the total number of slots.
func (f *Fabric) Len() int32 { return int32(len(f.slots)) }

// Slot returns the slot at the given id, and whether it was found.
func (f *Fabric) Slot(id string) (Slot, bool) {
	idx, ok := f.byID[id]
	if !ok {
		return Slot{}, false
	}
	return f.slots[idx], true
}

// IndexOf returns the internal row-major index of a slot id.
func (f *Fabric) IndexOf(id string) (int32, bool) {
	idx, ok := f.byID[id]
	return idx, ok
}

// SlotByIndex returns the slot at the given row-major index. idx must
// be in [0, Len()); out-of-range access panics, the same assertion
// discipline as a bounds-checked slice.
func (f *Fabric) SlotByIndex(idx int32) Slot { return f.slots[idx] }

// Slots returns every slot in row-major order. The returned slice must
// not be mutated by the caller.
func (f *Fabric) Slots() []Slot { return f.slots }

// SlotsOfKind returns the row-major-ordered indices of every slot of
// the given kind, occupied or not. The returned slice must not be
// mutated by the caller; the greedy seeder, the SA refiner, and CTS
// filter it against current occupancy to obtain the free slots of a
// kind (§4.1).
func (f *Fabric) SlotsOfKind(k SlotKind) []int32 { return f.byKind[k] }

// DieCenter returns the geometric centre of the die, used as the
// reference point for instances with no already-placed neighbours.
func (f *Fabric) DieCenter() (x, y int32) {
	return f.die.Width / 2, f.die.Height / 2
}
