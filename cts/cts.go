package cts

import (
	"errors"
	"fmt"
	"sort"

	"sasic/fabric"
	"sasic/netlist"
	"sasic/placement"
	"sasic/seed"
)

// ErrNoSinks is returned when pl has no bound DFF instances to build a
// clock tree over. It guards against synthesizing a tree with a nil
// root.
var ErrNoSinks = errors.New("cts: no bound DFF instances")

// bufferKindFallback is the order in which slot kinds are tried for a
// synthesized buffer: LOGIC first, falling back to DFF then IO when
// LOGIC is exhausted (§4.7).
var bufferKindFallback = []fabric.SlotKind{fabric.LOGIC, fabric.DFF, fabric.IO}

// Build synthesizes an H-tree clock distribution network over every
// DFF instance currently bound in pl (§4.7). pl is read-only; Build
// does not bind, unbind, or otherwise mutate it. Buffer-slot
// assignment tracks its own occupancy set layered on top of pl's
// existing bindings, so no fabric slot is double-assigned to both an
// instance and a buffer, or to two buffers.
func Build(pl *placement.Placement, params Params) (*Tree, error) {
	nl := pl.Netlist()
	fab := pl.Fabric()
	maxFanout := params.resolvedMaxFanout()

	var sinks []int32
	for i := int32(0); i < nl.Len(); i++ {
		if nl.InstanceByIndex(i).Kind != netlist.Seq {
			continue
		}
		if _, bound := pl.SlotOf(i); bound {
			sinks = append(sinks, i)
		}
	}
	if len(sinks) == 0 {
		return nil, ErrNoSinks
	}

	b := &builder{
		pl:       pl,
		nl:       nl,
		fab:      fab,
		occupied: make(map[int32]bool),
		leafOf:   make(map[int32]*Node),
	}
	root, err := b.bisect(sinks, maxFanout)
	if err != nil {
		return nil, err
	}
	return &Tree{Root: root, LeafOf: b.leafOf}, nil
}

type builder struct {
	pl       *placement.Placement
	nl       *netlist.Netlist
	fab      *fabric.Fabric
	occupied map[int32]bool
	leafOf   map[int32]*Node
	counter  int
}

// bisect implements the recursive geometric bisection of §4.7: a
// group of sinks at or under maxFanout becomes a single leaf buffer;
// otherwise the group splits in two along its wider axis at the
// median coordinate, each half recurses, and a parent buffer is
// synthesized at the midpoint of the two children's assigned
// coordinates.
func (b *builder) bisect(sinks []int32, maxFanout int) (*Node, error) {
	if len(sinks) <= maxFanout {
		return b.makeLeaf(sinks)
	}

	left, right := b.splitByWiderAxis(sinks)
	leftNode, err := b.bisect(left, maxFanout)
	if err != nil {
		return nil, err
	}
	rightNode, err := b.bisect(right, maxFanout)
	if err != nil {
		return nil, err
	}

	midX := (leftNode.X + rightNode.X) / 2
	midY := (leftNode.Y + rightNode.Y) / 2
	slotIdx, x, y, err := b.assignBuffer(midX, midY)
	if err != nil {
		return nil, err
	}
	return &Node{
		ID:       b.nextID(),
		X:        x,
		Y:        y,
		SlotIdx:  slotIdx,
		Children: []*Node{leftNode, rightNode},
	}, nil
}

func (b *builder) makeLeaf(sinks []int32) (*Node, error) {
	var sumX, sumY int64
	for _, s := range sinks {
		x, y, _ := b.pl.Coord(s)
		sumX += int64(x)
		sumY += int64(y)
	}
	n := int64(len(sinks))
	cx := int32(sumX / n)
	cy := int32(sumY / n)

	slotIdx, x, y, err := b.assignBuffer(cx, cy)
	if err != nil {
		return nil, err
	}

	node := &Node{
		ID:      b.nextID(),
		X:       x,
		Y:       y,
		SlotIdx: slotIdx,
		Sinks:   append([]int32(nil), sinks...),
	}
	for _, s := range sinks {
		b.leafOf[s] = node
	}
	return node, nil
}

// splitByWiderAxis sorts sinks along the axis of larger coordinate
// extent (ties broken toward X), breaking coordinate ties by instance
// name (§4.7 step 2: "ties broken deterministically by id"), then
// splits at the median index.
func (b *builder) splitByWiderAxis(sinks []int32) (left, right []int32) {
	var minX, maxX, minY, maxY int32
	for i, s := range sinks {
		x, y, _ := b.pl.Coord(s)
		if i == 0 {
			minX, maxX, minY, maxY = x, x, y, y
			continue
		}
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

	useX := (maxX - minX) >= (maxY - minY)

	ordered := append([]int32(nil), sinks...)
	sort.Slice(ordered, func(i, j int) bool {
		xi, yi, _ := b.pl.Coord(ordered[i])
		xj, yj, _ := b.pl.Coord(ordered[j])
		var ci, cj int32
		if useX {
			ci, cj = xi, xj
		} else {
			ci, cj = yi, yj
		}
		if ci != cj {
			return ci < cj
		}
		return b.nl.InstanceByIndex(ordered[i]).Name < b.nl.InstanceByIndex(ordered[j]).Name
	})

	mid := len(ordered) / 2
	return ordered[:mid], ordered[mid:]
}

// assignBuffer finds the nearest free slot to (refX, refY), trying
// LOGIC, then DFF, then IO (§4.7 "kind-aware fallback"), and marks it
// occupied so no later buffer claims it.
func (b *builder) assignBuffer(refX, refY int32) (slotIdx, x, y int32, err error) {
	free := func(slotIdx int32) bool {
		if b.occupied[slotIdx] {
			return false
		}
		_, occ := b.pl.InstOf(slotIdx)
		return !occ
	}

	for _, kind := range bufferKindFallback {
		if idx, ok := seed.NearestSlotWhere(b.fab, kind, refX, refY, free); ok {
			b.occupied[idx] = true
			s := b.fab.SlotByIndex(idx)
			return idx, s.X, s.Y, nil
		}
	}
	return 0, 0, 0, fmt.Errorf("%w: no LOGIC/DFF/IO slot available near (%d,%d)", ErrNoBufferSlot, refX, refY)
}

func (b *builder) nextID() string {
	id := fmt.Sprintf("buf%d", b.counter)
	b.counter++
	return id
}
