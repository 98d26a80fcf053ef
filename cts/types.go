package cts

import "errors"

// ErrNoBufferSlot is returned when no compatible free slot exists for
// a synthesized clock buffer (§4.7, §7).
var ErrNoBufferSlot = errors.New("cts: no free slot for synthesized buffer")

// DefaultMaxFanout is the fanout bound used when Params.MaxFanout is
// left at its zero value.
const DefaultMaxFanout = 4

// Params configures a clock tree build (§4.7).
type Params struct {
	// MaxFanout bounds how many children a buffer may drive. Zero
	// means DefaultMaxFanout.
	MaxFanout int
}

// resolvedMaxFanout returns p.MaxFanout, or DefaultMaxFanout if unset.
func (p Params) resolvedMaxFanout() int {
	if p.MaxFanout <= 0 {
		return DefaultMaxFanout
	}
	return p.MaxFanout
}

// Node is one buffer in the synthesized H-tree. Leaf nodes (Children
// == nil) drive original DFF instances directly, named in Sinks;
// internal nodes drive their Children.
type Node struct {
	ID       string
	X, Y     int32
	SlotIdx  int32
	Children []*Node
	Sinks    []int32 // original DFF instance indices, leaf nodes only
}

// IsLeaf reports whether n drives DFF instances directly rather than
// child buffers.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Tree is the synthesized clock distribution network over one
// placement's DFF sinks (§4.7). It is built once by Build and never
// mutated afterward (§3 Lifecycle).
type Tree struct {
	Root *Node
	// LeafOf maps an original DFF instance index to the leaf buffer
	// that drives it directly, giving ECO (C8) O(1) rewiring lookups.
	LeafOf map[int32]*Node
}

// Depth returns the number of edges on the longest root-to-leaf path
// (a single-leaf tree, where Root is itself a leaf, has depth 0),
// matching the §4.7 invariant max depth = ceil(log_max_fanout(sinks)).
func (t *Tree) Depth() int {
	return depth(t.Root)
}

func depth(n *Node) int {
	if n.IsLeaf() {
		return 0
	}
	best := 0
	for _, c := range n.Children {
		if d := depth(c); d > best {
			best = d
		}
	}
	return best + 1
}
