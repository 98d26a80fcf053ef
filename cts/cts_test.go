package cts_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"sasic/cts"
	"sasic/fabric"
	"sasic/netlist"
	"sasic/placement"
)

func dffOnlySpecs(count int) []netlist.InstanceSpec {
	specs := make([]netlist.InstanceSpec, count)
	for i := range specs {
		specs[i] = netlist.InstanceSpec{Name: fmt.Sprintf("ff%d", i), Cell: netlist.Seq}
	}
	return specs
}

func TestSingleDFFYieldsSingleLeaf(t *testing.T) {
	require := require.New(t)

	f, err := fabric.New(fabric.Die{Width: 10, Height: 10}, []fabric.SlotSpec{
		{ID: "d0", X: 0, Y: 0, Kind: fabric.DFF},
		{ID: "l0", X: 10, Y: 10, Kind: fabric.LOGIC},
	})
	require.NoError(err)

	nl, err := netlist.New(dffOnlySpecs(1))
	require.NoError(err)

	pl := placement.New(f, nl)
	dff, _ := nl.Instance("ff0")
	slot, _ := f.IndexOf("d0")
	require.NoError(pl.Bind(dff, slot))

	tree, err := cts.Build(pl, cts.Params{MaxFanout: 4})
	require.NoError(err)
	require.True(tree.Root.IsLeaf())
	require.Equal(0, tree.Depth())
	require.Equal([]int32{dff}, tree.Root.Sinks)
	require.Same(tree.Root, tree.LeafOf[dff])
}

// TestSixteenDFFGridBalance covers the CTS balance scenario: 16 DFFs
// on a 4x4 grid, max_fanout=4, must yield depth 2 with every leaf
// driving exactly 4 DFFs and every DFF covered once.
func TestSixteenDFFGridBalance(t *testing.T) {
	require := require.New(t)

	var specs []fabric.SlotSpec
	for y := int32(0); y < 4; y++ {
		for x := int32(0); x < 4; x++ {
			specs = append(specs, fabric.SlotSpec{
				ID: fmt.Sprintf("d_%d_%d", x, y), X: x * 10, Y: y * 10, Kind: fabric.DFF,
			})
		}
	}
	// Sparse LOGIC slots for buffer assignment: one per quadrant (the
	// four leaves), one per half (the two internal buffers), and one
	// central slot for the root.
	logicCoords := [][2]int32{
		{5, 5}, {25, 5}, {5, 25}, {25, 25}, // leaves
		{5, 15}, {25, 15}, // internal
		{15, 15}, // root
	}
	for i, c := range logicCoords {
		specs = append(specs, fabric.SlotSpec{ID: fmt.Sprintf("lg%d", i), X: c[0], Y: c[1], Kind: fabric.LOGIC})
	}

	f, err := fabric.New(fabric.Die{Width: 30, Height: 30}, specs)
	require.NoError(err)

	nl, err := netlist.New(dffOnlySpecs(16))
	require.NoError(err)

	pl := placement.New(f, nl)
	for i := 0; i < 16; i++ {
		x, y := int32(i%4), int32(i/4)
		inst, _ := nl.Instance(fmt.Sprintf("ff%d", i))
		slot, _ := f.IndexOf(fmt.Sprintf("d_%d_%d", x, y))
		require.NoError(pl.Bind(inst, slot))
	}

	tree, err := cts.Build(pl, cts.Params{MaxFanout: 4})
	require.NoError(err)
	require.Equal(2, tree.Depth())

	var leaves []*cts.Node
	var collect func(n *cts.Node)
	collect = func(n *cts.Node) {
		if n.IsLeaf() {
			leaves = append(leaves, n)
			return
		}
		for _, c := range n.Children {
			collect(c)
		}
	}
	collect(tree.Root)

	require.Len(leaves, 4)
	for _, leaf := range leaves {
		require.Len(leaf.Sinks, 4)
	}

	covered := make(map[int32]bool)
	for i := 0; i < 16; i++ {
		inst, _ := nl.Instance(fmt.Sprintf("ff%d", i))
		leaf, ok := tree.LeafOf[inst]
		require.True(ok, "instance %d must have a leaf buffer", i)
		require.False(covered[inst], "instance %d covered by more than one leaf", i)
		covered[inst] = true
		require.Contains(leaf.Sinks, inst)
	}
	require.Len(covered, 16)
}

func TestBuildFailsWithoutBoundDFFs(t *testing.T) {
	require := require.New(t)
	f, err := fabric.New(fabric.Die{Width: 10, Height: 10}, []fabric.SlotSpec{
		{ID: "d0", X: 0, Y: 0, Kind: fabric.DFF},
	})
	require.NoError(err)
	nl, err := netlist.New(dffOnlySpecs(1))
	require.NoError(err)
	pl := placement.New(f, nl)

	_, err = cts.Build(pl, cts.Params{})
	require.ErrorIs(err, cts.ErrNoSinks)
}

func TestBuildFailsWhenBufferSlotsExhausted(t *testing.T) {
	require := require.New(t)
	f, err := fabric.New(fabric.Die{Width: 10, Height: 10}, []fabric.SlotSpec{
		{ID: "d0", X: 0, Y: 0, Kind: fabric.DFF},
		{ID: "d1", X: 10, Y: 0, Kind: fabric.DFF},
	})
	require.NoError(err)
	nl, err := netlist.New(dffOnlySpecs(2))
	require.NoError(err)
	pl := placement.New(f, nl)
	ff0, _ := nl.Instance("ff0")
	ff1, _ := nl.Instance("ff1")
	d0, _ := f.IndexOf("d0")
	d1, _ := f.IndexOf("d1")
	require.NoError(pl.Bind(ff0, d0))
	require.NoError(pl.Bind(ff1, d1))

	// Both DFFs are within max_fanout, so a single leaf buffer is
	// needed; with every slot (including both DFF slots) already
	// occupied by instances and no LOGIC/IO slot present, Build must
	// fail with ErrNoBufferSlot.
	_, err = cts.Build(pl, cts.Params{MaxFanout: 4})
	require.ErrorIs(err, cts.ErrNoBufferSlot)
}
