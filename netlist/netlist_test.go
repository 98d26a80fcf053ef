package netlist_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"sasic/netlist"
)

func triangleSpecs() []netlist.InstanceSpec {
	return []netlist.InstanceSpec{
		{
			Name: "a", Cell: netlist.Comb,
			Pins: []netlist.PinSpec{{Name: "Y", Net: "n1", Role: netlist.RoleDriver}},
		},
		{
			Name: "b", Cell: netlist.Comb,
			Pins: []netlist.PinSpec{
				{Name: "A", Net: "n1", Role: netlist.RoleSink},
				{Name: "Y", Net: "n2", Role: netlist.RoleDriver},
			},
		},
		{
			Name: "c", Cell: netlist.Comb,
			Pins: []netlist.PinSpec{{Name: "A", Net: "n2", Role: netlist.RoleSink}},
		},
	}
}

func TestNewBuildsAdjacency(t *testing.T) {
	require := require.New(t)

	nl, err := netlist.New(triangleSpecs())
	require.NoError(err)
	require.EqualValues(3, nl.Len())
	require.EqualValues(2, nl.NetCount())

	a, ok := nl.Instance("a")
	require.True(ok)
	require.Equal(1, nl.Fanout(a))
	require.Len(nl.NetsOf(a), 1)

	b, ok := nl.Instance("b")
	require.True(ok)
	require.Equal(1, nl.Fanout(b))
	require.Len(nl.NetsOf(b), 2)
}

func TestNewDuplicateInstance(t *testing.T) {
	require := require.New(t)

	specs := triangleSpecs()
	specs[2].Name = "a"
	_, err := netlist.New(specs)
	require.Error(err)
	require.True(errors.Is(err, netlist.ErrInvalidNetlist))
}

func TestNewNoDriver(t *testing.T) {
	require := require.New(t)

	specs := []netlist.InstanceSpec{
		{Name: "a", Cell: netlist.Comb, Pins: []netlist.PinSpec{{Name: "A", Net: "n1", Role: netlist.RoleSink}}},
	}
	_, err := netlist.New(specs)
	require.Error(err)
	require.True(errors.Is(err, netlist.ErrInvalidNetlist))
}

func TestNewNoSinks(t *testing.T) {
	require := require.New(t)

	specs := []netlist.InstanceSpec{
		{Name: "a", Cell: netlist.Comb, Pins: []netlist.PinSpec{{Name: "Y", Net: "n1", Role: netlist.RoleDriver}}},
	}
	_, err := netlist.New(specs)
	require.Error(err)
	require.True(errors.Is(err, netlist.ErrInvalidNetlist))
}

func TestClockNetExcludedFromCostNets(t *testing.T) {
	require := require.New(t)

	specs := []netlist.InstanceSpec{
		{Name: "ckgen", Cell: netlist.Comb, Pins: []netlist.PinSpec{{Name: "Y", Net: "clk", Role: netlist.RoleDriver}}},
		{Name: "ff1", Cell: netlist.Seq, Pins: []netlist.PinSpec{{Name: "CK", Net: "clk", Role: netlist.RoleSink}}},
	}
	nl, err := netlist.New(specs)
	require.NoError(err)
	require.Empty(nl.CostNets())

	clkIdx, ok := nl.Net("clk")
	require.True(ok)
	require.True(nl.NetByIndex(clkIdx).IsClock)
}
