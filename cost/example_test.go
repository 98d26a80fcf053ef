package cost_test

import (
	"fmt"

	"sasic/cost"
	"sasic/fabric"
	"sasic/netlist"
	"sasic/placement"
)

// ExampleModel demonstrates the incremental HPWL cost of a single net
// and the delta evaluation used by the SA refiner.
func ExampleModel() {
	f, err := fabric.New(fabric.Die{Width: 10, Height: 0}, []fabric.SlotSpec{
		{ID: "s0", X: 0, Y: 0, Kind: fabric.LOGIC},
		{ID: "s1", X: 10, Y: 0, Kind: fabric.LOGIC},
	})
	if err != nil {
		panic(err)
	}
	nl, err := netlist.New([]netlist.InstanceSpec{
		{Name: "a", Cell: netlist.Comb, Pins: []netlist.PinSpec{{Name: "Y", Net: "n1", Role: netlist.RoleDriver}}},
		{Name: "b", Cell: netlist.Comb, Pins: []netlist.PinSpec{{Name: "A", Net: "n1", Role: netlist.RoleSink}}},
	})
	if err != nil {
		panic(err)
	}

	pl := placement.New(f, nl)
	a, _ := nl.Instance("a")
	b, _ := nl.Instance("b")
	s0, _ := f.IndexOf("s0")
	s1, _ := f.IndexOf("s1")
	if err := pl.Bind(a, s0); err != nil {
		panic(err)
	}
	if err := pl.Bind(b, s1); err != nil {
		panic(err)
	}

	m := cost.New(pl)
	fmt.Println("total:", m.Total())
	fmt.Println("swap delta:", m.DeltaForSwap(a, b))

	// Output:
	// total: 10
	// swap delta: 0
}
