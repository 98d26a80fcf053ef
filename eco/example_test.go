package eco_test

import (
	"fmt"

	"sasic/cts"
	"sasic/eco"
	"sasic/fabric"
	"sasic/netlist"
	"sasic/placement"
)

// ExampleRewrite demonstrates the post-CTS netlist rewrite: instances
// are renamed to slot_<id> and each DFF's clock pin is rewired off the
// flat clk net onto its clock buffer's output.
func ExampleRewrite() {
	f, err := fabric.New(fabric.Die{Width: 30, Height: 0}, []fabric.SlotSpec{
		{ID: "io0", X: 0, Y: 0, Kind: fabric.IO},
		{ID: "d0", X: 10, Y: 0, Kind: fabric.DFF},
		{ID: "d1", X: 20, Y: 0, Kind: fabric.DFF},
		{ID: "lg0", X: 15, Y: 0, Kind: fabric.LOGIC},
	})
	if err != nil {
		panic(err)
	}
	nl, err := netlist.New([]netlist.InstanceSpec{
		{Name: "clk_src", Cell: netlist.IO, Pins: []netlist.PinSpec{{Name: "Y", Net: "clk", Role: netlist.RoleDriver}}},
		{Name: "ff0", Cell: netlist.Seq, Pins: []netlist.PinSpec{{Name: "CK", Net: "clk", Role: netlist.RoleSink}}},
		{Name: "ff1", Cell: netlist.Seq, Pins: []netlist.PinSpec{{Name: "CK", Net: "clk", Role: netlist.RoleSink}}},
	})
	if err != nil {
		panic(err)
	}

	pl := placement.New(f, nl)
	src, _ := nl.Instance("clk_src")
	ff0, _ := nl.Instance("ff0")
	ff1, _ := nl.Instance("ff1")
	io0, _ := f.IndexOf("io0")
	d0, _ := f.IndexOf("d0")
	d1, _ := f.IndexOf("d1")
	if err := pl.Bind(src, io0); err != nil {
		panic(err)
	}
	if err := pl.Bind(ff0, d0); err != nil {
		panic(err)
	}
	if err := pl.Bind(ff1, d1); err != nil {
		panic(err)
	}

	tree, err := cts.Build(pl, cts.Params{MaxFanout: 4})
	if err != nil {
		panic(err)
	}

	out, err := eco.Rewrite(nl, pl, tree, netlist.Comb)
	if err != nil {
		panic(err)
	}

	_, hasSlotD0 := out.Instance("slot_d0")
	fmt.Println("renamed ff0:", hasSlotD0)

	// Output:
	// renamed ff0: true
}
