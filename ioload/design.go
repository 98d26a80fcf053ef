package ioload

import (
	"encoding/json"
	"fmt"
	"io"

	"sasic/netlist"
)

type designDoc struct {
	Instances []instanceDoc `json:"instances"`
	// Nets optionally declares net names for documentation purposes.
	// Every declared name must also appear on at least one pin; net
	// membership itself is always reconstructed from pin roles (§6).
	Nets []string `json:"nets"`
}

type instanceDoc struct {
	Name string   `json:"name"`
	Cell string   `json:"cell"`
	Pins []pinDoc `json:"pins"`
}

type pinDoc struct {
	Name string `json:"name"`
	Net  string `json:"net"`
	Role string `json:"role"`
}

// LoadDesign decodes a mapped-design document (§6 "Mapped design")
// into a constructed, validated netlist.Netlist.
func LoadDesign(r io.Reader) (*netlist.Netlist, error) {
	var doc designDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	referenced := make(map[string]bool)
	specs := make([]netlist.InstanceSpec, 0, len(doc.Instances))
	for _, inst := range doc.Instances {
		kind, ok := netlist.ParseCellKind(inst.Cell)
		if !ok {
			return nil, fmt.Errorf("%w: instance %q has unknown cell kind %q", ErrMalformedInput, inst.Name, inst.Cell)
		}

		pins := make([]netlist.PinSpec, 0, len(inst.Pins))
		for _, p := range inst.Pins {
			role, ok := netlist.ParsePinRole(p.Role)
			if !ok {
				return nil, fmt.Errorf("%w: instance %q pin %q has unknown role %q", ErrMalformedInput, inst.Name, p.Name, p.Role)
			}
			pins = append(pins, netlist.PinSpec{Name: p.Name, Net: p.Net, Role: role})
			referenced[p.Net] = true
		}
		specs = append(specs, netlist.InstanceSpec{Name: inst.Name, Cell: kind, Pins: pins})
	}

	for _, declared := range doc.Nets {
		if !referenced[declared] {
			return nil, fmt.Errorf("%w: declared net %q has no pins", ErrMalformedInput, declared)
		}
	}

	return netlist.New(specs)
}
