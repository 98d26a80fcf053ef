package report

import (
	"encoding/json"
	"io"

	"sasic/netlist"
)

type ecoPin struct {
	Name string `json:"name"`
	Net  string `json:"net"`
	Role string `json:"role"`
}

type ecoCell struct {
	Name string   `json:"name"`
	Cell string   `json:"cell"`
	Pins []ecoPin `json:"pins"`
}

type ecoDoc struct {
	Cells []ecoCell `json:"cells"`
	Nets  []string  `json:"nets"`
}

// WriteEcoNetlist writes the tool-agnostic intermediate gate-level
// netlist JSON: {"cells": [...], "nets": [...]} (§6 "ECO netlist").
// Rendering to a DEF or Verilog surface format is left to an external
// writer.
func WriteEcoNetlist(w io.Writer, nl *netlist.Netlist) error {
	doc := ecoDoc{
		Cells: make([]ecoCell, 0, nl.Len()),
		Nets:  make([]string, 0, nl.NetCount()),
	}

	for _, inst := range nl.Instances() {
		c := ecoCell{Name: inst.Name, Cell: inst.Kind.String(), Pins: make([]ecoPin, 0, len(inst.PinIdxs))}
		for _, pinIdx := range inst.PinIdxs {
			p := nl.PinByIndex(pinIdx)
			c.Pins = append(c.Pins, ecoPin{
				Name: p.Name,
				Net:  nl.NetByIndex(p.NetIdx).Name,
				Role: p.Role.String(),
			})
		}
		doc.Cells = append(doc.Cells, c)
	}
	for _, n := range nl.Nets() {
		doc.Nets = append(doc.Nets, n.Name)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
