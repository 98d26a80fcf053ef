package ioload

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"sasic/fabric"
)

// ErrMalformedInput is returned when an input document cannot be
// decoded into a valid Fabric or Netlist: bad JSON, an unrecognized
// enum spelling, or a net declared with no pins. It precedes the
// core's own validation (fabric.ErrInvalidFabric,
// netlist.ErrInvalidNetlist), which still applies to whatever this
// package successfully decodes.
var ErrMalformedInput = errors.New("ioload: malformed input document")

type fabricDoc struct {
	Die struct {
		WidthUm  int32 `json:"width_um"`
		HeightUm int32 `json:"height_um"`
	} `json:"die"`
	Slots []slotDoc `json:"slots"`
}

type slotDoc struct {
	ID   string `json:"id"`
	XUm  int32  `json:"x_um"`
	YUm  int32  `json:"y_um"`
	Kind string `json:"kind"`
}

// LoadFabric decodes a fabric specification document (§6 "Fabric
// specification") into a constructed, validated fabric.Fabric.
func LoadFabric(r io.Reader) (*fabric.Fabric, error) {
	var doc fabricDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	specs := make([]fabric.SlotSpec, 0, len(doc.Slots))
	for _, s := range doc.Slots {
		kind, ok := fabric.ParseSlotKind(s.Kind)
		if !ok {
			return nil, fmt.Errorf("%w: slot %q has unknown kind %q", ErrMalformedInput, s.ID, s.Kind)
		}
		specs = append(specs, fabric.SlotSpec{ID: s.ID, X: s.XUm, Y: s.YUm, Kind: kind})
	}

	die := fabric.Die{Width: doc.Die.WidthUm, Height: doc.Die.HeightUm}
	return fabric.New(die, specs)
}
