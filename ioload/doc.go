// Package ioload decodes the two JSON input documents the core does
// not parse itself — a fabric specification and a mapped design — into
// constructed fabric.Fabric and netlist.Netlist values (§6 "Format is
// the concern of an external loader; the core receives a constructed
// Fabric").
package ioload
