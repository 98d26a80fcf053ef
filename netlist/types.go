package netlist

import "errors"

// ErrInvalidNetlist is returned by New when the input design violates a
// structural invariant: a dangling pin reference, a duplicate instance
// name, or a net with no driver.
var ErrInvalidNetlist = errors.New("netlist: invalid netlist description")

// CellKind is the closed set of logical cell kinds a gate-level
// instance can carry.
type CellKind int

const (
	// Comb is a combinational cell.
	Comb CellKind = iota
	// Seq is a sequential (flip-flop) cell.
	Seq
	// IO is an I/O pad cell.
	IO
	// Tie is a dedicated tie-high/tie-low cell.
	Tie
)

// String renders a CellKind using its canonical mapped-design spelling.
func (k CellKind) String() string {
	switch k {
	case Comb:
		return "COMB"
	case Seq:
		return "SEQ"
	case IO:
		return "IO"
	case Tie:
		return "TIE"
	default:
		return "UNKNOWN"
	}
}

// ParseCellKind parses the canonical mapped-design spelling of a
// CellKind.
func ParseCellKind(s string) (CellKind, bool) {
	switch s {
	case "COMB":
		return Comb, true
	case "SEQ":
		return Seq, true
	case "IO":
		return IO, true
	case "TIE":
		return Tie, true
	default:
		return 0, false
	}
}

// PinRole distinguishes a net's single driver from its one-or-more
// sinks.
type PinRole int

const (
	// RoleDriver marks the pin that sources a net's signal.
	RoleDriver PinRole = iota
	// RoleSink marks a pin that receives a net's signal.
	RoleSink
)

// String renders a PinRole using its canonical mapped-design spelling.
func (r PinRole) String() string {
	switch r {
	case RoleDriver:
		return "DRIVER"
	case RoleSink:
		return "SINK"
	default:
		return "UNKNOWN"
	}
}

// ParsePinRole parses the canonical mapped-design spelling of a
// PinRole.
func ParsePinRole(s string) (PinRole, bool) {
	switch s {
	case "DRIVER":
		return RoleDriver, true
	case "SINK":
		return RoleSink, true
	default:
		return 0, false
	}
}

// Pin is one occurrence of an instance on a net: a flat row in the
// Instance<->Net adjacency table, avoiding owning back-pointers on
// either side.
type Pin struct {
	Name    string
	InstIdx int32
	NetIdx  int32
	Role    PinRole
}

// Instance is a logical gate awaiting placement. Instances are
// immutable; only their slot binding (tracked in package placement)
// changes over the lifetime of a run.
type Instance struct {
	Name    string
	Kind    CellKind
	PinIdxs []int32 // indices into Netlist.pins
}

// Net is a hyperedge over pins: one driver plus one-or-more sinks.
// ClockNetName names the net excluded from HPWL cost and consumed by
// clock tree synthesis.
const ClockNetName = "clk"

// Net is a hyperedge over pins.
type Net struct {
	Name     string
	Driver   int32 // index into Netlist.pins, or -1 if undriven (rejected at build time)
	Sinks    []int32
	IsClock  bool
}

// PinSpec is the raw, pre-validation description of one pin occurrence,
// as decoded from a mapped-design description by an external loader
// (see the ioload package).
type PinSpec struct {
	Name string
	Net  string
	Role PinRole
}

// InstanceSpec is the raw description of a logical instance.
type InstanceSpec struct {
	Name string
	Cell CellKind
	Pins []PinSpec
}
