// Package netlist holds the gate-level netlist consumed by placement:
// instances, nets, and the pin occurrences that connect them.
//
// Instance and Net reference each other only through integer indices
// into parallel slices, never through owning pointers (see the netlist
// section of DESIGN.md): a flat Pin table carries
// (instance index, net index, role), and adjacency queries — fanout,
// nets-of-instance — are index lookups into precomputed slices built
// once at construction time.
//
// A Netlist is immutable after New returns; only the instance-to-slot
// binding, tracked separately in package placement, ever changes.
package netlist
