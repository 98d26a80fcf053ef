// Package fabric describes the immutable slot grid of a structured-ASIC
// die: every pre-fabricated logic, flip-flop, I/O, and tie-cell site,
// its fixed (x, y) coordinate in micrometres, and its kind.
//
// A Fabric is built once from a flat list of slot records and never
// mutated afterward. Downstream packages (seed, anneal, cts) only ever
// read it: slot(id), slots of a given kind in row-major order, and die
// bounds.
package fabric
