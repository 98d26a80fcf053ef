// Package report renders the core's in-memory results to the plain
// text and JSON artefacts described in §6: the placement map, the
// clock tree, the ECO netlist, and the per-temperature SA trace.
package report
