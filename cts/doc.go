// Package cts synthesizes an H-tree clock distribution network over a
// placement's flip-flop sinks by recursive geometric bisection (C7).
//
// The output is a tree of synthesized buffer nodes, each assigned to a
// free fabric slot by the same nearest-compatible-slot search the
// greedy seeder uses. The tree is built once from a finished placement
// and never mutated afterward.
package cts
