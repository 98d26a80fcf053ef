// Package eco implements the engineering-change-order rewriter (C8):
// a pure function from (Netlist, Placement, clock Tree) to a final,
// renamed, clock-buffer-wired Netlist. Rewrite never mutates its
// inputs (§3 Lifecycle).
package eco
