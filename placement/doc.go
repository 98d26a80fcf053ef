// Package placement holds the partial bijection between netlist
// instances and fabric slots: the single source of truth consulted by
// every other component. No other package caches an instance->slot
// mapping of its own (§4.3).
//
// Placement stores two parallel int32 arrays, slotOf and instOf, with
// a -1 sentinel for "unbound". Bind, Unbind, Swap, and Relocate are
// all O(1).
package placement
