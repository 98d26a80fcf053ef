// Package session wires fabric, netlist, placement, cost, greedy
// seeding, annealing, clock-tree synthesis, and ECO rewriting into one
// stateful value owned by a single caller: the generalized replacement
// for a top-level global-mutable-state design (§9 "Global mutable
// state... become a Session value").
package session
