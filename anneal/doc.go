// Package anneal implements the simulated-annealing refiner (C6): the
// heart of the placement engine. It cools a placement from an initial
// temperature T0 toward T_min via geometric cooling, proposing swap and
// relocate moves and accepting them under the Metropolis criterion
// computed from incremental HPWL deltas (package cost).
//
// Determinism is a first-class contract (§4.6): identical (seed,
// params, fabric, netlist) must produce bit-identical move sequences
// and final placements across platforms. rng.go implements this with
// a xorshift64* generator seeded via a SplitMix64 avalanche mix.
package anneal
