// Package cost implements the half-perimeter wirelength (HPWL) cost
// model: per-net bounding-box cost, the Σ total over every non-clock
// net, and incremental delta evaluation under a single-instance
// relocate or a two-instance swap.
//
// Model never mutates a Placement on its own. DeltaForSwap and
// DeltaForRelocate compute hypothetical bounding boxes by substituting
// coordinates in-memory, so the SA refiner can evaluate and reject a
// candidate move without ever touching the real placement (§4.4).
package cost
