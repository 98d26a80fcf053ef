// Package seed implements the greedy initial placer (C5): a
// fanout-weighted, nearest-compatible-slot assignment that yields a
// feasible starting placement before the SA refiner takes over.
//
// Ranking is by fanout descending, tie-broken by instance name for
// determinism (§4.5). Free slots of each kind are scanned in the
// fabric's row-major order, which supplies the deterministic tie-break
// when two free slots are equidistant from an instance's reference
// point — the same row-major-scan discipline the fabric package itself
// uses for iteration order.
package seed
