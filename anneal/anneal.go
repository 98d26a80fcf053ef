package anneal

import (
	"math"
	"time"

	"sasic/cost"
	"sasic/fabric"
	"sasic/netlist"
	"sasic/placement"
	"sasic/seed"
)

// Run refines pl in place using simulated annealing (§4.6). model must
// already reflect pl's current cost (typically built by cost.New right
// after the greedy seeder runs); Run mutates both pl and model as it
// accepts moves.
//
// reporter may be nil, in which case NoopReporter is used. cancel may
// be nil, in which case the run never cancels early.
//
// Run never returns a placement in an inconsistent state: every
// accepted move is committed to pl and model together via
// cost.Model.ApplySwap/ApplyRelocate before Run proceeds.
func Run(pl *placement.Placement, model *cost.Model, params Params, seedVal uint64, reporter Reporter, cancel CancelFunc) {
	if reporter == nil {
		reporter = NoopReporter{}
	}

	if params.MovesPerTemp <= 0 {
		// §8 boundary behavior: moves_per_temp=0 exits immediately
		// with the seeded placement, after one report at T0.
		reporter.OnTemperature(TempRecord{T: params.T0, Cost: model.Total()})
		return
	}

	fab := pl.Fabric()
	nl := pl.Netlist()
	rng := NewRNG(seedVal)
	diameter := float64(fab.Die().Width) + float64(fab.Die().Height)

	bound := boundInstances(pl)
	T := params.T0
	stall := 0
	start := time.Now()

	for {
		attempts, accepts := 0, 0
		for ; attempts < params.MovesPerTemp; attempts++ {
			if len(bound) < 2 {
				break
			}
			accepted := attemptMove(pl, model, nl, fab, bound, rng, params, T, diameter)
			if accepted {
				accepts++
			}
		}

		if accepts > 0 {
			stall = 0
		} else {
			stall++
		}

		reporter.OnTemperature(TempRecord{
			T:         T,
			Attempts:  attempts,
			Accepts:   accepts,
			Cost:      model.Total(),
			ElapsedMs: time.Since(start).Milliseconds(),
		})

		if cancel != nil && cancel() {
			return
		}

		T *= params.Alpha
		if T < params.TMin || stall >= params.MaxStallTemps {
			return
		}
	}
}

// boundInstances returns every currently bound instance index, in
// ascending index order — a defined, non-hash-derived iteration order,
// required for determinism (§4.6).
func boundInstances(pl *placement.Placement) []int32 {
	nl := pl.Netlist()
	out := make([]int32, 0, nl.Len())
	for i := int32(0); i < nl.Len(); i++ {
		if _, ok := pl.SlotOf(i); ok {
			out = append(out, i)
		}
	}
	return out
}

// attemptMove draws one candidate move, evaluates it, and commits it
// if accepted. It returns whether the move was accepted.
func attemptMove(
	pl *placement.Placement,
	model *cost.Model,
	nl *netlist.Netlist,
	fab *fabric.Fabric,
	bound []int32,
	rng *RNG,
	params Params,
	T float64,
	diameter float64,
) bool {
	i := bound[rng.Intn(len(bound))]
	refine := rng.Float64() < params.ProbRefine

	if refine {
		if j, ok := pickWindowPartner(pl, nl, fab, bound, rng, i, T, params.T0, diameter, params.WindowRetries); ok {
			return tryAcceptSwap(model, rng, T, i, j)
		}
		// Fall through to explore, per §4.6 step 3.
	}

	if rng.Float64() < params.RelocateProb {
		if slotIdx, ok := pickRelocateSlot(pl, fab, nl, rng, i); ok {
			return tryAcceptRelocate(model, rng, T, i, slotIdx)
		}
	}

	j, ok := pickExplorePartner(nl, bound, rng, i)
	if !ok {
		return false
	}
	return tryAcceptSwap(model, rng, T, i, j)
}

// pickWindowPartner chooses a random kind-compatible bound instance j
// whose slot lies within the temperature-scaled window around i's
// slot (§4.6 step 3). It redraws up to retries times before giving up.
func pickWindowPartner(pl *placement.Placement, nl *netlist.Netlist, fab *fabric.Fabric, bound []int32, rng *RNG, i int32, T, T0, diameter float64, retries int) (int32, bool) {
	if T0 <= 0 {
		// T0=0 degenerates to pure greedy descent (§8); the window
		// radius is undefined when T0 is zero, so fall through to the
		// explore path, which accept() will still gate to Δ<=0 moves.
		return 0, false
	}

	ix, iy, _ := pl.Coord(i)
	radius := int64(math.Max(1, math.Round(diameter*T/T0)))
	iKind := seed.TargetSlotKind(nl.InstanceByIndex(i).Kind)

	for attempt := 0; attempt < retries; attempt++ {
		j := bound[rng.Intn(len(bound))]
		if j == i {
			continue
		}
		if seed.TargetSlotKind(nl.InstanceByIndex(j).Kind) != iKind {
			continue
		}
		jx, jy, _ := pl.Coord(j)
		if absInt32(jx-ix) <= int32(radius) && absInt32(jy-iy) <= int32(radius) {
			return j, true
		}
	}
	return 0, false
}

// pickExplorePartner chooses a uniformly random kind-compatible bound
// instance j != i, anywhere on the fabric (§4.6 step 4).
func pickExplorePartner(nl *netlist.Netlist, bound []int32, rng *RNG, i int32) (int32, bool) {
	iKind := seed.TargetSlotKind(nl.InstanceByIndex(i).Kind)
	candidates := make([]int32, 0, len(bound))
	for _, j := range bound {
		if j == i {
			continue
		}
		if seed.TargetSlotKind(nl.InstanceByIndex(j).Kind) == iKind {
			candidates = append(candidates, j)
		}
	}
	if len(candidates) == 0 {
		return 0, false
	}
	return candidates[rng.Intn(len(candidates))], true
}

// pickRelocateSlot chooses a uniformly random free, kind-compatible
// slot for i (§4.6 step 4, relocate branch).
func pickRelocateSlot(pl *placement.Placement, fab *fabric.Fabric, nl *netlist.Netlist, rng *RNG, i int32) (int32, bool) {
	kind := seed.TargetSlotKind(nl.InstanceByIndex(i).Kind)
	free := make([]int32, 0)
	for _, slotIdx := range fab.SlotsOfKind(kind) {
		if _, occupied := pl.InstOf(slotIdx); !occupied {
			free = append(free, slotIdx)
		}
	}
	if len(free) == 0 {
		return 0, false
	}
	return free[rng.Intn(len(free))], true
}

// tryAcceptSwap evaluates a swap's delta, applies Metropolis
// acceptance, and commits it if accepted.
func tryAcceptSwap(model *cost.Model, rng *RNG, T float64, i, j int32) bool {
	delta := model.DeltaForSwap(i, j)
	if !accept(delta, T, rng) {
		return false
	}
	_ = model.ApplySwap(i, j) // kind-compatibility was checked by the caller; cannot fail
	return true
}

// tryAcceptRelocate evaluates a relocate's delta, applies Metropolis
// acceptance, and commits it if accepted.
func tryAcceptRelocate(model *cost.Model, rng *RNG, T float64, i, slotIdx int32) bool {
	delta := model.DeltaForRelocate(i, slotIdx)
	if !accept(delta, T, rng) {
		return false
	}
	_ = model.ApplyRelocate(i, slotIdx) // kind-compatibility was checked by the caller; cannot fail
	return true
}

// accept implements the Metropolis criterion with the numeric guards
// from §4.6: Δ<=0 always accepts (including the Δ=0 tie-break, which
// is treated as an improvement to avoid stagnation); T<1e-12 degrades
// to greedy descent; Δ/T>40 clamps acceptance probability to 0 to
// avoid overflow in math.Exp.
func accept(delta int64, T float64, rng *RNG) bool {
	if delta <= 0 {
		return true
	}
	if T < 1e-12 {
		return false
	}
	ratio := float64(delta) / T
	if ratio > 40 {
		return false
	}
	return math.Exp(-ratio) > rng.Float64()
}

func absInt32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
