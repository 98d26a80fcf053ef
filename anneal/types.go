package anneal

// Params configures a single SA run (§4.6). Zero value is not
// meaningful except where noted (MovesPerTemp == 0 degenerates to an
// immediate exit, per §8's boundary behaviors); use DefaultParams and
// override fields as needed, mirroring the Options/DefaultOptions
// shape used elsewhere in this codebase.
type Params struct {
	// T0 is the initial temperature.
	T0 float64
	// Alpha is the geometric cooling ratio, 0 < Alpha < 1.
	Alpha float64
	// MovesPerTemp is the number of moves attempted before cooling.
	MovesPerTemp int
	// ProbRefine is the probability of a refine (short-distance) move
	// vs. an explore (any-distance) move.
	ProbRefine float64
	// TMin is the stopping temperature.
	TMin float64
	// MaxStallTemps triggers early exit after this many consecutive
	// temperatures with zero accepted moves.
	MaxStallTemps int
	// RelocateProb is the probability, within an explore move, of
	// proposing a relocate onto a free slot instead of a swap with
	// another bound instance. Not named in the conflicting READMEs
	// (§9 Open Question); a conservative default keeps relocate rare
	// so swaps — the move class the literature and both READMEs
	// discuss — dominate exploration.
	RelocateProb float64
	// WindowRetries bounds how many times a refine move redraws a
	// candidate before falling through to an explore move, per §4.6
	// step 3 ("otherwise redraw up to a small bounded number of
	// times").
	WindowRetries int
}

// PresetConservative is the adopted default SA schedule, chosen over a
// faster but less stable alternative per §9 Open Question.
var PresetConservative = Params{
	T0: 100.0, Alpha: 0.92, MovesPerTemp: 200, ProbRefine: 0.50,
	TMin: 1e-3, MaxStallTemps: 5, RelocateProb: 0.05, WindowRetries: 8,
}

// PresetAggressive is the second conflicting "recommended"
// configuration; exposed rather than discarded per §9's Open Question
// resolution ("expose both as documented presets and let callers
// choose").
var PresetAggressive = Params{
	T0: 100.0, Alpha: 0.97, MovesPerTemp: 200, ProbRefine: 0.70,
	TMin: 1e-3, MaxStallTemps: 5, RelocateProb: 0.05, WindowRetries: 8,
}

// DefaultParams returns the adopted default, PresetConservative.
func DefaultParams() Params { return PresetConservative }

// TempRecord is the per-temperature-boundary report emitted to a
// Reporter (§4.6 "Reporting", §6 "SA trace").
type TempRecord struct {
	T         float64
	Attempts  int
	Accepts   int
	Cost      int64
	ElapsedMs int64
}

// Reporter receives a synchronous callback at every temperature
// boundary. It is an "optional collaborator" (§9): a small callable
// with a no-op default, not a plugin system.
type Reporter interface {
	OnTemperature(rec TempRecord)
}

// NoopReporter discards every record. It is the default when Run is
// called with a nil Reporter.
type NoopReporter struct{}

// OnTemperature implements Reporter by doing nothing.
func (NoopReporter) OnTemperature(TempRecord) {}

// CancelFunc is polled at every temperature boundary (§5
// "Cancellation"); returning true causes Run to stop and return the
// current, feasible placement. A nil CancelFunc never cancels.
type CancelFunc func() bool
