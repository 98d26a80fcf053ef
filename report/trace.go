package report

import (
	"encoding/json"
	"io"

	"sasic/anneal"
)

type traceLine struct {
	T         float64 `json:"t"`
	Attempts  int     `json:"attempts"`
	Accepts   int     `json:"accepts"`
	Cost      int64   `json:"cost"`
	ElapsedMs int64   `json:"elapsed_ms"`
}

// TraceWriter implements anneal.Reporter, writing one JSON object per
// line per temperature boundary (§6 "SA trace"). Write failures are
// swallowed rather than propagated: a Reporter's contract has no error
// return, and a trace-logging failure must never change the SA run's
// outcome (§7 "structured logs... must not change return status").
// The first failure is retained and inspectable via Err.
type TraceWriter struct {
	w   io.Writer
	err error
}

// NewTraceWriter wraps w as an anneal.Reporter.
func NewTraceWriter(w io.Writer) *TraceWriter {
	return &TraceWriter{w: w}
}

// OnTemperature implements anneal.Reporter.
func (t *TraceWriter) OnTemperature(rec anneal.TempRecord) {
	if t.err != nil {
		return
	}
	b, err := json.Marshal(traceLine{T: rec.T, Attempts: rec.Attempts, Accepts: rec.Accepts, Cost: rec.Cost, ElapsedMs: rec.ElapsedMs})
	if err != nil {
		t.err = err
		return
	}
	b = append(b, '\n')
	if _, err := t.w.Write(b); err != nil {
		t.err = err
	}
}

// Err returns the first write failure encountered, if any.
func (t *TraceWriter) Err() error { return t.err }
