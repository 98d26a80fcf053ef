package session

import (
	"sasic/anneal"
	"sasic/cost"
	"sasic/cts"
	"sasic/eco"
	"sasic/fabric"
	"sasic/netlist"
	"sasic/placement"
	"sasic/seed"
)

// Session owns the fabric, netlist, placement, and running cost model
// for one placement run. It is not safe for concurrent use; each
// independent run (e.g. a multi-seed sweep) should build its own
// Session over a shared, immutable Fabric and Netlist (§5).
type Session struct {
	fab *fabric.Fabric
	nl  *netlist.Netlist
	pl  *placement.Placement
	cm  *cost.Model

	tree *cts.Tree
}

// New builds a Session with an empty placement over fab and nl.
func New(fab *fabric.Fabric, nl *netlist.Netlist) *Session {
	return &Session{
		fab: fab,
		nl:  nl,
		pl:  placement.New(fab, nl),
	}
}

// Fabric returns the session's fabric.
func (s *Session) Fabric() *fabric.Fabric { return s.fab }

// Netlist returns the session's netlist.
func (s *Session) Netlist() *netlist.Netlist { return s.nl }

// Placement returns the session's placement. Valid to call at any
// point; it is empty until Seed runs.
func (s *Session) Placement() *placement.Placement { return s.pl }

// Cost returns the session's running cost model. Valid only after
// Seed has succeeded; nil before then.
func (s *Session) Cost() *cost.Model { return s.cm }

// ClockTree returns the session's synthesized clock tree. Valid only
// after BuildClockTree has succeeded; nil before then.
func (s *Session) ClockTree() *cts.Tree { return s.tree }

// Seed runs the greedy seeder (C5) to produce an initial feasible
// placement, then builds the cost model (C4) over it. Must be called
// exactly once, before Anneal or BuildClockTree.
func (s *Session) Seed() error {
	if err := seed.Run(s.pl); err != nil {
		return err
	}
	s.cm = cost.New(s.pl)
	return nil
}

// Anneal runs the SA refiner (C6) in place over the session's
// placement and cost model. Seed must have succeeded first.
func (s *Session) Anneal(params anneal.Params, seedVal uint64, reporter anneal.Reporter, cancel anneal.CancelFunc) {
	anneal.Run(s.pl, s.cm, params, seedVal, reporter, cancel)
}

// BuildClockTree runs the H-tree clock tree synthesizer (C7) over the
// session's current placement. Seed (or Anneal) must have already
// bound every DFF instance.
func (s *Session) BuildClockTree(params cts.Params) error {
	tree, err := cts.Build(s.pl, params)
	if err != nil {
		return err
	}
	s.tree = tree
	return nil
}

// Rewrite runs the ECO rewriter (C8), producing the final gate-level
// netlist. BuildClockTree must have already succeeded.
func (s *Session) Rewrite(bufferCell netlist.CellKind) (*netlist.Netlist, error) {
	return eco.Rewrite(s.nl, s.pl, s.tree, bufferCell)
}
