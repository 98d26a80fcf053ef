// Command sasic is a thin CLI wrapper around the placement engine
// core (§5 "cmd/sasic itself is also single-threaded... not a sweep
// orchestrator"). It reads a fabric and a mapped design, runs greedy
// seeding, simulated annealing, H-tree clock tree synthesis, and the
// ECO rewrite, then writes the resulting artefacts to --out.
package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"

	"sasic/anneal"
	"sasic/cts"
	"sasic/ioload"
	"sasic/netlist"
	"sasic/report"
	"sasic/session"
)

var cli struct {
	Fabric       string  `name:"fabric" required:"" help:"Path to the fabric specification JSON."`
	Design       string  `name:"design" required:"" help:"Path to the mapped design JSON."`
	Seed         uint64  `name:"seed" default:"0" help:"Deterministic SA RNG seed."`
	T0           float64 `name:"t0" default:"100" help:"SA initial temperature."`
	Alpha        float64 `name:"alpha" default:"0.92" help:"SA geometric cooling ratio."`
	MovesPerTemp int     `name:"moves-per-temp" default:"200" help:"Moves attempted per temperature."`
	ProbRefine   float64 `name:"prob-refine" default:"0.5" help:"Probability of a refine (short-distance) move."`
	TMin         float64 `name:"t-min" default:"0.001" help:"SA stopping temperature."`
	MaxStall     int     `name:"max-stall" default:"5" help:"Consecutive zero-accept temperatures before early exit."`
	MaxFanout    int     `name:"max-fanout" default:"4" help:"Clock tree buffer fanout bound."`
	Out          string  `name:"out" default:"." help:"Output directory for artefacts."`
}

func main() {
	kong.Parse(&cli, kong.Description("Structured-ASIC placement engine."))

	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	if err := run(log); err != nil {
		log.Error().Err(err).Msg("placement run failed")
		os.Exit(1)
	}
}

// artefact pairs an output file name with its already-rendered bytes.
// run collects every artefact in memory and only touches disk once
// the whole pipeline has succeeded, so a fatal error never leaves a
// partial set of output files behind (§7 "Partial artefacts are not
// written on error").
type artefact struct {
	name string
	data []byte
}

func run(log zerolog.Logger) error {
	fabFile, err := os.Open(cli.Fabric)
	if err != nil {
		return fmt.Errorf("opening fabric file: %w", err)
	}
	defer fabFile.Close()
	fab, err := ioload.LoadFabric(fabFile)
	if err != nil {
		return err
	}
	log.Info().Int32("slots", fab.Len()).Msg("fabric loaded")

	designFile, err := os.Open(cli.Design)
	if err != nil {
		return fmt.Errorf("opening design file: %w", err)
	}
	defer designFile.Close()
	nl, err := ioload.LoadDesign(designFile)
	if err != nil {
		return err
	}
	log.Info().Int32("instances", nl.Len()).Msg("design loaded")

	sess := session.New(fab, nl)
	if err := sess.Seed(); err != nil {
		return err
	}
	log.Info().Int64("cost", sess.Cost().Total()).Msg("greedy seed complete")

	var traceBuf bytes.Buffer
	tracer := report.NewTraceWriter(&traceBuf)

	params := anneal.Params{
		T0:            cli.T0,
		Alpha:         cli.Alpha,
		MovesPerTemp:  cli.MovesPerTemp,
		ProbRefine:    cli.ProbRefine,
		TMin:          cli.TMin,
		MaxStallTemps: cli.MaxStall,
		RelocateProb:  anneal.DefaultParams().RelocateProb,
		WindowRetries: anneal.DefaultParams().WindowRetries,
	}
	sess.Anneal(params, cli.Seed, tracer, nil)
	if tracer.Err() != nil {
		log.Warn().Err(tracer.Err()).Msg("sa trace write failed")
	}
	log.Info().Int64("cost", sess.Cost().Total()).Msg("annealing complete")

	var placementBuf bytes.Buffer
	if err := report.WritePlacementMap(&placementBuf, sess.Placement()); err != nil {
		return err
	}

	if err := sess.BuildClockTree(cts.Params{MaxFanout: cli.MaxFanout}); err != nil {
		return err
	}
	var clockBuf bytes.Buffer
	if err := report.WriteClockTree(&clockBuf, sess.ClockTree()); err != nil {
		return err
	}
	log.Info().Int("depth", sess.ClockTree().Depth()).Msg("clock tree synthesized")

	final, err := sess.Rewrite(netlist.Comb)
	if err != nil {
		return err
	}
	var ecoBuf bytes.Buffer
	if err := report.WriteEcoNetlist(&ecoBuf, final); err != nil {
		return err
	}

	if err := os.MkdirAll(cli.Out, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	artefacts := []artefact{
		{"placement.txt", placementBuf.Bytes()},
		{"clock_tree.json", clockBuf.Bytes()},
		{"eco.json", ecoBuf.Bytes()},
		{"sa_trace.jsonl", traceBuf.Bytes()},
	}
	for _, a := range artefacts {
		if err := os.WriteFile(filepath.Join(cli.Out, a.name), a.data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", a.name, err)
		}
	}

	log.Info().Str("out", cli.Out).Msg("run complete")
	return nil
}
