package main

import (
	"errors"
	"fmt"
	"math"

	"github.com/guptarohit/asciigraph"
	"github.com/milk9111/physdemo/physsync"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	simDuration float64
	simTrack    string
	simQuiet    bool
)

// runSim steps the scene without a window at the configured fixed step and
// plots the tracked node's height.
func runSim(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	l, err := load(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}

	dt := cfg.Physics.FixedStep
	if dt <= 0 {
		return errors.New("sim: physics.fixed_step must be positive")
	}
	world := newWorld(cfg)
	session := newSession(cfg, world, physsync.FixedClock(dt), nil, log)
	report, err := session.Build(l.scene, l.doc)
	if err != nil {
		return err
	}
	if err := session.Start(); err != nil {
		return err
	}

	node, ok := session.Scene.Node(simTrack)
	if !ok {
		return fmt.Errorf("sim: no node named %q", simTrack)
	}

	ticks := int(math.Ceil(simDuration / dt))
	heights := make([]float64, 0, ticks)
	for range ticks {
		session.Loop.Tick()
		heights = append(heights, float64(node.Position.Y))
	}
	log.Info("simulation finished",
		zap.Int("ticks", ticks),
		zap.Float64("elapsed", session.Loop.Elapsed()),
		zap.Int("bodies", report.Bodies))

	out := cmd.OutOrStdout()
	if !simQuiet && len(heights) > 0 {
		fmt.Fprintln(out, asciigraph.Plot(heights,
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s height over %.2fs", simTrack, session.Loop.Elapsed())),
		))
	}
	p := node.Position
	fmt.Fprintf(out, "%s final position (%.3f, %.3f, %.3f)\n", simTrack, p.X, p.Y, p.Z)
	for _, d := range session.Diagnostics.Drain() {
		fmt.Fprintln(out, d)
	}
	return nil
}
