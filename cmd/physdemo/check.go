package main

import (
	"fmt"

	"github.com/milk9111/physdemo/physsync"
	"github.com/spf13/cobra"
)

// runCheck validates the descriptor, builds the scene once and reports what
// was skipped. It fails when anything was.
func runCheck(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	l, err := load(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	issues := l.doc.Issues()
	for _, is := range issues {
		fmt.Fprintln(out, "descriptor:", is)
	}

	session := newSession(cfg, newWorld(cfg), physsync.FixedClock(cfg.Physics.FixedStep), nil, log)
	report, err := session.Build(l.scene, l.doc)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "bodies %d  active %d  constraints %d  scripts %d\n",
		report.Bodies, report.Active, report.Constraints, report.Scripts)
	diags := session.Diagnostics.Drain()
	for _, d := range diags {
		fmt.Fprintln(out, "build:", d)
	}

	if n := len(issues) + len(diags); n > 0 {
		return fmt.Errorf("check: %d problem(s)", n)
	}
	return nil
}
