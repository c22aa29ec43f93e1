package main

import (
	"fmt"
	"os"

	"github.com/milk9111/physdemo/config"
	"github.com/milk9111/physdemo/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configFile string
	logLevel   string
	devLog     bool
	scenePath  string
	descPath   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "physdemo",
		Short:         "scene-to-physics sync demo",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runWindow,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file (yaml)")
	pf.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.BoolVar(&devLog, "dev", false, "human-readable console logging")
	pf.StringVar(&scenePath, "scene", "", "scene file (default: bundled demo)")
	pf.StringVar(&descPath, "physics", "", "physics descriptor file (default: bundled demo)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "open a window and run the scene",
		RunE:  runWindow,
	}
	runCmd.Flags().Bool("debug", false, "draw the physics space")
	runCmd.Flags().Bool("watch", false, "reload when scene files change")
	rootCmd.Flags().AddFlagSet(runCmd.Flags())

	simCmd := &cobra.Command{
		Use:   "sim",
		Short: "run the scene headless and plot a body's height",
		RunE:  runSim,
	}
	simCmd.Flags().Float64Var(&simDuration, "time", 5, "simulated seconds")
	simCmd.Flags().StringVar(&simTrack, "track", "box", "body to plot")
	simCmd.Flags().BoolVar(&simQuiet, "quiet", false, "skip the plot")

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "validate the scene and descriptor and report diagnostics",
		RunE:  runCheck,
	}

	rootCmd.AddCommand(runCmd, simCmd, checkCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// setup loads config, applies flag overrides and builds the logger.
func setup(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		var err error
		if cfg, err = config.Load(configFile); err != nil {
			return nil, nil, err
		}
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if scenePath != "" {
		cfg.Scene = scenePath
	}
	if descPath != "" {
		cfg.Descriptor = descPath
	}
	if f := cmd.Flags().Lookup("debug"); f != nil && f.Changed {
		cfg.Debug, _ = cmd.Flags().GetBool("debug")
	}
	if f := cmd.Flags().Lookup("watch"); f != nil && f.Changed {
		cfg.Watch, _ = cmd.Flags().GetBool("watch")
	}

	log, err := logging.New(cfg.LogLevel, devLog)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}
