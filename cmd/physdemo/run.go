package main

import (
	"context"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/physdemo/assets"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)

	game := newGame(ctx, cfg, log)
	if cfg.Watch {
		dirs := watchDirs(cfg)
		if len(dirs) == 0 {
			log.Warn("watch requested but no scene files are on disk")
		} else {
			w, err := assets.NewWatcher(dirs...)
			if err != nil {
				return err
			}
			defer w.Close()
			game.watcher = w
			log.Info("watching for changes", zap.Strings("dirs", dirs))
		}
	}
	game.startLoad()

	return ebiten.RunGame(game)
}
