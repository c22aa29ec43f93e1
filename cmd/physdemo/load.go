package main

import (
	"context"
	"fmt"
	"path/filepath"

	"cogentcore.org/core/math32"
	"github.com/milk9111/physdemo/assets"
	"github.com/milk9111/physdemo/config"
	"github.com/milk9111/physdemo/descriptor"
	"github.com/milk9111/physdemo/physics/cpworld"
	"github.com/milk9111/physdemo/physsync"
	"github.com/milk9111/physdemo/scene"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type loaded struct {
	scene *scene.Scene
	doc   *descriptor.Document
}

func scenePathOf(cfg *config.Config) string {
	if cfg.Scene == "" {
		return assets.DemoScene
	}
	return cfg.Scene
}

func descriptorPathOf(cfg *config.Config) string {
	if cfg.Descriptor == "" {
		return assets.DemoDescriptor
	}
	return cfg.Descriptor
}

// load reads the scene and the descriptor concurrently. Both must succeed.
func load(ctx context.Context, cfg *config.Config, log *zap.Logger) (loaded, error) {
	result := make(chan loaded, 1)
	join := physsync.NewJoin(func(s *scene.Scene, d *descriptor.Document) {
		result <- loaded{scene: s, doc: d}
	}, nil)

	var g errgroup.Group
	g.Go(func() error {
		path := scenePathOf(cfg)
		data, err := assets.Read(path)
		if err == nil {
			var sc *scene.Scene
			if sc, err = scene.Parse(data); err == nil {
				log.Debug("scene loaded", zap.String("path", path), zap.Int("nodes", sc.Len()))
				join.SetLeft(sc)
				return nil
			}
			err = fmt.Errorf("scene %s: %w", path, err)
		}
		join.Fail(err)
		return err
	})
	g.Go(func() error {
		path := descriptorPathOf(cfg)
		data, err := assets.Read(path)
		if err == nil {
			var doc *descriptor.Document
			if doc, err = descriptor.Parse(data); err == nil {
				log.Debug("descriptor loaded", zap.String("path", path),
					zap.Int("bodies", len(doc.RigidBodies)), zap.Int("constraints", len(doc.Constraints)))
				join.SetRight(doc)
				return nil
			}
			err = fmt.Errorf("descriptor %s: %w", path, err)
		}
		join.Fail(err)
		return err
	})
	if err := g.Wait(); err != nil {
		return loaded{}, err
	}
	if err := ctx.Err(); err != nil {
		return loaded{}, err
	}
	return <-result, nil
}

func newWorld(cfg *config.Config) *cpworld.World {
	g := cfg.Physics.Gravity
	return cpworld.New(cpworld.Options{
		UnitsPerMeter: cfg.Physics.UnitsPerMeter,
		FixedStep:     cfg.Physics.FixedStep,
		Iterations:    cfg.Physics.Iterations,
		Gravity:       math32.Vec3(g[0], g[1], g[2]),
	})
}

func newSession(cfg *config.Config, world *cpworld.World, clock physsync.Clock, presenter physsync.Presenter, log *zap.Logger) *physsync.Session {
	opts := physsync.Options{
		SubSteps:  cfg.Physics.SubSteps,
		Derive:    physsync.DeriveOptions{ApplyWorldScale: cfg.Physics.ApplyWorldScale},
		Clock:     clock,
		Presenter: presenter,
		Scripts:   assets.ScriptLoader(scriptDir(cfg)),
		Log:       log,
	}
	if cfg.Physics.Ground {
		opts.Ground = physsync.DefaultGround()
	}
	return physsync.NewSession(world, opts)
}

func scriptDir(cfg *config.Config) string {
	if cfg.Descriptor == "" {
		return ""
	}
	return filepath.Join(filepath.Dir(cfg.Descriptor), "scripts")
}

// watchDirs lists the on-disk directories holding the loaded files.
func watchDirs(cfg *config.Config) []string {
	seen := make(map[string]bool)
	var dirs []string
	add := func(dir string) {
		if dir == "" || seen[dir] {
			return
		}
		if _, ok := assets.ModTime(dir); !ok {
			return
		}
		seen[dir] = true
		dirs = append(dirs, dir)
	}
	for _, p := range []string{cfg.Scene, cfg.Descriptor} {
		if p != "" && assets.OnDisk(p) {
			add(filepath.Dir(p))
		}
	}
	add(scriptDir(cfg))
	return dirs
}
