package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/milk9111/physdemo/config"
	"github.com/milk9111/physdemo/physsync"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadBundledDemo(t *testing.T) {
	cfg := config.DefaultConfig()
	l, err := load(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, l.scene)
	require.NotNil(t, l.doc)
	assert.NotNil(t, l.scene.Camera)
	assert.NotEmpty(t, l.doc.RigidBodies)
}

func TestLoadMissingFile(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Scene = filepath.Join(t.TempDir(), "nope.yaml")
	_, err := load(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestLoadCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := load(ctx, config.DefaultConfig(), zap.NewNop())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDemoBuildsCleanly(t *testing.T) {
	cfg := config.DefaultConfig()
	l, err := load(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)

	s := newSession(cfg, newWorld(cfg), physsync.FixedClock(cfg.Physics.FixedStep), nil, zap.NewNop())
	report, err := s.Build(l.scene, l.doc)
	require.NoError(t, err)
	assert.Empty(t, l.doc.Issues())
	assert.Zero(t, report.Diagnostics, "%v", s.Diagnostics.Drain())
	assert.Equal(t, 1, report.Scripts)
	require.NoError(t, s.Start())
	for range 10 {
		s.Loop.Tick()
	}
	assert.InDelta(t, 10*cfg.Physics.FixedStep, s.Loop.Elapsed(), 1e-9)
}

func TestWatchDirs(t *testing.T) {
	cfg := config.DefaultConfig()
	assert.Empty(t, watchDirs(cfg), "bundled files are not watched")

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "scripts"), 0o755))
	cfg.Scene = filepath.Join(dir, "scene.yaml")
	cfg.Descriptor = filepath.Join(dir, "physics.json")
	require.NoError(t, os.WriteFile(cfg.Scene, []byte("nodes: []\n"), 0o644))
	require.NoError(t, os.WriteFile(cfg.Descriptor, []byte("{}"), 0o644))

	assert.Equal(t, []string{dir, filepath.Join(dir, "scripts")}, watchDirs(cfg))
}
