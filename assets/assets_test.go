package assets

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/milk9111/physdemo/descriptor"
	"github.com/milk9111/physdemo/motion"
	"github.com/milk9111/physdemo/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoFilesParse(t *testing.T) {
	data, err := Read(DemoScene)
	require.NoError(t, err)
	sc, err := scene.Parse(data)
	require.NoError(t, err)
	require.NotNil(t, sc.Camera)

	data, err = Read("./assets/" + DemoDescriptor)
	require.NoError(t, err)
	doc, err := descriptor.Parse(data)
	require.NoError(t, err)
	assert.Empty(t, doc.Issues())

	for _, rb := range doc.RigidBodies {
		_, ok := sc.Node(rb.Name)
		assert.True(t, ok, "scene has %s", rb.Name)
		if rb.Script == "" {
			continue
		}
		src, err := ScriptLoader("")(rb.Script)
		require.NoError(t, err)
		_, err = motion.Compile(rb.Script, src)
		assert.NoError(t, err)
	}
}

func TestReadPrefersDisk(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "scene.yaml")
	require.NoError(t, os.WriteFile(p, []byte("nodes: []\n"), 0o644))

	data, err := Read(p)
	require.NoError(t, err)
	assert.Equal(t, "nodes: []\n", string(data))
	assert.True(t, OnDisk(p))
	_, ok := ModTime(p)
	assert.True(t, ok)

	_, err = Read(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestScriptLoader(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "paddle.tengo"), []byte("angle = 1"), 0o644))

	data, err := ScriptLoader(dir)("scripts/paddle.tengo")
	require.NoError(t, err)
	assert.Equal(t, "angle = 1", string(data))

	data, err = ScriptLoader("")("paddle.tengo")
	require.NoError(t, err)
	assert.Contains(t, string(data), "position")

	_, err = ScriptLoader(dir)("nope.tengo")
	assert.Error(t, err)
}

func TestWatcherBatchesBurst(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	scenePath := filepath.Join(dir, "scene.yaml")
	descPath := filepath.Join(dir, "physics.json")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(descPath, []byte("{}"), 0o644))
	require.NoError(t, os.WriteFile(scenePath, []byte("nodes: []\n"), 0o644))
	require.NoError(t, os.WriteFile(descPath, []byte("{\"rigid_bodies\": []}"), 0o644))

	select {
	case b := <-w.Batches():
		assert.Equal(t, []string{descPath, scenePath}, b.Paths)
		assert.False(t, b.At.IsZero())
	case err := <-w.Errors():
		t.Fatalf("watch error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("no batch")
	}

	require.NoError(t, w.Close())
	require.NoError(t, w.Close(), "close is idempotent")
	_, ok := <-w.Batches()
	assert.False(t, ok, "batches closed")
}

func TestIsWatched(t *testing.T) {
	assert.True(t, IsWatched("a/scene.YAML"))
	assert.True(t, IsWatched("physics.json"))
	assert.True(t, IsWatched("scripts/paddle.tengo"))
	assert.False(t, IsWatched("notes.txt"))
}
