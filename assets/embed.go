// Package assets serves the bundled demo scene and loads scene, descriptor
// and script files, preferring files on disk over the embedded copies.
package assets

import (
	"embed"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

//go:embed demo
var demoFS embed.FS

const (
	DemoScene      = "demo/scene.yaml"
	DemoDescriptor = "demo/physics.json"
	DemoScripts    = "demo/scripts"
)

// Read returns the file at name from disk, falling back to the embedded
// demo files.
func Read(name string) ([]byte, error) {
	if data, err := os.ReadFile(name); err == nil {
		return data, nil
	}
	data, err := demoFS.ReadFile(cleanPath(name))
	if err != nil {
		return nil, fmt.Errorf("assets: read %s: %w", name, err)
	}
	return data, nil
}

// ScriptLoader resolves motion script names against dir on disk, then
// against the embedded demo scripts.
func ScriptLoader(dir string) func(name string) ([]byte, error) {
	return func(name string) ([]byte, error) {
		clean := cleanScriptPath(name)
		if dir != "" {
			if data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(clean))); err == nil {
				return data, nil
			}
		}
		data, err := demoFS.ReadFile(path.Join(DemoScripts, clean))
		if err != nil {
			return nil, fmt.Errorf("assets: load script %s: %w", name, err)
		}
		return data, nil
	}
}

// ModTime reports the modification time of name on disk.
func ModTime(name string) (time.Time, bool) {
	info, err := os.Stat(name)
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// OnDisk reports whether name exists as a regular file on disk, i.e. is
// worth watching.
func OnDisk(name string) bool {
	info, err := os.Stat(name)
	return err == nil && info.Mode().IsRegular()
}

func cleanPath(name string) string {
	s := path.Clean(filepath.ToSlash(name))
	s = strings.TrimPrefix(s, "./")
	if after, ok := strings.CutPrefix(s, "assets/"); ok {
		s = after
	}
	return s
}

func cleanScriptPath(name string) string {
	s := cleanPath(name)
	if after, ok := strings.CutPrefix(s, DemoScripts+"/"); ok {
		s = after
	}
	if after, ok := strings.CutPrefix(s, "scripts/"); ok {
		s = after
	}
	return s
}
