package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirXDG(t *testing.T) {
	custom := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", custom)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(custom, appName); dir != want {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, want)
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		scene   string
		format  string
		scenes  int
		formats int
		want    string
	}{
		{"default", "", "scenes/star.toml", "json", 1, 1, "scenes/star.json"},
		{"graphviz", "", "star.toml", "graphviz", 1, 1, "star.graphviz.svg"},
		{"explicit file", "out/a.svg", "star.toml", "svg", 1, 1, "out/a.svg"},
		{"stem", "out/a.svg", "star.toml", "dot", 1, 2, "out/a.dot"},
		{"directory", "out", "scenes/star.toml", "svg", 3, 1, "out/star.svg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputPath(tt.output, tt.scene, tt.format, tt.scenes, tt.formats)
			if got != filepath.FromSlash(tt.want) {
				t.Errorf("outputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}
