package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// DefaultIndex is written as index.html when a fixture does not supply one.
const DefaultIndex = "<!doctype html><title>game</title>"

// WriteBuildDir creates dir with an index.html and the given files, keyed by
// slash separated path relative to dir.
func WriteBuildDir(t testing.TB, dir string, files map[string]string) {
	t.Helper()

	if _, ok := files["index.html"]; !ok {
		files = withIndex(files)
	}

	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
			t.Fatalf("failed to create directory for %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
}

func withIndex(files map[string]string) map[string]string {
	out := make(map[string]string, len(files)+1)
	for k, v := range files {
		out[k] = v
	}
	out["index.html"] = DefaultIndex
	return out
}
