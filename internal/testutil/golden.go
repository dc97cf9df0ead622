package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// GoldenHelper compares generated output with files under a testdata
// directory. Setting UPDATE_GOLDEN=true rewrites the files instead.
type GoldenHelper struct {
	t          *testing.T
	goldenDir  string
	updateMode bool
}

// NewGoldenHelper creates a new golden file helper rooted at goldenDir.
func NewGoldenHelper(t *testing.T, goldenDir string) *GoldenHelper {
	t.Helper()

	return &GoldenHelper{
		t:          t,
		goldenDir:  goldenDir,
		updateMode: os.Getenv("UPDATE_GOLDEN") == "true",
	}
}

// GoldenPath returns the full path to a golden file.
func (g *GoldenHelper) GoldenPath(name string) string {
	return filepath.Join(g.goldenDir, name)
}

// AssertGoldenString compares actual with the golden file name.
func (g *GoldenHelper) AssertGoldenString(name, actual string) {
	g.t.Helper()

	if g.update(name, actual) {
		return
	}
	assert.Equal(g.t, g.read(name), actual, "content does not match golden file %s", name)
}

// AssertGoldenJSON compares JSON content, ignoring formatting differences.
func (g *GoldenHelper) AssertGoldenJSON(name string, actual []byte) {
	g.t.Helper()

	if g.update(name, string(actual)) {
		return
	}
	assert.JSONEq(g.t, g.read(name), string(actual), "JSON content does not match golden file %s", name)
}

func (g *GoldenHelper) update(name, actual string) bool {
	g.t.Helper()

	if !g.updateMode {
		return false
	}
	path := g.GoldenPath(name)
	require.NoError(g.t, os.MkdirAll(filepath.Dir(path), 0o755), "failed to create golden file directory")
	require.NoError(g.t, os.WriteFile(path, []byte(actual), 0o644), "failed to update golden file")
	g.t.Logf("Updated golden file: %s", path)
	return true
}

func (g *GoldenHelper) read(name string) string {
	g.t.Helper()

	path := g.GoldenPath(name)
	golden, err := os.ReadFile(path)
	require.NoError(g.t, err, "failed to read golden file %s", path)
	return string(golden)
}
