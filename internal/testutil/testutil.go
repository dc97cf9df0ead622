// Package testutil provides common test utilities for the reelmeta project.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestEnv provides a sandboxed test environment that validates all paths
// stay within a temporary directory. It is removed when the test completes.
type TestEnv struct {
	t       *testing.T
	rootDir string
}

// NewTestEnv creates a new sandboxed test environment.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()
	return &TestEnv{t: t, rootDir: t.TempDir()}
}

// RootDir returns the root directory of the test environment.
func (e *TestEnv) RootDir() string {
	return e.rootDir
}

// Path returns an absolute path within the test environment. A path that
// escapes the sandbox fails the test.
func (e *TestEnv) Path(elem ...string) string {
	e.t.Helper()

	clean := filepath.Clean(filepath.Join(e.rootDir, filepath.Join(elem...)))
	root := filepath.Clean(e.rootDir)
	if clean != root && !strings.HasPrefix(clean, root+string(filepath.Separator)) {
		e.t.Fatalf("path %q escapes test sandbox %q", clean, e.rootDir)
	}
	return clean
}

// WriteFileString writes content to path, creating parent directories.
func (e *TestEnv) WriteFileString(path, content string) {
	e.t.Helper()

	abs := e.Path(path)
	require.NoError(e.t, os.MkdirAll(filepath.Dir(abs), 0o755))
	require.NoError(e.t, os.WriteFile(abs, []byte(content), 0o644))
}

// ReadFileString returns the content of path.
func (e *TestEnv) ReadFileString(path string) string {
	e.t.Helper()

	content, err := os.ReadFile(e.Path(path))
	require.NoError(e.t, err)
	return string(content)
}

// FileExists reports whether path exists.
func (e *TestEnv) FileExists(path string) bool {
	e.t.Helper()
	_, err := os.Stat(e.Path(path))
	return err == nil
}

// Chdir switches the working directory to the sandbox root for the rest
// of the test.
func (e *TestEnv) Chdir() {
	e.t.Helper()
	e.t.Chdir(e.rootDir)
}

// ServeJSON writes body as a JSON response with the given status.
func ServeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

// NewServer starts an httptest server for handler and closes it when the
// test completes.
func NewServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}
