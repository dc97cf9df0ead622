package fileutil

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/reelmeta/internal/testutil"
)

func TestFileExists(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.WriteFileString("present.json", "{}")

	assert.True(t, FileExists(env.Path("present.json")))
	assert.False(t, FileExists(env.Path("missing.json")))
	assert.False(t, FileExists(env.RootDir()), "directories are not files")
}

func TestWriteFile(t *testing.T) {
	testCases := []struct {
		name        string
		existing    string
		overwrite   bool
		wantWritten bool
		wantContent string
	}{
		{
			name:        "new file",
			wantWritten: true,
			wantContent: "new",
		},
		{
			name:        "existing file kept",
			existing:    "old",
			wantWritten: false,
			wantContent: "old",
		},
		{
			name:        "existing file overwritten",
			existing:    "old",
			overwrite:   true,
			wantWritten: true,
			wantContent: "new",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			env := testutil.NewTestEnv(t)
			if tc.existing != "" {
				env.WriteFileString("out/result.txt", tc.existing)
			}

			written, err := WriteFile(env.Path("out", "result.txt"), []byte("new"), tc.overwrite)
			require.NoError(t, err)
			assert.Equal(t, tc.wantWritten, written)
			assert.Equal(t, tc.wantContent, env.ReadFileString("out/result.txt"))

			entries, err := os.ReadDir(env.Path("out"))
			require.NoError(t, err)
			assert.Len(t, entries, 1, "temporary files are cleaned up")
		})
	}
}

func TestWriteFileCreatesDirectories(t *testing.T) {
	env := testutil.NewTestEnv(t)

	written, err := WriteFile(env.Path("a", "b", "c.yaml"), []byte("x: 1\n"), false)
	require.NoError(t, err)
	assert.True(t, written)

	info, err := os.Stat(env.Path("a", "b", "c.yaml"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestWriteFileFailsOnBadDirectory(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.WriteFileString("blocker", "not a directory")

	written, err := WriteFile(env.Path("blocker", "out.txt"), []byte("x"), true)
	require.Error(t, err)
	assert.False(t, written)
}
