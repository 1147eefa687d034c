package filesystem

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExists(t *testing.T) {
	fs := NewMemory()
	require.NoError(t, afero.WriteFile(fs, "/app/package.json", []byte("{}"), 0644))

	ok, err := Exists(fs, "/app/package.json")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Exists(fs, "/app/node_modules")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIsDir(t *testing.T) {
	fs := NewMemory()
	require.NoError(t, fs.MkdirAll("/app/node_modules", 0755))
	require.NoError(t, afero.WriteFile(fs, "/app/file", nil, 0644))

	ok, err := IsDir(fs, "/app/node_modules")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = IsDir(fs, "/app/file")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = IsDir(fs, "/missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCopyFile(t *testing.T) {
	fs := NewMemory()
	require.NoError(t, afero.WriteFile(fs, "/src/README.md", []byte("# core"), 0640))

	require.NoError(t, CopyFile(fs, "/src/README.md", "/dst/nested/README.md"))

	content, err := afero.ReadFile(fs, "/dst/nested/README.md")
	require.NoError(t, err)
	assert.Equal(t, "# core", string(content))

	info, err := fs.Stat("/dst/nested/README.md")
	require.NoError(t, err)
	assert.Equal(t, "-rw-r-----", info.Mode().Perm().String())
}

func TestCopyDir(t *testing.T) {
	fs := NewMemory()
	files := map[string]string{
		"/core/dist/index.js":       "module.exports = {}",
		"/core/dist/lib/util.js":    "exports.x = 1",
		"/core/dist/types/index.ts": "export {}",
	}
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
	}
	// stale file in destination is overwritten
	require.NoError(t, afero.WriteFile(fs, "/out/dist/index.js", []byte("stale"), 0644))

	require.NoError(t, CopyDir(fs, "/core/dist", "/out/dist"))

	for path, content := range files {
		rel, err := filepath.Rel("/core/dist", path)
		require.NoError(t, err)
		got, err := afero.ReadFile(fs, filepath.Join("/out/dist", rel))
		require.NoError(t, err)
		assert.Equal(t, content, string(got))
	}
}

func TestCopyDir_MissingSource(t *testing.T) {
	fs := NewMemory()
	assert.Error(t, CopyDir(fs, "/nope", "/out"))
}
