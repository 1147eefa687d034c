package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEnvironment is an isolated package layout on the real filesystem:
//
//	<base>/packages/desktop          Root
//	<base>/packages/desktop/scripts  ScriptDir, holds the packdeps executable
//	<base>/bin                       Bin, the only user directory on PATH
//	<base>/tmp                       TempDir, TMPDIR for hook stubs
type TestEnvironment struct {
	Base      string
	Root      string
	ScriptDir string
	Bin       string
	TempDir   string

	t *testing.T
}

// NewTestEnvironment creates the layout and points TMPDIR, PATH and the XDG
// directories at it. Package-manager variables are cleared.
func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()
	SkipOnWindows(t)

	base := t.TempDir()
	env := &TestEnvironment{
		Base:    base,
		Root:    filepath.Join(base, "packages", "desktop"),
		Bin:     filepath.Join(base, "bin"),
		TempDir: filepath.Join(base, "tmp"),
		t:       t,
	}
	env.ScriptDir = filepath.Join(env.Root, "scripts")

	for _, dir := range []string{env.ScriptDir, env.Bin, env.TempDir} {
		require.NoError(t, os.MkdirAll(dir, 0755))
	}

	t.Setenv("XDG_CONFIG_HOME", filepath.Join(base, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(base, "state"))
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	t.Setenv("TMPDIR", env.TempDir)
	t.Setenv("npm_execpath", "")
	t.Setenv("PNPM_HOME", "")
	t.Setenv("PATH", strings.Join([]string{env.Bin, "/usr/bin", "/bin"}, string(os.PathListSeparator)))
	return env
}

// Executable is the path the packdeps binary would have in this layout
func (e *TestEnvironment) Executable() string {
	return filepath.Join(e.ScriptDir, "packdeps")
}

// DependencyDir is Root/node_modules
func (e *TestEnvironment) DependencyDir() string {
	return filepath.Join(e.Root, "node_modules")
}

// InstallPackageManager writes an executable named pnpm into Bin
func (e *TestEnvironment) InstallPackageManager(script string) string {
	e.t.Helper()
	return WriteExecutable(e.t, e.Bin, "pnpm", script)
}

// SeedDependencies creates a file in the dependency directory and returns
// its path
func (e *TestEnvironment) SeedDependencies(rel string) string {
	e.t.Helper()
	path := filepath.Join(e.DependencyDir(), rel)
	require.NoError(e.t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(e.t, os.WriteFile(path, []byte("stale"), 0644))
	return path
}

// WriteFile writes content to a path relative to Base
func (e *TestEnvironment) WriteFile(rel, content string) string {
	e.t.Helper()
	path := filepath.Join(e.Base, rel)
	require.NoError(e.t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(e.t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// ReadRoot returns the trimmed content of a file relative to Root
func (e *TestEnvironment) ReadRoot(rel string) string {
	e.t.Helper()
	data, err := os.ReadFile(filepath.Join(e.Root, filepath.FromSlash(rel)))
	require.NoError(e.t, err)
	return strings.TrimSpace(string(data))
}

// AssertNoLeakedStub fails if anything is left in TempDir
func (e *TestEnvironment) AssertNoLeakedStub() {
	e.t.Helper()
	entries, err := os.ReadDir(e.TempDir)
	require.NoError(e.t, err)
	assert.Empty(e.t, entries, "hook stub directory was not removed")
}

// SkipOnWindows skips tests that rely on POSIX shell scripts
func SkipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("uses POSIX shell scripts")
	}
}

// WriteExecutable writes a 0755 file and returns its path
func WriteExecutable(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0755))
	// WriteFile is subject to the umask
	require.NoError(t, os.Chmod(path, 0755))
	return path
}
