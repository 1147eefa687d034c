package packdeps

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/packdeps/pkg/errors"
	"github.com/arthur-debert/packdeps/pkg/testutil"
)

type cli struct {
	*testutil.TestEnvironment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	return &cli{
		TestEnvironment: testutil.NewTestEnvironment(t),
		stdout:          &bytes.Buffer{},
		stderr:          &bytes.Buffer{},
	}
}

func (c *cli) executable() (string, error) {
	return c.Executable(), nil
}

func (c *cli) execute(args ...string) error {
	cmd := newRootCmd(c.executable, &session{})
	cmd.SetArgs(args)
	cmd.SetOut(c.stdout)
	cmd.SetErr(c.stderr)
	cmd.SetIn(strings.NewReader(""))
	return cmd.Execute()
}

func TestRoot_PreparesDependencies(t *testing.T) {
	c := newCLI(t)
	pnpm := c.InstallPackageManager(testutil.FakeInstall)
	stale := c.SeedDependencies("stale/index.js")

	require.NoError(t, c.execute())

	assert.NoFileExists(t, stale)
	assert.DirExists(t, filepath.Join(c.DependencyDir(), "left-pad"))
	assert.Equal(t, "install --frozen-lockfile", c.ReadRoot("install-args"))
	assert.Equal(t, "0", c.ReadRoot("husky-env"))
	assert.Equal(t, "1 1 true", c.ReadRoot("skip-env"))
	assert.True(t, strings.HasPrefix(c.ReadRoot("husky-path"), c.TempDir))
	c.AssertNoLeakedStub()

	logs := c.stderr.String()
	assert.Contains(t, logs, "[prepare-packdeps] Found pnpm: "+pnpm+"\n")
	assert.Contains(t, logs, "[prepare-packdeps] Removing "+c.DependencyDir()+"\n")
	assert.Contains(t, logs, "[prepare-packdeps] Installing dependencies...\n")
	assert.Contains(t, logs, "[prepare-packdeps] Done!\n")
	assert.NotContains(t, logs, "Executing command")
}

func TestRoot_VerboseEchoesCommand(t *testing.T) {
	c := newCLI(t)
	c.InstallPackageManager(testutil.FakeInstall)

	require.NoError(t, c.execute("-v"))
	assert.Contains(t, c.stderr.String(), "Executing command")
}

func TestRoot_PnpmMissing(t *testing.T) {
	c := newCLI(t)
	kept := c.SeedDependencies("kept/index.js")

	err := c.execute()
	require.Error(t, err)

	assert.True(t, errors.IsErrorCode(err, errors.ErrPackageManagerNotFound))
	assert.Contains(t, err.Error(), "pnpm not found in PATH or PNPM_HOME")
	assert.FileExists(t, kept)
	c.AssertNoLeakedStub()
}

func TestRoot_InstallFails(t *testing.T) {
	c := newCLI(t)
	pnpm := c.InstallPackageManager(testutil.FailingInstall)

	err := c.execute()
	require.Error(t, err)

	assert.True(t, errors.IsErrorCode(err, errors.ErrCommandFailed))
	assert.Contains(t, c.stderr.String(), "Command failed: "+pnpm+" install --frozen-lockfile")
	c.AssertNoLeakedStub()
}

func TestRoot_UsesNpmExecPath(t *testing.T) {
	c := newCLI(t)
	wrapperDir := filepath.Join(c.Base, "wrapper")
	require.NoError(t, os.MkdirAll(wrapperDir, 0755))
	wrapped := testutil.WriteExecutable(t, wrapperDir, "pnpm", testutil.FakeInstall)
	t.Setenv("npm_execpath", wrapped)

	require.NoError(t, c.execute())
	assert.Contains(t, c.stderr.String(), "Found pnpm: "+wrapped)
}

func TestRoot_UsesPnpmHome(t *testing.T) {
	c := newCLI(t)
	homeDir := filepath.Join(c.Base, "pnpm-home")
	require.NoError(t, os.MkdirAll(homeDir, 0755))
	inHome := testutil.WriteExecutable(t, homeDir, "pnpm", testutil.FakeInstall)
	c.InstallPackageManager(testutil.FailingInstall)
	t.Setenv("PNPM_HOME", homeDir)

	require.NoError(t, c.execute())
	assert.Contains(t, c.stderr.String(), "Found pnpm: "+inHome)
}

func TestRoot_ProjectConfig(t *testing.T) {
	c := newCLI(t)
	c.InstallPackageManager(testutil.FakeInstall)
	c.WriteFile("packages/desktop/.packdeps.toml", `
[log]
tag = "desktop"

[install]
args = ["install", "--frozen-lockfile", "--ignore-scripts"]
`)

	require.NoError(t, c.execute())
	assert.Equal(t, "install --frozen-lockfile --ignore-scripts", c.ReadRoot("install-args"))
	assert.Contains(t, c.stderr.String(), "[desktop] Done!")
}

func TestRoot_RejectsArguments(t *testing.T) {
	c := newCLI(t)
	c.InstallPackageManager(testutil.FakeInstall)

	require.Error(t, c.execute("install"))
	assert.NoFileExists(t, filepath.Join(c.Root, "install-args"))
}

func TestRoot_InvalidConfig(t *testing.T) {
	c := newCLI(t)
	c.WriteFile("packages/desktop/.packdeps.toml", "[install]\nargs = []\n")

	err := c.execute()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
	assert.Contains(t, err.Error(), "failed to load configuration")
}

func TestMirrorCmd(t *testing.T) {
	c := newCLI(t)
	for _, pkg := range []string{"core", "player"} {
		c.WriteFile("packages/"+pkg+"/dist/index.js", pkg)
		c.WriteFile("packages/"+pkg+"/package.json", "{}")
	}

	require.NoError(t, c.execute("mirror"))

	assert.Equal(t, "core", c.ReadRoot("node_modules/@dsz-examaware/core/dist/index.js"))
	assert.Equal(t, "player", c.ReadRoot("node_modules/@dsz-examaware/player/dist/index.js"))
	assert.Equal(t, "{}", c.ReadRoot("node_modules/@dsz-examaware/player/package.json"))
	assert.Contains(t, c.stderr.String(), "[prepare-packdeps] Mirrored @dsz-examaware/core")
}

func TestMirrorCmd_MissingBuild(t *testing.T) {
	c := newCLI(t)

	err := c.execute("mirror")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMirrorSourceMissing))
	assert.Contains(t, err.Error(), "Run its build before packaging.")
}

func TestGenConfigCmd(t *testing.T) {
	c := newCLI(t)
	t.Setenv("PACKDEPS_HOOK__TOOL", "lefthook")

	require.NoError(t, c.execute("genconfig"))

	out := c.stdout.String()
	assert.True(t, strings.HasPrefix(out, "# Effective packdeps configuration\n"))
	assert.Contains(t, out, "[hook]")
	assert.Contains(t, out, "lefthook")
}

func TestGenConfigCmd_Defaults(t *testing.T) {
	c := newCLI(t)
	t.Setenv("PACKDEPS_HOOK__TOOL", "lefthook")

	require.NoError(t, c.execute("genconfig", "--defaults"))
	assert.Contains(t, c.stdout.String(), `tool = "husky"`)
}

func TestVersionCmd(t *testing.T) {
	c := newCLI(t)
	// a broken configuration must not prevent printing the version
	c.WriteFile("packages/desktop/.packdeps.toml", "not toml [")

	require.NoError(t, c.execute("version"))
	assert.Contains(t, c.stdout.String(), "packdeps version dev")
}
