package packdeps

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arthur-debert/packdeps/pkg/testutil"
)

func TestExecute_FailureExitsOne(t *testing.T) {
	c := newCLI(t)
	kept := c.SeedDependencies("kept/index.js")

	status := execute(c.executable, []string{}, c.stdout, c.stderr)

	assert.Equal(t, 1, status)
	assert.Contains(t, c.stderr.String(), "[prepare-packdeps] Error: pnpm not found in PATH or PNPM_HOME")
	assert.FileExists(t, kept)
	c.AssertNoLeakedStub()
}

func TestExecute_ErrorUsesConfiguredTag(t *testing.T) {
	c := newCLI(t)
	c.WriteFile("packages/desktop/.packdeps.toml", "[log]\ntag = \"desktop\"\n")

	assert.Equal(t, 1, execute(c.executable, []string{}, c.stdout, c.stderr))
	assert.Contains(t, c.stderr.String(), "[desktop] Error: pnpm not found")
}

func TestExecute_ConfigErrorUsesDefaultTag(t *testing.T) {
	c := newCLI(t)
	c.WriteFile("packages/desktop/.packdeps.toml", "not toml [")

	assert.Equal(t, 1, execute(c.executable, []string{}, c.stdout, c.stderr))
	assert.Contains(t, c.stderr.String(), "[prepare-packdeps] Error: failed to load configuration")
}

func TestExecute_UsageErrorExitsOne(t *testing.T) {
	c := newCLI(t)

	assert.Equal(t, 1, execute(c.executable, []string{"--no-such-flag"}, c.stdout, c.stderr))
	assert.Contains(t, c.stderr.String(), "Error: unknown flag: --no-such-flag")
}

func TestExecute_SuccessExitsZero(t *testing.T) {
	c := newCLI(t)
	c.InstallPackageManager(testutil.FakeInstall)

	assert.Equal(t, 0, execute(c.executable, []string{}, c.stdout, c.stderr))
	assert.Contains(t, c.stderr.String(), "[prepare-packdeps] Done!")
	assert.NotContains(t, c.stderr.String(), "Error:")
}
