package preparer

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/arthur-debert/packdeps/pkg/errors"
	"github.com/arthur-debert/packdeps/pkg/filesystem"
	"github.com/arthur-debert/packdeps/pkg/hookstub"
	"github.com/arthur-debert/packdeps/pkg/logging"
	"github.com/arthur-debert/packdeps/pkg/runner"
)

// Locator finds the package manager executable
type Locator interface {
	Locate() (string, error)
}

// Runner runs the package manager
type Runner interface {
	Run(ctx context.Context, name string, args []string, overrides map[string]string) error
	Env() []string
	FoldsEnvCase() bool
}

// Options configures a preparation run
type Options struct {
	Root           string // package whose dependencies are rebuilt
	FS             afero.Fs
	Locator        Locator
	Runner         Runner
	PackageManager string // display name; defaults to "pnpm"
	Hook           hookstub.Options
	DependencyDir  string            // relative to Root; defaults to "node_modules"
	InstallArgs    []string          // defaults to install --frozen-lockfile
	InstallEnv     map[string]string // child-only overrides; PATH is added on top
	Logger         zerolog.Logger
}

var defaultInstallArgs = []string{"install", "--frozen-lockfile"}

// Prepare rebuilds the root's dependency directory from the lockfile while
// the hook tool is shadowed by a no-op stub. The stub is always released.
func Prepare(ctx context.Context, opts Options) (err error) {
	if opts.FS == nil {
		opts.FS = filesystem.NewOS()
	}
	if opts.PackageManager == "" {
		opts.PackageManager = "pnpm"
	}
	if opts.DependencyDir == "" {
		opts.DependencyDir = "node_modules"
	}
	if len(opts.InstallArgs) == 0 {
		opts.InstallArgs = defaultInstallArgs
	}
	if opts.Locator == nil || opts.Runner == nil {
		return errors.New(errors.ErrInvalidInput, "preparer needs a locator and a runner")
	}
	// the dependency directory is removed recursively
	if !filepath.IsLocal(opts.DependencyDir) || filepath.Clean(opts.DependencyDir) == "." {
		return errors.Newf(errors.ErrInvalidInput,
			"dependency directory must be a subdirectory of the root, got %q", opts.DependencyDir)
	}
	if opts.Hook.FS == nil {
		opts.Hook.FS = opts.FS
	}

	logger := opts.Logger
	done := logging.LogOperationStart(logger, "prepare")
	defer done()

	stub, err := hookstub.Provision(opts.Hook)
	if err != nil {
		return err
	}
	logger.Debug().Str("dir", stub.Dir).Msg("Provisioned hook stub")
	defer func() {
		if releaseErr := stub.Release(); releaseErr != nil && err == nil {
			err = releaseErr
		}
	}()

	pm, err := opts.Locator.Locate()
	if err != nil {
		return err
	}
	logger.Info().Msgf("Found %s: %s", opts.PackageManager, pm)

	depDir := filepath.Join(opts.Root, opts.DependencyDir)
	exists, err := filesystem.Exists(opts.FS, depDir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to inspect %s", depDir)
	}
	if exists {
		logger.Info().Msgf("Removing %s", depDir)
		if err := opts.FS.RemoveAll(depDir); err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "failed to remove %s", depDir)
		}
	}

	logger.Info().Msg("Installing dependencies...")
	if err := opts.Runner.Run(ctx, pm, opts.InstallArgs, installEnv(opts, stub.Dir)); err != nil {
		return err
	}

	logger.Info().Msg("Done!")
	return nil
}

// installEnv is the configured overrides plus PATH with the stub first
func installEnv(opts Options, stubDir string) map[string]string {
	env := make(map[string]string, len(opts.InstallEnv)+1)
	for k, v := range opts.InstallEnv {
		env[k] = v
	}
	path, _ := runner.LookupEnv(opts.Runner.Env(), "PATH", opts.Runner.FoldsEnvCase())
	env["PATH"] = runner.PrependPath(stubDir, path)
	return env
}
