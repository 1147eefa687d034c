// Package locator resolves the package manager executable.
//
// Resolution never reads the process environment directly. Callers populate
// an Env once at startup (EnvFromOS) and pass it in, so every strategy can be
// exercised from tests.
package locator

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/arthur-debert/packdeps/pkg/errors"
	"github.com/arthur-debert/packdeps/pkg/filesystem"
)

const (
	// DefaultName is the canonical package manager name
	DefaultName = "pnpm"

	// DefaultExecPathEnv is set by package-manager wrappers to their own binary
	DefaultExecPathEnv = "npm_execpath"

	// DefaultHomeEnv points at the package manager installation root
	DefaultHomeEnv = "PNPM_HOME"

	// DefaultWindowsHome is the setup-pnpm location on GitHub Actions
	// Windows runners, used when the home variable is unset there.
	DefaultWindowsHome = `C:\Users\runneradmin\setup-pnpm\node_modules\.bin`
)

// Strategy names the step that produced a resolution
type Strategy string

const (
	StrategyExecPath   Strategy = "exec_path"
	StrategyHome       Strategy = "home"
	StrategySearchPath Strategy = "search_path"
)

// Env is the environment snapshot the locator works from
type Env struct {
	ExecPath string // wrapper-provided executable path
	Home     string // installation root
	GOOS     string
}

// EnvFromOS reads the named variables from the process environment.
// Empty names fall back to the defaults.
func EnvFromOS(execPathEnv, homeEnv string) Env {
	if execPathEnv == "" {
		execPathEnv = DefaultExecPathEnv
	}
	if homeEnv == "" {
		homeEnv = DefaultHomeEnv
	}
	return Env{
		ExecPath: os.Getenv(execPathEnv),
		Home:     os.Getenv(homeEnv),
		GOOS:     runtime.GOOS,
	}
}

// Options configures a Locator
type Options struct {
	Name        string
	HomeEnv     string // only used in messages
	WindowsHome string
	Env         Env
	FS          afero.Fs
	LookPath    func(file string) (string, error)
	Logger      zerolog.Logger
}

// Locator resolves the package manager path
type Locator struct {
	name        string
	homeEnv     string
	windowsHome string
	env         Env
	fs          afero.Fs
	lookPath    func(file string) (string, error)
	logger      zerolog.Logger
}

// Resolution is a located executable and how it was found
type Resolution struct {
	Path     string
	Strategy Strategy
}

// New creates a Locator, filling unset options with defaults
func New(opts Options) *Locator {
	if opts.Name == "" {
		opts.Name = DefaultName
	}
	if opts.HomeEnv == "" {
		opts.HomeEnv = DefaultHomeEnv
	}
	if opts.WindowsHome == "" {
		opts.WindowsHome = DefaultWindowsHome
	}
	if opts.Env.GOOS == "" {
		opts.Env.GOOS = runtime.GOOS
	}
	if opts.FS == nil {
		opts.FS = filesystem.NewOS()
	}
	if opts.LookPath == nil {
		opts.LookPath = exec.LookPath
	}
	return &Locator{
		name:        opts.Name,
		homeEnv:     opts.HomeEnv,
		windowsHome: opts.WindowsHome,
		env:         opts.Env,
		fs:          opts.FS,
		lookPath:    opts.LookPath,
		logger:      opts.Logger,
	}
}

// Name returns the canonical package manager name
func (l *Locator) Name() string {
	return l.name
}

// Locate returns the package manager path
func (l *Locator) Locate() (string, error) {
	res, err := l.Resolve()
	if err != nil {
		return "", err
	}
	return res.Path, nil
}

// Resolve tries, in order: the wrapper-provided path, the installation root
// (with the Windows CI default), and the search path.
func (l *Locator) Resolve() (Resolution, error) {
	if p := l.env.ExecPath; p != "" {
		if l.exists(p) {
			return l.found(p, StrategyExecPath), nil
		}
		if _, err := l.lookPath(p); err == nil {
			return l.found(p, StrategyExecPath), nil
		}
		l.logger.Debug().Str("path", p).Msg("Wrapper-provided path does not resolve")
	}

	home := l.env.Home
	if home == "" && l.env.GOOS == "windows" {
		home = l.windowsHome
	}
	if home != "" {
		for _, name := range Candidates(l.name) {
			candidate := filepath.Join(home, name)
			if l.exists(candidate) {
				return l.found(candidate, StrategyHome), nil
			}
			l.logger.Trace().Str("candidate", candidate).Msg("Not present")
		}
	}

	if p, err := l.lookPath(l.name); err == nil {
		return l.found(p, StrategySearchPath), nil
	}

	return Resolution{}, errors.Newf(errors.ErrPackageManagerNotFound,
		"%s not found in PATH or %s", l.name, l.homeEnv).
		WithDetail("name", l.name)
}

func (l *Locator) found(path string, s Strategy) Resolution {
	l.logger.Debug().Str("path", path).Str("strategy", string(s)).Msg("Resolved package manager")
	return Resolution{Path: path, Strategy: s}
}

func (l *Locator) exists(path string) bool {
	ok, err := filesystem.Exists(l.fs, path)
	return err == nil && ok
}

// Candidates lists the executable names tried under the installation root,
// in order. The Windows shims are tried on every system since a shared
// PNPM_HOME may hold any of them.
func Candidates(name string) []string {
	return []string{name + ".exe", name + ".cmd", name}
}
