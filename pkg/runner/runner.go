// Package runner executes external commands with environment overrides.
//
// Commands inherit the caller's environment and stdio. Failures are reported
// as two distinct codes: ErrCommandNotFound when the process cannot be
// started, ErrCommandFailed when it exits non-zero.
package runner

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/packdeps/pkg/errors"
	"github.com/arthur-debert/packdeps/pkg/logging"
)

// scriptExtensions are entry points that need the node interpreter
var scriptExtensions = map[string]bool{
	".js":  true,
	".cjs": true,
	".mjs": true,
}

// Options configures a Runner
type Options struct {
	Dir    string   // working directory; empty means "."
	Env    []string // base environment; nil means os.Environ()
	Node   string   // interpreter for script entry points; empty means "node"
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger zerolog.Logger
	GOOS   string
}

// Runner runs commands synchronously
type Runner struct {
	dir    string
	env    []string
	node   string
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger zerolog.Logger
	goos   string
}

// New creates a Runner. Unset stdio defaults to the process's own streams.
func New(opts Options) *Runner {
	if opts.Dir == "" {
		opts.Dir = "."
	}
	if opts.Env == nil {
		opts.Env = os.Environ()
	}
	if opts.Node == "" {
		opts.Node = "node"
	}
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.GOOS == "" {
		opts.GOOS = runtime.GOOS
	}
	return &Runner{
		dir:    opts.Dir,
		env:    opts.Env,
		node:   opts.Node,
		stdin:  opts.Stdin,
		stdout: opts.Stdout,
		stderr: opts.Stderr,
		logger: opts.Logger,
		goos:   opts.GOOS,
	}
}

// Dir returns the working directory commands run in
func (r *Runner) Dir() string {
	return r.dir
}

// Env returns the base environment commands inherit
func (r *Runner) Env() []string {
	return r.env
}

// FoldsEnvCase reports whether environment keys are case-insensitive
func (r *Runner) FoldsEnvCase() bool {
	return r.goos == "windows"
}

// Run executes name with args and waits for it. overrides are merged on top
// of the base environment and win on key collision.
func (r *Runner) Run(ctx context.Context, name string, args []string, overrides map[string]string) error {
	spawnCmd, spawnArgs := r.spawnTarget(name, args)
	logging.LogCommand(r.logger, spawnCmd, spawnArgs)

	cmd := exec.CommandContext(ctx, spawnCmd, spawnArgs...)
	cmd.Dir = r.dir
	cmd.Env = MergeEnv(r.env, overrides, r.FoldsEnvCase())
	cmd.Stdin = r.stdin
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		commandLine := strings.TrimSpace(name + " " + strings.Join(args, " "))
		r.logger.Error().Msgf("Command failed: %s", commandLine)
		return errors.Wrapf(err, errors.ErrCommandFailed, "Command failed: %s", commandLine).
			WithDetail("exitCode", exitErr.ExitCode())
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	// exec.Error (lookup failure) or *fs.PathError (missing or not
	// executable) both mean the process never started
	r.logger.Error().Msgf("Command not found: %s", spawnCmd)
	return errors.Wrapf(err, errors.ErrCommandNotFound, "Command not found: %s", spawnCmd)
}

// spawnTarget routes script entry points through the node interpreter
func (r *Runner) spawnTarget(name string, args []string) (string, []string) {
	if scriptExtensions[strings.ToLower(filepath.Ext(name))] {
		return r.node, append([]string{name}, args...)
	}
	return name, args
}

// MergeEnv returns base with overrides applied. When a key repeats in base
// the last entry wins, as with os/exec, so each key appears once. Keys
// compare case-insensitively when foldCase is set, matching Windows
// semantics.
func MergeEnv(base []string, overrides map[string]string, foldCase bool) []string {
	norm := envKeyNormalizer(foldCase)

	overridden := make(map[string]string, len(overrides))
	for k, v := range overrides {
		overridden[norm(k)] = k + "=" + v
	}

	last := make(map[string]int, len(base))
	for i, kv := range base {
		if key, _, ok := strings.Cut(kv, "="); ok && key != "" {
			last[norm(key)] = i
		}
	}

	merged := make([]string, 0, len(base)+len(overrides))
	for i, kv := range base {
		key, _, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		if key == "" {
			// windows per-drive entries such as "=C:=C:\"
			merged = append(merged, kv)
			continue
		}
		nk := norm(key)
		if last[nk] != i {
			continue
		}
		if replacement, ok := overridden[nk]; ok {
			merged = append(merged, replacement)
			continue
		}
		merged = append(merged, kv)
	}

	// overrides not present in base, in stable order
	var added []string
	for nk, kv := range overridden {
		if _, ok := last[nk]; !ok {
			added = append(added, kv)
		}
	}
	sort.Strings(added)
	return append(merged, added...)
}

func envKeyNormalizer(foldCase bool) func(string) string {
	if foldCase {
		return strings.ToUpper
	}
	return func(k string) string { return k }
}

// PrependPath returns value with dir placed first in a search-path list
func PrependPath(dir, value string) string {
	if value == "" {
		return dir
	}
	return dir + string(os.PathListSeparator) + value
}

// LookupEnv returns the value of key in env, honoring case folding. The
// last matching entry wins, as in MergeEnv.
func LookupEnv(env []string, key string, foldCase bool) (string, bool) {
	norm := envKeyNormalizer(foldCase)
	value, found := "", false
	for _, kv := range env {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		if norm(k) == norm(key) {
			value, found = v, true
		}
	}
	return value, found
}
