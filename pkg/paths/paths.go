package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/packdeps/pkg/errors"
)

// Locations are the directories a run works against
type Locations struct {
	// ScriptDir holds the packdeps executable. Commands run here.
	ScriptDir string
	// Root is the package whose dependencies are prepared
	Root string
	// UsedFallback is set when the executable location was unknown and the
	// current directory stood in for it
	UsedFallback bool
}

// Executable reports the running program's path, like os.Executable
type Executable func() (string, error)

// Resolve derives the locations from the executable path. The root is one
// level above the directory containing the executable. A non-empty
// rootOverride replaces the derived root.
func Resolve(executable Executable, rootOverride string) (Locations, error) {
	if executable == nil {
		executable = os.Executable
	}

	loc := Locations{ScriptDir: "."}
	if exe, err := executable(); err == nil && exe != "" {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		loc.ScriptDir = filepath.Dir(exe)
	} else {
		loc.UsedFallback = true
	}

	if abs, err := filepath.Abs(loc.ScriptDir); err == nil {
		loc.ScriptDir = abs
	}

	root := filepath.Join(loc.ScriptDir, "..")
	if rootOverride != "" {
		root = ExpandHome(rootOverride)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return Locations{}, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for root %s", root)
	}
	loc.Root = abs
	return loc, nil
}

// DependencyDir returns the dependency directory under the root
func (l Locations) DependencyDir(name string) string {
	return filepath.Join(l.Root, name)
}

// WorkspaceRoot resolves rel against the root unless it is absolute
func (l Locations) WorkspaceRoot(rel string) string {
	rel = ExpandHome(rel)
	if filepath.IsAbs(rel) {
		return filepath.Clean(rel)
	}
	return filepath.Join(l.Root, rel)
}

// ExpandHome expands a leading ~ to the user's home directory
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
