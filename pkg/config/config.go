package config

import (
	"path/filepath"

	"github.com/arthur-debert/packdeps/pkg/errors"
)

// Config is the fully merged packdeps configuration
type Config struct {
	Root           string               `koanf:"root" toml:"root"`
	Log            LogConfig            `koanf:"log" toml:"log"`
	PackageManager PackageManagerConfig `koanf:"package_manager" toml:"package_manager"`
	Hook           HookConfig           `koanf:"hook" toml:"hook"`
	Install        InstallConfig        `koanf:"install" toml:"install"`
	Mirror         MirrorConfig         `koanf:"mirror" toml:"mirror"`
}

// LogConfig controls diagnostic output
type LogConfig struct {
	Tag string `koanf:"tag" toml:"tag"`
}

// PackageManagerConfig describes how the package manager is located
type PackageManagerConfig struct {
	Name        string `koanf:"name" toml:"name"`
	ExecPathEnv string `koanf:"exec_path_env" toml:"exec_path_env"` // set by the invoking wrapper
	HomeEnv     string `koanf:"home_env" toml:"home_env"`           // installation root
	WindowsHome string `koanf:"windows_home" toml:"windows_home"`   // used when HomeEnv is unset on Windows
	Node        string `koanf:"node" toml:"node"`                   // interpreter for script entry points
}

// HookConfig describes the git-hook tool that gets stubbed out
type HookConfig struct {
	Tool       string `koanf:"tool" toml:"tool"`
	TempPrefix string `koanf:"temp_prefix" toml:"temp_prefix"`
}

// InstallConfig describes the reinstall step
type InstallConfig struct {
	DependencyDir string            `koanf:"dependency_dir" toml:"dependency_dir"`
	Args          []string          `koanf:"args" toml:"args"`
	Env           map[string]string `koanf:"env" toml:"env"`
}

// MirrorPackage is a workspace package whose dist build is copied into the
// dependency directory
type MirrorPackage struct {
	Name   string `koanf:"name" toml:"name"`
	Source string `koanf:"source" toml:"source"` // relative to MirrorConfig.WorkspaceRoot
}

// MirrorConfig describes workspace mirroring
type MirrorConfig struct {
	WorkspaceRoot string          `koanf:"workspace_root" toml:"workspace_root"` // relative to the working root
	MetadataFiles []string        `koanf:"metadata_files" toml:"metadata_files"`
	Packages      []MirrorPackage `koanf:"packages" toml:"packages"`
}

// Validate checks the invariants the preparer relies on
func (c *Config) Validate() error {
	switch {
	case c.PackageManager.Name == "":
		return errors.New(errors.ErrConfigValid, "package_manager.name must not be empty")
	case c.Hook.Tool == "":
		return errors.New(errors.ErrConfigValid, "hook.tool must not be empty")
	case c.Install.DependencyDir == "":
		return errors.New(errors.ErrConfigValid, "install.dependency_dir must not be empty")
	case len(c.Install.Args) == 0:
		return errors.New(errors.ErrConfigValid, "install.args must not be empty")
	}

	// The dependency directory is deleted recursively; it must stay inside
	// the working root.
	if !isLocalSubdir(c.Install.DependencyDir) {
		return errors.Newf(errors.ErrConfigValid,
			"install.dependency_dir must be a relative path inside the root, got %q", c.Install.DependencyDir)
	}
	if filepath.Base(c.Hook.Tool) != c.Hook.Tool {
		return errors.Newf(errors.ErrConfigValid, "hook.tool must be a bare name, got %q", c.Hook.Tool)
	}

	for i, pkg := range c.Mirror.Packages {
		if pkg.Name == "" || pkg.Source == "" {
			return errors.Newf(errors.ErrConfigValid, "mirror.packages[%d] needs both name and source", i)
		}
		// mirrored packages replace node_modules/<name> recursively
		if !isLocalSubdir(filepath.FromSlash(pkg.Name)) {
			return errors.Newf(errors.ErrConfigValid,
				"mirror.packages[%d].name must stay inside the dependency directory, got %q", i, pkg.Name)
		}
	}
	return nil
}

// isLocalSubdir reports whether p names a directory strictly below its base
func isLocalSubdir(p string) bool {
	return filepath.IsLocal(p) && filepath.Clean(p) != "."
}
