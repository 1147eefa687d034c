// Package mirror copies workspace package builds into a dependency directory.
//
// Packaged desktop builds cannot follow workspace symlinks, so each listed
// package's dist/ tree and metadata files are copied into
// <dependency dir>/<package name>.
package mirror

import (
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/arthur-debert/packdeps/pkg/errors"
	"github.com/arthur-debert/packdeps/pkg/filesystem"
)

// DefaultMetadataFiles are copied next to dist/ when present
var DefaultMetadataFiles = []string{"package.json", "README.md", "LICENSE"}

// Package is a workspace package to mirror
type Package struct {
	Name   string // package name, possibly scoped
	Source string // package directory
}

// Options configures a mirror run
type Options struct {
	FS            afero.Fs
	DependencyDir string // destination root, usually <root>/node_modules
	Packages      []Package
	MetadataFiles []string
	Logger        zerolog.Logger
}

// Mirror processes packages in order and stops at the first failure
func Mirror(opts Options) error {
	if opts.FS == nil {
		opts.FS = filesystem.NewOS()
	}
	if opts.MetadataFiles == nil {
		opts.MetadataFiles = DefaultMetadataFiles
	}
	if opts.DependencyDir == "" {
		return errors.New(errors.ErrInvalidInput, "mirror needs a dependency directory")
	}

	for _, pkg := range opts.Packages {
		if err := copyPackage(opts, pkg); err != nil {
			return err
		}
		opts.Logger.Info().Msgf("Mirrored %s", pkg.Name)
	}
	return nil
}

func copyPackage(opts Options, pkg Package) error {
	fs := opts.FS
	sourceDist := filepath.Join(pkg.Source, "dist")

	// dest is removed recursively, so it must sit below DependencyDir
	rel := filepath.FromSlash(pkg.Name)
	if !filepath.IsLocal(rel) || filepath.Clean(rel) == "." {
		return errors.Newf(errors.ErrInvalidInput,
			"package name %q must stay inside %s", pkg.Name, opts.DependencyDir).
			WithDetail("package", pkg.Name)
	}
	dest := filepath.Join(opts.DependencyDir, rel)

	ok, err := filesystem.IsDir(fs, sourceDist)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to inspect %s", sourceDist)
	}
	if !ok {
		return errors.Newf(errors.ErrMirrorSourceMissing,
			"Workspace package %s has no dist build at %s. Run its build before packaging.", pkg.Name, sourceDist).
			WithDetail("package", pkg.Name)
	}

	opts.Logger.Debug().Str("package", pkg.Name).Str("dest", dest).Msg("Replacing mirrored package")
	if err := fs.RemoveAll(dest); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to remove %s", dest)
	}
	if err := fs.MkdirAll(dest, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to create %s", dest)
	}

	for _, name := range opts.MetadataFiles {
		src := filepath.Join(pkg.Source, name)
		exists, err := filesystem.Exists(fs, src)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "failed to inspect %s", src)
		}
		if !exists {
			continue
		}
		if err := filesystem.CopyFile(fs, src, filepath.Join(dest, name)); err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "failed to copy %s", src)
		}
	}

	if err := filesystem.CopyDir(fs, sourceDist, filepath.Join(dest, "dist")); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to copy %s", sourceDist)
	}
	return nil
}
