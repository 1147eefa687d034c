// Package hookstub plants a no-op stand-in for a git-hook tool.
//
// The stub lives in its own temporary directory. Prepending that directory to
// PATH for a single child process makes the hook tool exit successfully
// without touching the repository's hooks.
package hookstub

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/afero"

	"github.com/arthur-debert/packdeps/pkg/errors"
	"github.com/arthur-debert/packdeps/pkg/filesystem"
)

const (
	// Script is the stub body; the hook tool is a node program, so node is
	// known to be available wherever the stub can be reached.
	Script = "#!/usr/bin/env node\nprocess.exit(0)\n"

	// WindowsScript shadows the tool for cmd.exe lookups
	WindowsScript = "@exit /b 0\r\n"

	// DefaultTool is the hook tool stubbed when none is configured
	DefaultTool = "husky"

	// DefaultPrefix names the temporary directory
	DefaultPrefix = "examaware-packdeps-"

	stubMode os.FileMode = 0755
)

// Options configures Provision
type Options struct {
	FS      afero.Fs // defaults to the OS filesystem
	Tool    string   // file name of the stub
	Prefix  string   // temp directory prefix
	BaseDir string   // parent of the temp directory; empty means os.TempDir()
	GOOS    string   // defaults to runtime.GOOS
}

// Stub is a provisioned hook stub
type Stub struct {
	Dir  string
	Tool string

	fs afero.Fs
}

// Provision creates a uniquely named temporary directory holding an
// executable stub for the hook tool. Nothing is left behind on failure.
func Provision(opts Options) (*Stub, error) {
	if opts.FS == nil {
		opts.FS = filesystem.NewOS()
	}
	if opts.Tool == "" {
		opts.Tool = DefaultTool
	}
	if opts.Prefix == "" {
		opts.Prefix = DefaultPrefix
	}
	if opts.GOOS == "" {
		opts.GOOS = runtime.GOOS
	}

	dir, err := afero.TempDir(opts.FS, opts.BaseDir, opts.Prefix)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrStubCreate, "failed to create hook stub directory")
	}

	stub := &Stub{Dir: dir, Tool: opts.Tool, fs: opts.FS}

	files := map[string]string{opts.Tool: Script}
	if opts.GOOS == "windows" {
		files[opts.Tool+".cmd"] = WindowsScript
	}

	for name, body := range files {
		if err := stub.write(name, body); err != nil {
			_ = stub.Release()
			return nil, err
		}
	}
	return stub, nil
}

func (s *Stub) write(name, body string) error {
	path := filepath.Join(s.Dir, name)
	if err := afero.WriteFile(s.fs, path, []byte(body), stubMode); err != nil {
		return errors.Wrapf(err, errors.ErrStubCreate, "failed to write hook stub %s", path)
	}
	// WriteFile is subject to the umask
	if err := s.fs.Chmod(path, stubMode); err != nil {
		return errors.Wrapf(err, errors.ErrStubCreate, "failed to mark hook stub %s executable", path)
	}
	return nil
}

// Path returns the stub executable's path
func (s *Stub) Path() string {
	return filepath.Join(s.Dir, s.Tool)
}

// Release removes the stub directory if it still exists. Safe to call more
// than once.
func (s *Stub) Release() error {
	if s == nil || s.Dir == "" {
		return nil
	}
	exists, err := filesystem.Exists(s.fs, s.Dir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to inspect hook stub directory %s", s.Dir)
	}
	if !exists {
		return nil
	}
	if err := s.fs.RemoveAll(s.Dir); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to remove hook stub directory %s", s.Dir)
	}
	return nil
}
