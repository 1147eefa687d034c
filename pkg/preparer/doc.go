// Package preparer rebuilds a package's dependency directory for packaging.
//
// A run provisions a no-op stub for the git-hook tool, locates the package
// manager, deletes the existing dependency directory and performs a
// lockfile-exact install with the stub first on the child's PATH. Hook
// installation during install scripts therefore succeeds without touching
// the repository.
package preparer
