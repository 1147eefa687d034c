// Package testutil provides fixtures for packdeps integration tests.
//
// TestEnvironment builds a throwaway package layout on the real filesystem
// with its own PATH, TMPDIR and XDG directories so tests can run fake
// package-manager scripts and check that nothing leaks.
package testutil
