// Package paths resolves where a packdeps run operates.
//
// The tool is shipped inside the package it prepares, typically as
// <package>/scripts/packdeps, so the working root defaults to the parent of
// the executable's directory.
package paths
