// Package logging configures zerolog for packdeps.
//
// Diagnostics are human-oriented lines on stderr, each prefixed with a
// fixed tag so the packaging pipeline's output stays attributable:
//
//	[prepare-packdeps] Found pnpm: /usr/local/bin/pnpm
package logging
