// Package filesystem provides the afero filesystems packdeps runs on and a
// few tree helpers built on them.
//
// Production code uses NewOS; tests that do not spawn processes use
// NewMemory.
package filesystem
