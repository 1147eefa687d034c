// Package config loads packdeps configuration.
//
// Layers are merged with koanf, later layers winning:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the user file, $XDG_CONFIG_HOME/packdeps/config.toml
//  3. a project file in the working root (.packdeps.toml or .packdeps.yaml)
//  4. PACKDEPS_* environment variables, "__" separating nesting levels
//
// The defaults reproduce the fixed behavior of the preparer, so an absent
// configuration is the normal case.
package config
