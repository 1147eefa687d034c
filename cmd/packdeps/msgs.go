package packdeps

// Command descriptions
const (
	MsgRootShort = "Rebuild node_modules for packaging without running git hooks"
	MsgRootLong  = `packdeps deletes the package's node_modules and reinstalls it from the
lockfile with pnpm. A no-op stub for the git-hook tool (husky) is placed first
on the install's PATH so install scripts cannot touch the repository's hooks.

The package root is the parent of the directory holding the packdeps
executable, unless "root" is set in the configuration or PACKDEPS_ROOT.`

	MsgMirrorShort = "Copy workspace package builds into node_modules"
	MsgMirrorLong  = `mirror replaces node_modules/<name> with a plain copy of each configured
workspace package: its metadata files and its dist/ build. Every package must
have been built first.`

	MsgGenConfigShort = "Print the effective configuration as TOML"
	MsgGenConfigLong  = `genconfig prints the merged configuration (defaults, user file, project file
and PACKDEPS_* environment) in TOML. The output can be saved as .packdeps.toml.`
	MsgGenConfigExample = `  packdeps genconfig                  # effective configuration
  packdeps genconfig --defaults       # built-in defaults only
  packdeps genconfig > .packdeps.toml`

	MsgVersionShort = "Print version information"
)

// Flag descriptions
const (
	MsgFlagVerbose  = "Increase verbosity (-v DEBUG, -vv TRACE)"
	MsgFlagDefaults = "Print the built-in defaults instead of the effective configuration"
)

// Output and error messages
const (
	MsgVersionFormat   = "packdeps version %s\n  commit: %s\n  built:  %s\n"
	MsgFallbackWarning = "Could not determine the packdeps executable location, using the current directory"
	MsgErrLoadConfig   = "failed to load configuration: %w"
	MsgErrResolveRoot  = "failed to resolve the package root: %w"
)
