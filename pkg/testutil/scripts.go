package testutil

// FakeInstall stands in for "pnpm install". Run from a directory directly
// below the package root, it records its arguments, the hook related
// variables and where husky resolves, then recreates node_modules.
const FakeInstall = `#!/bin/sh
echo "$*" > ../install-args
echo "$HUSKY" > ../husky-env
echo "$HUSKY_SKIP_INSTALL $HUSKY_SKIP_HOOKS $CI" > ../skip-env
command -v husky > ../husky-path
mkdir -p ../node_modules/left-pad
echo '{}' > ../node_modules/left-pad/package.json
`

// FailingInstall prints a pnpm-style error and exits 1
const FailingInstall = `#!/bin/sh
echo "ERR_PNPM_OUTDATED_LOCKFILE" >&2
exit 1
`
