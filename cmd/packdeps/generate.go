package packdeps

import (
	"io"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/packdeps/internal/version"
	"github.com/arthur-debert/packdeps/pkg/errors"
)

// Shells lists the shells WriteCompletion can target
var Shells = []string{"bash", "zsh", "fish", "powershell"}

// WriteManPage renders the packdeps(1) page, subcommands included in its
// SEE ALSO section
func WriteManPage(w io.Writer) error {
	header := &doc.GenManHeader{
		Title:   "PACKDEPS",
		Section: "1",
		Source:  "packdeps " + version.Version,
		Manual:  "packdeps manual",
	}
	if err := doc.GenMan(NewRootCmd(), header, w); err != nil {
		return errors.Wrap(err, errors.ErrUnknown, "failed to generate the man page")
	}
	return nil
}

// WriteCompletion renders the completion script for shell
func WriteCompletion(w io.Writer, shell string) error {
	rootCmd := NewRootCmd()

	var err error
	switch shell {
	case "bash":
		err = rootCmd.GenBashCompletionV2(w, true)
	case "zsh":
		err = rootCmd.GenZshCompletion(w)
	case "fish":
		err = rootCmd.GenFishCompletion(w, true)
	case "powershell":
		err = rootCmd.GenPowerShellCompletionWithDesc(w)
	default:
		return errors.Newf(errors.ErrInvalidInput, "unknown shell %q, expected one of %v", shell, Shells).
			WithDetail("shell", shell)
	}
	if err != nil {
		return errors.Wrapf(err, errors.ErrUnknown, "failed to generate %s completion", shell)
	}
	return nil
}
