package packdeps

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/packdeps/pkg/paths"
	"github.com/arthur-debert/packdeps/pkg/styles"
)

// Execute runs the command line in args and returns the process exit status
func Execute(args []string, stdout, stderr io.Writer) int {
	return execute(os.Executable, args, stdout, stderr)
}

func execute(executable paths.Executable, args []string, stdout, stderr io.Writer) int {
	s := &session{}
	rootCmd := newRootCmd(executable, s)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(stderr, styles.RenderError(s.tag(), err))
		return 1
	}
	return 0
}
