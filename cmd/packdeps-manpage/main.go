package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/packdeps/cmd/packdeps"
)

func main() {
	if err := packdeps.WriteManPage(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
