package main

import (
	"os"

	"github.com/arthur-debert/packdeps/cmd/packdeps"
)

func main() {
	os.Exit(packdeps.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
