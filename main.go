package main

import (
	"os"

	"github.com/boolean-maybe/tagfilter/internal/bootstrap"
)

// main compiles the --tags filter, applies it to the catalog and prints the selection.
func main() {
	os.Exit(bootstrap.Run(os.Args[1:], os.Stdout, os.Stderr))
}
