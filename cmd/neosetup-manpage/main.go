package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/neosetup/internal/cli"
	"github.com/arthur-debert/neosetup/internal/version"
)

func main() {
	rootCmd := cli.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "NEOSETUP",
		Section: "1",
		Source:  "neosetup " + version.Version,
		Manual:  "neosetup manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
