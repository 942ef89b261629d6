package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/arthur-debert/neosetup/internal/cli"
	"github.com/arthur-debert/neosetup/pkg/report"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		// Print the error in red. The bare-invocation case already
		// printed the help, so skip the duplicate error line.
		if !errors.Is(err, cli.ErrNoCommand) {
			fmt.Fprintln(os.Stderr, report.ErrorStyle.Render(fmt.Sprintf("Error: %v", err)))
		}
		os.Exit(1)
	}
}
