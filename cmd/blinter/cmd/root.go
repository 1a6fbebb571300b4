// Package cmd implements the blinter command-line interface: the external
// collaborator spec.md §6 describes but leaves to the caller (argument
// parsing, file discovery, config resolution, reporting, exit codes) wired
// around the core's LintFile entry point.
package cmd

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/tboy1337/blinter/internal/version"
)

// NewApp creates the CLI application.
func NewApp() *cli.Command {
	return &cli.Command{
		Name:      "blinter",
		Usage:     "A static analyzer for Windows batch and cmd scripts",
		Version:   version.Version(),
		ArgsUsage: "[PATH...]",
		Description: `blinter checks .bat and .cmd scripts for common mistakes, deprecated
commands, security issues, and style problems.

Examples:
  blinter build.bat
  blinter --summary --follow-calls scripts/
  blinter --format json --output report.json .`,
		Flags:  lintFlags(),
		Action: runLint,
	}
}

// Execute runs the CLI application.
func Execute() error {
	return NewApp().Run(context.Background(), os.Args)
}
