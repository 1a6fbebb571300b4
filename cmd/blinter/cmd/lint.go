package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/tboy1337/blinter/internal/config"
	"github.com/tboy1337/blinter/internal/discovery"
	"github.com/tboy1337/blinter/internal/linter"
	"github.com/tboy1337/blinter/internal/reporter"
	"github.com/tboy1337/blinter/internal/rules"
	"github.com/tboy1337/blinter/internal/version"
)

// Exit codes, per spec.md §6.
const (
	ExitSuccess     = 0 // No Error-severity diagnostics.
	ExitErrors      = 1 // At least one Error-severity diagnostic.
	ExitLoadFailure = 2 // A requested target failed to load, or was not found.
)

func lintFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "summary",
			Usage: "Emit aggregate counts after per-file output",
		},
		&cli.IntFlag{
			Name:  "max-line-length",
			Usage: "Overrides the configured maximum line length",
		},
		&cli.BoolFlag{
			Name:  "no-recursive",
			Usage: "Limit directory inputs to depth 1",
		},
		&cli.BoolFlag{
			Name:  "follow-calls",
			Usage: "Resolve CALL targets and merge their definitions",
		},
		&cli.BoolFlag{
			Name:  "no-config",
			Usage: "Ignore on-disk blinter.ini/.blinter.ini configuration",
		},
		&cli.StringFlag{
			Name:  "create-config",
			Usage: "Write a default config file at the given path and exit",
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to a specific config file (default: auto-discover per target)",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format: text, json, sarif",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output path: stdout, stderr, or a file path",
		},
		&cli.BoolFlag{
			Name:  "no-color",
			Usage: "Disable colored text output",
		},
		&cli.StringSliceFlag{
			Name:  "exclude",
			Usage: "Glob pattern to exclude from discovery (repeatable)",
		},
	}
}

// runLint is the Action for the root command: discover inputs, lint each,
// and report.
func runLint(_ context.Context, cmd *cli.Command) error {
	if target := cmd.String("create-config"); target != "" {
		return runCreateConfig(target)
	}

	inputs := cmd.Args().Slice()
	if len(inputs) == 0 {
		inputs = []string{"."}
	}

	discovered, err := discovery.Discover(inputs, discovery.Options{
		Recursive:       !cmd.Bool("no-recursive"),
		ExcludePatterns: cmd.StringSlice("exclude"),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "blinter: %v\n", err)
		return cli.Exit("", ExitLoadFailure)
	}
	if len(discovered) == 0 {
		fmt.Fprintln(os.Stderr, "blinter: no .bat/.cmd files found")
		return cli.Exit("", ExitLoadFailure)
	}

	var (
		findings  []reporter.Finding
		sources   = make(map[string][]byte)
		loadError bool
	)

	for _, df := range discovered {
		opts, err := resolveOptions(cmd, df.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "blinter: %s: %v\n", df.Path, err)
			loadError = true
			continue
		}

		result, err := linter.LintFile(linter.Input{FilePath: df.Path, Config: &opts})
		if err != nil {
			fmt.Fprintf(os.Stderr, "blinter: %s: %v\n", df.Path, err)
			loadError = true
			continue
		}

		findings = append(findings, reporter.BuildFindings(df.Path, result.Diagnostics, rules.DefaultCatalog)...)
		if raw, err := os.ReadFile(df.Path); err == nil {
			sources[df.Path] = raw
		}
	}

	findings = reporter.SortFindings(findings)

	writer, closer, err := reporter.GetWriter(cmd.String("output"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "blinter: %v\n", err)
		return cli.Exit("", ExitLoadFailure)
	}
	defer func() { _ = closer() }()

	format, err := reporter.ParseFormat(cmd.String("format"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "blinter: %v\n", err)
		return cli.Exit("", ExitLoadFailure)
	}

	var color *bool
	if cmd.Bool("no-color") {
		off := false
		color = &off
	}

	rep, err := reporter.New(reporter.Options{
		Format:      format,
		Writer:      writer,
		Color:       color,
		ShowSource:  true,
		ToolName:    "blinter",
		ToolVersion: version.Version(),
		ToolURI:     "https://github.com/tboy1337/blinter",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "blinter: %v\n", err)
		return cli.Exit("", ExitLoadFailure)
	}

	metadata := reporter.ReportMetadata{
		FilesScanned: len(discovered),
		RulesEnabled: len(rules.DefaultCatalog.All()),
	}
	if err := rep.Report(findings, sources, metadata); err != nil {
		fmt.Fprintf(os.Stderr, "blinter: failed to write report: %v\n", err)
		return cli.Exit("", ExitLoadFailure)
	}

	if cmd.Bool("summary") {
		printSummary(findings, len(discovered))
	}

	if loadError {
		return cli.Exit("", ExitLoadFailure)
	}
	if hasErrorSeverity(findings) {
		return cli.Exit("", ExitErrors)
	}
	return nil
}

// resolveOptions builds the rules.Options for one target, layering
// CLI-flag overrides (highest priority) atop the resolved on-disk config.
func resolveOptions(cmd *cli.Command, targetPath string) (rules.Options, error) {
	var (
		cfg *config.Config
		err error
	)
	switch {
	case cmd.Bool("no-config"):
		cfg = config.Default()
	case cmd.String("config") != "":
		cfg, err = config.LoadFromFile(cmd.String("config"))
	default:
		cfg, err = config.Load(targetPath)
	}
	if err != nil {
		return rules.Options{}, fmt.Errorf("config: %w", err)
	}

	opts := cfg.ToOptions()
	if cmd.IsSet("max-line-length") {
		opts.MaxLineLength = cmd.Int("max-line-length")
	}
	if cmd.Bool("follow-calls") {
		opts.FollowCalls = true
	}
	return opts, nil
}

func runCreateConfig(path string) error {
	if err := config.WriteDefault(path); err != nil {
		fmt.Fprintf(os.Stderr, "blinter: failed to write config: %v\n", err)
		return cli.Exit("", ExitLoadFailure)
	}
	fmt.Printf("Wrote default configuration to %s\n", path)
	return nil
}

func hasErrorSeverity(findings []reporter.Finding) bool {
	for _, f := range findings {
		if f.Severity == rules.SeverityError {
			return true
		}
	}
	return false
}

func printSummary(findings []reporter.Finding, fileCount int) {
	counts := map[rules.Severity]int{}
	for _, f := range findings {
		counts[f.Severity]++
	}
	fmt.Printf("\n%d file(s) scanned, %d diagnostic(s)\n", fileCount, len(findings))
	fmt.Printf("  errors:      %d\n", counts[rules.SeverityError])
	fmt.Printf("  warnings:    %d\n", counts[rules.SeverityWarning])
	fmt.Printf("  security:    %d\n", counts[rules.SeveritySecurity])
	fmt.Printf("  performance: %d\n", counts[rules.SeverityPerformance])
	fmt.Printf("  style:       %d\n", counts[rules.SeverityStyle])
}
