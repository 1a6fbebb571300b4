// Package reporter formats lint diagnostics for output.
//
// The package supports three formats:
//   - text: human-readable terminal output with colors
//   - json: machine-readable JSON output
//   - sarif: Static Analysis Results Interchange Format for CI/CD integration
package reporter

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/tboy1337/blinter/internal/rules"
)

// Finding pairs one diagnostic with the file it belongs to and its catalog
// entry, the unit every reporter formats. Reporters never need the catalog
// directly: BuildFindings resolves it once.
type Finding struct {
	File           string
	Line           int
	Code           string
	Severity       rules.Severity
	Name           string
	Explanation    string
	Recommendation string
	Note           string
}

// BuildFindings resolves diags against catalog into Findings for file. A
// diagnostic whose code is missing from catalog is skipped: that signals a
// programming error in whichever engine produced it, not something a
// reporter should paper over with placeholder text.
func BuildFindings(file string, diags []rules.Diagnostic, catalog *rules.Catalog) []Finding {
	findings := make([]Finding, 0, len(diags))
	for _, d := range diags {
		rule, ok := catalog.Get(d.RuleCode)
		if !ok {
			continue
		}
		findings = append(findings, Finding{
			File:           file,
			Line:           d.LineIndex,
			Code:           d.RuleCode,
			Severity:       rule.Severity,
			Name:           rule.Name,
			Explanation:    rule.Explanation,
			Recommendation: rule.Recommendation,
			Note:           d.ContextNote,
		})
	}
	return findings
}

// ReportMetadata carries contextual information about the lint run.
type ReportMetadata struct {
	FilesScanned int
	RulesEnabled int
}

// Reporter formats and writes findings.
type Reporter interface {
	Report(findings []Finding, sources map[string][]byte, metadata ReportMetadata) error
}

// SortFindings sorts by file, then line, then rule code, for stable output.
func SortFindings(findings []Finding) []Finding {
	sorted := make([]Finding, len(findings))
	copy(sorted, findings)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].File != sorted[j].File {
			return sorted[i].File < sorted[j].File
		}
		if sorted[i].Line != sorted[j].Line {
			return sorted[i].Line < sorted[j].Line
		}
		return sorted[i].Code < sorted[j].Code
	})
	return sorted
}

// Format is an output format name.
type Format string

const (
	FormatText  Format = "text"
	FormatJSON  Format = "json"
	FormatSARIF Format = "sarif"
)

// ParseFormat parses a format string, returning an error for an unknown one.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "text", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "sarif":
		return FormatSARIF, nil
	default:
		return "", fmt.Errorf("unknown format: %q (valid: text, json, sarif)", s)
	}
}

// Options configures reporter creation.
type Options struct {
	Format Format
	Writer io.Writer

	// Color enables/disables colored output (text format only). nil
	// auto-detects.
	Color *bool

	ShowSource bool

	ToolVersion string
	ToolName    string
	ToolURI     string
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		Format:      FormatText,
		Writer:      os.Stdout,
		Color:       nil,
		ShowSource:  true,
		ToolName:    "blinter",
		ToolURI:     "https://github.com/tboy1337/blinter",
		ToolVersion: "dev",
	}
}

// New creates a Reporter for opts.Format.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}

	switch opts.Format {
	case FormatText, "":
		return NewTextReporter(opts.Writer, TextOptions{
			Color:      opts.Color,
			ShowSource: opts.ShowSource,
		}), nil

	case FormatJSON:
		return NewJSONReporter(opts.Writer), nil

	case FormatSARIF:
		return NewSARIFReporter(opts.Writer, opts.ToolName, opts.ToolVersion, opts.ToolURI), nil

	default:
		return nil, fmt.Errorf("unknown format: %q", opts.Format)
	}
}

// GetWriter resolves an output destination: "stdout", "stderr", or a path.
func GetWriter(path string) (io.Writer, func() error, error) {
	switch path {
	case "stdout", "":
		return os.Stdout, func() error { return nil }, nil
	case "stderr":
		return os.Stderr, func() error { return nil }, nil
	default:
		f, err := os.Create(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create output file: %w", err)
		}
		return f, f.Close, nil
	}
}
