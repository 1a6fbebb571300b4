package reporter

import (
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/muesli/termenv"

	"github.com/tboy1337/blinter/internal/rules"
)

var (
	useColors = termenv.EnvColorProfile() != termenv.Ascii

	ruleCodeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	fileLocStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252"))

	lineNumStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))

	markerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	severityStyles = map[rules.Severity]lipgloss.Style{
		rules.SeverityError: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")), // Red
		rules.SeverityWarning: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")), // Orange
		rules.SeveritySecurity: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("201")), // Magenta
		rules.SeverityPerformance: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")), // Blue
		rules.SeverityStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("245")), // Gray
	}
)

// TextOptions configures the text reporter output.
type TextOptions struct {
	// Color enables/disables colored output. Default: auto-detect.
	Color *bool

	// ShowSource shows source code snippets. Default: true.
	ShowSource bool
}

// DefaultTextOptions returns sensible defaults for text output.
func DefaultTextOptions() TextOptions {
	return TextOptions{Color: nil, ShowSource: true}
}

// TextReporter formats findings as styled text output.
type TextReporter struct {
	writer io.Writer
	opts   TextOptions
}

// NewTextReporter creates a new text reporter writing to w.
func NewTextReporter(w io.Writer, opts TextOptions) *TextReporter {
	return &TextReporter{writer: w, opts: opts}
}

// Report implements Reporter.
func (r *TextReporter) Report(findings []Finding, sources map[string][]byte, _ ReportMetadata) error {
	for _, f := range SortFindings(findings) {
		if err := r.printFinding(f, sources[f.File]); err != nil {
			return err
		}
	}
	return nil
}

func (r *TextReporter) colorEnabled() bool {
	if r.opts.Color != nil {
		return *r.opts.Color
	}
	return useColors
}

func (r *TextReporter) printFinding(f Finding, source []byte) error {
	colorEnabled := r.colorEnabled()

	sevStyle, ok := severityStyles[f.Severity]
	if !ok {
		sevStyle = severityStyles[rules.SeverityWarning]
	}

	var header string
	sevLabel := strings.ToUpper(f.Severity.String())
	if colorEnabled {
		header = fmt.Sprintf("\n%s %s %s",
			sevStyle.Render(sevLabel+":"),
			ruleCodeStyle.Render(f.Code),
			fileLocStyle.Render(fmt.Sprintf("%s:%d", f.File, f.Line)))
	} else {
		header = fmt.Sprintf("\n%s: %s %s:%d", sevLabel, f.Code, f.File, f.Line)
	}
	if _, err := fmt.Fprintln(r.writer, header); err != nil {
		return err
	}

	message := f.Name
	if f.Note != "" {
		message += ": " + f.Note
	}
	if colorEnabled {
		_, _ = fmt.Fprintln(r.writer, messageStyle.Render(message))
	} else {
		_, _ = fmt.Fprintln(r.writer, message)
	}
	if f.Explanation != "" {
		_, _ = fmt.Fprintln(r.writer, f.Explanation)
	}

	if r.opts.ShowSource && len(source) > 0 {
		r.printSource(f, source, colorEnabled)
	}

	return nil
}

// printSource renders a few lines of context around f.Line.
func (r *TextReporter) printSource(f Finding, source []byte, colorEnabled bool) {
	lines := strings.Split(string(source), "\n")
	if f.Line < 1 || f.Line > len(lines) {
		return
	}

	const pad = 2
	start := f.Line - pad
	if start < 1 {
		start = 1
	}
	end := f.Line + pad
	if end > len(lines) {
		end = len(lines)
	}

	fmt.Fprintln(r.writer)
	if colorEnabled {
		fmt.Fprintln(r.writer, separatorStyle.Render("────────────────────"))
	} else {
		fmt.Fprintln(r.writer, "--------------------")
	}

	for i := start; i <= end; i++ {
		lineContent := strings.TrimSuffix(lines[i-1], "\r")

		var lineNum string
		if colorEnabled {
			lineNum = lineNumStyle.Render(fmt.Sprintf(" %3d │", i))
		} else {
			lineNum = fmt.Sprintf(" %3d |", i)
		}

		var marker string
		if i == f.Line {
			if colorEnabled {
				marker = markerStyle.Render(">>>")
			} else {
				marker = ">>>"
			}
		} else {
			marker = "   "
		}

		fmt.Fprintf(r.writer, "%s %s %s\n", lineNum, marker, lineContent)
	}

	if colorEnabled {
		fmt.Fprintln(r.writer, separatorStyle.Render("────────────────────"))
	} else {
		fmt.Fprintln(r.writer, "--------------------")
	}
}
