package reporter

import (
	"io"
	"path/filepath"
	"sort"

	"github.com/owenrumney/go-sarif/v3/pkg/report/v210/sarif"

	"github.com/tboy1337/blinter/internal/rules"
)

// Default SARIF tool information.
const (
	defaultToolName = "blinter"
	defaultToolURI  = "https://github.com/tboy1337/blinter"
)

// SARIFReporter formats findings as SARIF (Static Analysis Results
// Interchange Format), a standard widely supported by CI/CD systems
// including GitHub Code Scanning and Azure DevOps.
//
// See: https://docs.oasis-open.org/sarif/sarif/v2.1.0/
type SARIFReporter struct {
	writer      io.Writer
	toolName    string
	toolVersion string
	toolURI     string
}

// NewSARIFReporter creates a new SARIF reporter.
func NewSARIFReporter(w io.Writer, toolName, toolVersion, toolURI string) *SARIFReporter {
	if toolName == "" {
		toolName = defaultToolName
	}
	if toolURI == "" {
		toolURI = defaultToolURI
	}
	return &SARIFReporter{
		writer:      w,
		toolName:    toolName,
		toolVersion: toolVersion,
		toolURI:     toolURI,
	}
}

// Report implements Reporter.
func (r *SARIFReporter) Report(findings []Finding, _ map[string][]byte, _ ReportMetadata) error {
	report := sarif.NewReport()

	run := sarif.NewRunWithInformationURI(r.toolName, r.toolURI)
	if r.toolVersion != "" {
		run.Tool.Driver.WithVersion(r.toolVersion)
	}

	ruleSet := make(map[string]Finding)
	fileSet := make(map[string]struct{})

	for _, f := range findings {
		if _, exists := ruleSet[f.Code]; !exists {
			ruleSet[f.Code] = f
		}
		fileSet[filepath.ToSlash(f.File)] = struct{}{}
	}

	ruleCodes := make([]string, 0, len(ruleSet))
	for code := range ruleSet {
		ruleCodes = append(ruleCodes, code)
	}
	sort.Strings(ruleCodes)

	for _, code := range ruleCodes {
		f := ruleSet[code]
		rule := run.AddRule(code)
		if f.Explanation != "" {
			rule.WithShortDescription(sarif.NewMultiformatMessageString().WithText(f.Explanation))
		}
	}

	files := make([]string, 0, len(fileSet))
	for file := range fileSet {
		files = append(files, file)
	}
	sort.Strings(files)
	for _, file := range files {
		run.AddDistinctArtifact(file)
	}

	for _, f := range findings {
		filePath := filepath.ToSlash(f.File)

		message := f.Name
		if f.Note != "" {
			message += ": " + f.Note
		}

		result := sarif.NewRuleResult(f.Code).
			WithMessage(sarif.NewTextMessage(message)).
			WithLevel(severityToSARIFLevel(f.Severity))

		region := sarif.NewRegion().WithStartLine(f.Line)
		physicalLocation := sarif.NewPhysicalLocation().
			WithArtifactLocation(sarif.NewSimpleArtifactLocation(filePath)).
			WithRegion(region)
		result.WithLocations([]*sarif.Location{
			sarif.NewLocationWithPhysicalLocation(physicalLocation),
		})

		run.AddResult(result)
	}

	report.AddRun(run)
	return report.PrettyWrite(r.writer)
}

// SARIF severity levels.
const (
	sarifLevelError   = "error"
	sarifLevelWarning = "warning"
	sarifLevelNote    = "note"
)

// severityToSARIFLevel maps a Severity to a SARIF level: "error",
// "warning", or "note".
func severityToSARIFLevel(s rules.Severity) string {
	switch s {
	case rules.SeverityError:
		return sarifLevelError
	case rules.SeverityWarning, rules.SeveritySecurity:
		return sarifLevelWarning
	case rules.SeverityStyle, rules.SeverityPerformance:
		return sarifLevelNote
	default:
		return sarifLevelWarning
	}
}
