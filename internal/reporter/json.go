package reporter

import (
	"encoding/json"
	"io"
	"path/filepath"

	"github.com/tboy1337/blinter/internal/rules"
)

// JSONOutput is the top-level structure for JSON output.
type JSONOutput struct {
	Files        []JSONFileResult `json:"files"`
	Summary      JSONSummary      `json:"summary"`
	FilesScanned int              `json:"files_scanned"`
	RulesEnabled int              `json:"rules_enabled"`
}

// JSONFileResult contains the findings for a single file.
type JSONFileResult struct {
	File     string        `json:"file"`
	Findings []JSONFinding `json:"findings"`
}

// JSONFinding is the JSON rendering of one Finding.
type JSONFinding struct {
	Line           int    `json:"line"`
	Code           string `json:"code"`
	Severity       string `json:"severity"`
	Name           string `json:"name"`
	Explanation    string `json:"explanation,omitempty"`
	Recommendation string `json:"recommendation,omitempty"`
	Note           string `json:"note,omitempty"`
}

// JSONSummary contains aggregate statistics about findings.
type JSONSummary struct {
	Total       int `json:"total"`
	Errors      int `json:"errors"`
	Warnings    int `json:"warnings"`
	Style       int `json:"style"`
	Security    int `json:"security"`
	Performance int `json:"performance"`
	Files       int `json:"files"`
}

// JSONReporter formats findings as JSON output.
type JSONReporter struct {
	writer io.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(w io.Writer) *JSONReporter {
	return &JSONReporter{writer: w}
}

// Report implements Reporter.
func (r *JSONReporter) Report(findings []Finding, _ map[string][]byte, metadata ReportMetadata) error {
	byFile := make(map[string][]JSONFinding)
	filesOrder := make([]string, 0)

	for _, f := range SortFindings(findings) {
		file := filepath.ToSlash(f.File)
		if _, exists := byFile[file]; !exists {
			filesOrder = append(filesOrder, file)
		}
		byFile[file] = append(byFile[file], JSONFinding{
			Line:           f.Line,
			Code:           f.Code,
			Severity:       f.Severity.String(),
			Name:           f.Name,
			Explanation:    f.Explanation,
			Recommendation: f.Recommendation,
			Note:           f.Note,
		})
	}

	output := JSONOutput{
		Files:        make([]JSONFileResult, 0, len(filesOrder)),
		Summary:      jsonSummarize(findings, len(filesOrder)),
		FilesScanned: metadata.FilesScanned,
		RulesEnabled: metadata.RulesEnabled,
	}
	for _, file := range filesOrder {
		output.Files = append(output.Files, JSONFileResult{File: file, Findings: byFile[file]})
	}

	enc := json.NewEncoder(r.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

func jsonSummarize(findings []Finding, fileCount int) JSONSummary {
	s := JSONSummary{Total: len(findings), Files: fileCount}
	for _, f := range findings {
		switch f.Severity {
		case rules.SeverityError:
			s.Errors++
		case rules.SeverityWarning:
			s.Warnings++
		case rules.SeverityStyle:
			s.Style++
		case rules.SeveritySecurity:
			s.Security++
		case rules.SeverityPerformance:
			s.Performance++
		}
	}
	return s
}
