package reporter

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/tboy1337/blinter/internal/rules"
)

func TestSARIFReporter(t *testing.T) {
	findings := []Finding{
		{
			File:        "build.bat",
			Line:        5,
			Code:        "W005",
			Name:        "Deprecated command",
			Explanation: "WMIC is deprecated in modern Windows.",
			Severity:    rules.SeverityWarning,
		},
		{
			File:     "build.bat",
			Line:     10,
			Code:     "E003",
			Name:     "Unbalanced quotes",
			Severity: rules.SeverityError,
		},
	}

	var buf bytes.Buffer
	reporter := NewSARIFReporter(&buf, "blinter", "1.0.0", "https://github.com/tboy1337/blinter")

	err := reporter.Report(findings, nil, ReportMetadata{})
	if err != nil {
		t.Fatalf("Report() error = %v", err)
	}

	var sarifDoc map[string]any
	if err := json.Unmarshal(buf.Bytes(), &sarifDoc); err != nil {
		t.Fatalf("Failed to parse SARIF output: %v\nOutput: %s", err, buf.String())
	}

	if sarifDoc["$schema"] == nil {
		t.Error("Missing $schema in SARIF output")
	}
	if sarifDoc["version"] != "2.1.0" {
		t.Errorf("Expected SARIF version 2.1.0, got %v", sarifDoc["version"])
	}

	runs, ok := sarifDoc["runs"].([]any)
	if !ok || len(runs) != 1 {
		t.Fatalf("Expected 1 run, got %v", sarifDoc["runs"])
	}
	run, ok := runs[0].(map[string]any)
	if !ok {
		t.Fatalf("Expected run to be map, got %T", runs[0])
	}

	tool, ok := run["tool"].(map[string]any)
	if !ok {
		t.Fatalf("Expected tool to be map, got %T", run["tool"])
	}
	driver, ok := tool["driver"].(map[string]any)
	if !ok {
		t.Fatalf("Expected driver to be map, got %T", tool["driver"])
	}
	if driver["name"] != "blinter" {
		t.Errorf("Expected tool name 'blinter', got %v", driver["name"])
	}
	if driver["version"] != "1.0.0" {
		t.Errorf("Expected tool version '1.0.0', got %v", driver["version"])
	}

	results, ok := run["results"].([]any)
	if !ok {
		t.Fatalf("Expected results to be array, got %T", run["results"])
	}
	if len(results) != 2 {
		t.Errorf("Expected 2 results, got %d", len(results))
	}

	result1, ok := results[0].(map[string]any)
	if !ok {
		t.Fatalf("Expected result to be map, got %T", results[0])
	}
	if result1["ruleId"] != "W005" {
		t.Errorf("Expected ruleId 'W005', got %v", result1["ruleId"])
	}
	if result1["level"] != "warning" {
		t.Errorf("Expected level 'warning', got %v", result1["level"])
	}

	result2, ok := results[1].(map[string]any)
	if !ok {
		t.Fatalf("Expected result to be map, got %T", results[1])
	}
	if result2["ruleId"] != "E003" {
		t.Errorf("Expected ruleId 'E003', got %v", result2["ruleId"])
	}
	if result2["level"] != "error" {
		t.Errorf("Expected level 'error', got %v", result2["level"])
	}
}

func TestSARIFReporterSeverityMapping(t *testing.T) {
	tests := []struct {
		severity rules.Severity
		expected string
	}{
		{rules.SeverityError, "error"},
		{rules.SeverityWarning, "warning"},
		{rules.SeveritySecurity, "warning"},
		{rules.SeverityPerformance, "note"},
		{rules.SeverityStyle, "note"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			result := severityToSARIFLevel(tt.severity)
			if result != tt.expected {
				t.Errorf("severityToSARIFLevel(%v) = %q, want %q", tt.severity, result, tt.expected)
			}
		})
	}
}

func TestSARIFReporterEmpty(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewSARIFReporter(&buf, "blinter", "1.0.0", "")

	err := reporter.Report(nil, nil, ReportMetadata{})
	if err != nil {
		t.Fatalf("Report() error = %v", err)
	}

	var sarifDoc map[string]any
	if err := json.Unmarshal(buf.Bytes(), &sarifDoc); err != nil {
		t.Fatalf("Failed to parse SARIF output: %v", err)
	}

	runs, ok := sarifDoc["runs"].([]any)
	if !ok || len(runs) != 1 {
		t.Fatalf("Expected 1 run, got %v", sarifDoc["runs"])
	}
	run, ok := runs[0].(map[string]any)
	if !ok {
		t.Fatalf("Expected run to be map, got %T", runs[0])
	}

	results, ok := run["results"].([]any)
	if !ok {
		t.Fatalf("Expected results to be array, got %T", run["results"])
	}
	if len(results) != 0 {
		t.Errorf("Expected 0 results, got %d", len(results))
	}
}

func TestSARIFReporterLineMapping(t *testing.T) {
	findings := []Finding{
		{File: "build.bat", Line: 7, Code: "TEST", Severity: rules.SeverityWarning},
	}

	var buf bytes.Buffer
	reporter := NewSARIFReporter(&buf, "blinter", "1.0.0", "")

	err := reporter.Report(findings, nil, ReportMetadata{})
	if err != nil {
		t.Fatalf("Report() error = %v", err)
	}

	var sarifDoc map[string]any
	if err := json.Unmarshal(buf.Bytes(), &sarifDoc); err != nil {
		t.Fatalf("Failed to parse SARIF output: %v", err)
	}

	runs := sarifDoc["runs"].([]any)
	run := runs[0].(map[string]any)
	results := run["results"].([]any)
	result := results[0].(map[string]any)
	locations := result["locations"].([]any)
	location := locations[0].(map[string]any)
	physicalLocation := location["physicalLocation"].(map[string]any)
	region := physicalLocation["region"].(map[string]any)

	startLine, ok := region["startLine"].(float64)
	if !ok {
		t.Fatal("Expected startLine in region")
	}
	if startLine != 7 {
		t.Errorf("Expected startLine=7, got %v", startLine)
	}
}
