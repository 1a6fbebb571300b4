// Package testutil provides test helpers for the batch script linter.
package testutil

import (
	"strings"
	"testing"

	filerules "github.com/tboy1337/blinter/internal/rules/file"
	"github.com/tboy1337/blinter/internal/script"
	"github.com/tboy1337/blinter/internal/source"

	"github.com/tboy1337/blinter/internal/rules"
)

// DefaultTestPath is the synthetic file path used by BuildScript when the
// caller doesn't care about the name, matching how the call-follower's own
// tests name an in-memory script.
const DefaultTestPath = "test.bat"

// BuildScript decodes and classifies content as if it had been loaded from
// path, without touching the filesystem. source.Decode handles encoding
// detection exactly as Load does for a file already read into memory.
func BuildScript(tb testing.TB, path, content string) *script.Script {
	tb.Helper()

	src, err := source.Decode(path, []byte(content))
	if err != nil {
		tb.Fatalf("failed to decode script: %v", err)
	}
	return script.Classify(src)
}

// BuildAnalysis runs the C6 bookkeeping pass over sc, for tests that need a
// populated AnalysisContext without going through the full engine pipeline.
func BuildAnalysis(sc *script.Script) *rules.AnalysisContext {
	return filerules.Build(sc)
}

// DefaultOptions returns the engine options a bare test case runs under:
// every rule enabled, the spec's default max line length, no call-following.
func DefaultOptions() rules.Options {
	return rules.Options{MaxLineLength: 150}
}

// RuleTestCase defines a table-driven test case for a single LineRule or
// FileRule.
type RuleTestCase struct {
	// Name is the test case name.
	Name string

	// Content is the script source to lint.
	Content string

	// Options overrides the engine options for this case. Nil falls back
	// to DefaultOptions().
	Options *rules.Options

	// WantCount is the expected number of diagnostics. Use -1 to skip the
	// count check.
	WantCount int

	// WantLines are the expected diagnostic line indexes, in order.
	WantLines []int

	// WantNotes are substrings expected in each diagnostic's ContextNote,
	// checked positionally against WantLines.
	WantNotes []string
}

func (tc RuleTestCase) resolveOptions() rules.Options {
	if tc.Options != nil {
		return *tc.Options
	}
	return DefaultOptions()
}

// RunLineRuleTests runs a table of cases against a single LineRule,
// evaluating it over every code line in script order the same way the C5
// engine does, but without the other registered rules or S001/S003's
// standalone bookkeeping.
func RunLineRuleTests(t *testing.T, rule rules.LineRule, cases []RuleTestCase) {
	t.Helper()

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			opts := tc.resolveOptions()
			sc := BuildScript(t, DefaultTestPath, tc.Content)
			analysis := BuildAnalysis(sc)

			var diags []rules.Diagnostic
			for _, l := range sc.Lines {
				if l.Kind != script.KindCode {
					continue
				}
				ctx := rules.LineContext{Script: sc, Line: l, Config: opts, Analysis: analysis}
				diags = append(diags, rule.EvaluateLine(ctx)...)
			}

			checkDiagnostics(t, diags, tc)
		})
	}
}

// RunFileRuleTests runs a table of cases against a single FileRule.
func RunFileRuleTests(t *testing.T, rule rules.FileRule, cases []RuleTestCase) {
	t.Helper()

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			opts := tc.resolveOptions()
			sc := BuildScript(t, DefaultTestPath, tc.Content)
			analysis := BuildAnalysis(sc)

			ctx := rules.FileContext{Script: sc, Config: opts, Analysis: analysis}
			diags := rule.EvaluateFile(ctx)

			checkDiagnostics(t, diags, tc)
		})
	}
}

func checkDiagnostics(t *testing.T, diags []rules.Diagnostic, tc RuleTestCase) {
	t.Helper()

	if tc.WantCount >= 0 && len(diags) != tc.WantCount {
		t.Errorf("got %d diagnostics, want %d", len(diags), tc.WantCount)
		for i, d := range diags {
			t.Logf("  [%d] %s at line %d: %s", i, d.RuleCode, d.LineIndex, d.ContextNote)
		}
	}

	if len(tc.WantLines) > 0 {
		if len(diags) != len(tc.WantLines) {
			t.Errorf("got %d diagnostics, want %d", len(diags), len(tc.WantLines))
		} else {
			for i, line := range tc.WantLines {
				if diags[i].LineIndex != line {
					t.Errorf("diagnostic[%d].LineIndex = %d, want %d", i, diags[i].LineIndex, line)
				}
			}
		}
	}

	if len(tc.WantNotes) > 0 {
		for i, note := range tc.WantNotes {
			if i >= len(diags) {
				t.Errorf("expected diagnostic[%d] with note containing %q, but only got %d diagnostics",
					i, note, len(diags))
				continue
			}
			if !strings.Contains(diags[i].ContextNote, note) {
				t.Errorf("diagnostic[%d].ContextNote = %q, want substring %q", i, diags[i].ContextNote, note)
			}
		}
	}
}

// AssertNoDiagnostics fails the test if there are any diagnostics.
func AssertNoDiagnostics(tb testing.TB, diags []rules.Diagnostic) {
	tb.Helper()
	if len(diags) > 0 {
		tb.Errorf("expected no diagnostics, got %d:", len(diags))
		for _, d := range diags {
			tb.Logf("  - %s at line %d: %s", d.RuleCode, d.LineIndex, d.ContextNote)
		}
	}
}

// AssertDiagnosticCount fails if the diagnostic count doesn't match.
func AssertDiagnosticCount(tb testing.TB, diags []rules.Diagnostic, want int) {
	tb.Helper()
	if len(diags) != want {
		tb.Errorf("got %d diagnostics, want %d", len(diags), want)
		for _, d := range diags {
			tb.Logf("  - %s at line %d: %s", d.RuleCode, d.LineIndex, d.ContextNote)
		}
	}
}

// AssertDiagnosticAt fails if there's no diagnostic at the given line with
// the given rule code.
func AssertDiagnosticAt(tb testing.TB, diags []rules.Diagnostic, line int, code string) {
	tb.Helper()
	for _, d := range diags {
		if d.LineIndex == line && d.RuleCode == code {
			return
		}
	}
	tb.Errorf("expected diagnostic %q at line %d, not found", code, line)
	tb.Logf("diagnostics:")
	for _, d := range diags {
		tb.Logf("  - %s at line %d: %s", d.RuleCode, d.LineIndex, d.ContextNote)
	}
}

// CountLines counts total lines in the content.
func CountLines(content string) int {
	if content == "" {
		return 0
	}
	return len(strings.Split(content, "\n"))
}

// CountBlankLines counts blank/whitespace-only lines.
func CountBlankLines(content string) int {
	count := 0
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" {
			count++
		}
	}
	return count
}

// CountCommentLines counts lines starting with REM or ::.
func CountCommentLines(content string) int {
	count := 0
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(strings.ToUpper(trimmed), "REM") || strings.HasPrefix(trimmed, "::") {
			count++
		}
	}
	return count
}
