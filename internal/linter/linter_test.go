package linter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tboy1337/blinter/internal/rules"
	"github.com/tboy1337/blinter/internal/source"
)

func writeScript(t *testing.T, raw string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.bat")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))
	return path
}

// TestEmit_SeverityRankOrdersBeforeRuleCode exercises the maintainer-flagged
// gap directly: a Performance (P-prefixed) and a Warning (W-prefixed) code on
// the same line must emit Warning first, per spec.md §4.9's display order,
// even though "P" sorts before "W" lexicographically.
func TestEmit_SeverityRankOrdersBeforeRuleCode(t *testing.T) {
	diags := []rules.Diagnostic{
		rules.New(5, "P001"),
		rules.New(5, "W001"),
	}
	out := emit(diags, rules.DefaultCatalog)
	require.Len(t, out, 2)
	assert.Equal(t, "W001", out[0].RuleCode)
	assert.Equal(t, "P001", out[1].RuleCode)
}

func TestEmit_SameSeverityFallsBackToRuleCodeOrder(t *testing.T) {
	diags := []rules.Diagnostic{
		rules.New(1, "E034"),
		rules.New(1, "E001"),
	}
	out := emit(diags, rules.DefaultCatalog)
	require.Len(t, out, 2)
	assert.Equal(t, "E001", out[0].RuleCode)
	assert.Equal(t, "E034", out[1].RuleCode)
}

func TestEmit_OrdersByLineFirst(t *testing.T) {
	diags := []rules.Diagnostic{
		rules.New(9, "E001"),
		rules.New(2, "P001"),
	}
	out := emit(diags, rules.DefaultCatalog)
	require.Len(t, out, 2)
	assert.Equal(t, 2, out[0].LineIndex)
	assert.Equal(t, 9, out[1].LineIndex)
}

func TestEmit_DedupsByLineAndCode(t *testing.T) {
	diags := []rules.Diagnostic{
		rules.New(1, "E001"),
		rules.New(1, "E001"),
	}
	out := emit(diags, rules.DefaultCatalog)
	assert.Len(t, out, 1)
}

func TestEmit_UnknownCodeSortsLast(t *testing.T) {
	diags := []rules.Diagnostic{
		rules.New(1, "ZZ999"),
		rules.New(1, "S011"),
	}
	out := emit(diags, rules.DefaultCatalog)
	require.Len(t, out, 2)
	assert.Equal(t, "S011", out[0].RuleCode)
	assert.Equal(t, "ZZ999", out[1].RuleCode)
}

func TestLintFile_MissingEchoOff(t *testing.T) {
	path := writeScript(t, "echo hi\r\n")
	res, err := LintFile(Input{FilePath: path, Config: &rules.Options{MinSeverity: rules.SeverityStyle}})
	require.NoError(t, err)
	assert.True(t, hasDiag(res.Diagnostics, 1, "S001"))
}

func TestLintFile_SuppressionRemovesDiagnostic(t *testing.T) {
	path := writeScript(t, "@echo off\r\nREM LINT:IGNORE E007\r\nIF %VAR%==\"\" GOTO done\r\n:done\r\n")
	res, err := LintFile(Input{FilePath: path, Config: &rules.Options{}})
	require.NoError(t, err)
	assert.False(t, hasDiag(res.Diagnostics, 3, "E007"))
	assert.True(t, hasDiag(res.Suppressed, 3, "E007"))
}

func TestLintFile_MinSeverityFiltersLowerSeverities(t *testing.T) {
	path := writeScript(t, "@echo off\r\nECHO one\r\necho two\r\n")
	res, err := LintFile(Input{FilePath: path, Config: &rules.Options{MinSeverity: rules.SeverityError}})
	require.NoError(t, err)
	assert.False(t, hasDiag(res.Diagnostics, 2, "S003"))
}

func TestLintFile_BOMRoundTrip(t *testing.T) {
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("@echo off\r\necho hi\r\n")...)
	path := filepath.Join(t.TempDir(), "script.bat")
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	res, err := LintFile(Input{FilePath: path, Config: &rules.Options{}})
	require.NoError(t, err)
	assert.Equal(t, source.EncodingUTF8BOM, res.Script.Encoding)
	assert.False(t, hasDiag(res.Diagnostics, 1, "S002"))
}

func TestLintFile_IsDeterministicAcrossRuns(t *testing.T) {
	path := writeScript(t, "echo hi\r\nIF %VAR%==\"\" GOTO missing\r\n")
	cfg := &rules.Options{}
	first, err := LintFile(Input{FilePath: path, Config: cfg})
	require.NoError(t, err)
	second, err := LintFile(Input{FilePath: path, Config: cfg})
	require.NoError(t, err)
	require.Equal(t, len(first.Diagnostics), len(second.Diagnostics))
	for i := range first.Diagnostics {
		assert.True(t, first.Diagnostics[i].Equal(second.Diagnostics[i]))
	}
}

func TestLintFile_MissingFileReturnsError(t *testing.T) {
	_, err := LintFile(Input{FilePath: filepath.Join(t.TempDir(), "nope.bat"), Config: &rules.Options{}})
	assert.Error(t, err)
}

func TestLintFile_DisabledRuleIsSkipped(t *testing.T) {
	path := writeScript(t, "@echo off\r\nWMIC os get caption\r\n")

	enabled, err := LintFile(Input{FilePath: path, Config: &rules.Options{MinSeverity: rules.SeverityStyle}})
	require.NoError(t, err)
	require.True(t, hasDiag(enabled.Diagnostics, 2, "W024"))

	disabled, err := LintFile(Input{FilePath: path, Config: &rules.Options{
		MinSeverity:   rules.SeverityStyle,
		DisabledRules: map[string]bool{"W024": true},
	}})
	require.NoError(t, err)
	assert.False(t, hasDiag(disabled.Diagnostics, 2, "W024"))
}

func hasDiag(diags []rules.Diagnostic, line int, code string) bool {
	for _, d := range diags {
		if d.LineIndex == line && d.RuleCode == code {
			return true
		}
	}
	return false
}
