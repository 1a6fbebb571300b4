package file

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tboy1337/blinter/internal/rules"
	"github.com/tboy1337/blinter/internal/script"
	"github.com/tboy1337/blinter/internal/source"
)

func TestUnbalancedParens_ClosingWithNoOpen(t *testing.T) {
	sc := build(t, []string{
		`@echo off`,
		`echo hi)`,
	})
	ctx := Build(sc)
	diags := NewEngine().Evaluate(sc, rules.Options{}, ctx)
	assert.True(t, hasDiag(diags, 2, "E001"))
}

func TestUnbalancedParens_NeverCloses(t *testing.T) {
	sc := build(t, []string{
		`@echo off`,
		`if "%VAR%"=="1" (`,
		`echo hi`,
	})
	ctx := Build(sc)
	diags := NewEngine().Evaluate(sc, rules.Options{}, ctx)
	assert.True(t, hasDiag(diags, 3, "E001"))
}

func TestUnbalancedParens_BalancedIsClean(t *testing.T) {
	sc := build(t, []string{
		`@echo off`,
		`if "%VAR%"=="1" (echo hi)`,
	})
	ctx := Build(sc)
	diags := NewEngine().Evaluate(sc, rules.Options{}, ctx)
	assert.False(t, hasDiag(diags, 2, "E001"))
}

func decodeScript(t *testing.T, raw string) *script.Script {
	t.Helper()
	src, err := source.Decode("script.bat", []byte(raw))
	require.NoError(t, err)
	return script.Classify(src)
}

func TestMixedLineEndings_Flagged(t *testing.T) {
	sc := decodeScript(t, "a\r\nb\n")
	require.Equal(t, source.LineEndingMixed, sc.LineEndingStyle)
	ctx := Build(sc)
	diags := NewEngine().Evaluate(sc, rules.Options{}, ctx)
	assert.True(t, hasDiag(diags, sc.Lines[0].Index, "W018"))
}

func TestMixedLineEndings_NotFlaggedWhenConsistent(t *testing.T) {
	sc := decodeScript(t, "a\r\nb\r\n")
	ctx := Build(sc)
	diags := NewEngine().Evaluate(sc, rules.Options{}, ctx)
	assert.False(t, hasDiag(diags, 1, "W018"))
}

func TestInconsistentLineEnding_FlagsOutlier(t *testing.T) {
	raw := ""
	for i := 0; i < 40; i++ {
		raw += "line\r\n"
	}
	raw += "oddball\n"
	sc := decodeScript(t, raw)
	require.Equal(t, source.LineEndingCRLF, sc.LineEndingStyle)
	ctx := Build(sc)
	diags := NewEngine().Evaluate(sc, rules.Options{}, ctx)
	assert.True(t, hasDiag(diags, 41, "S005"))
	assert.False(t, hasDiag(diags, 1, "S005"))
}

func TestInconsistentLineEnding_SkippedWhenFileIsMixed(t *testing.T) {
	sc := decodeScript(t, "a\r\nb\n")
	ctx := Build(sc)
	diags := NewEngine().Evaluate(sc, rules.Options{}, ctx)
	assert.False(t, hasDiag(diags, 1, "S005"))
	assert.False(t, hasDiag(diags, 2, "S005"))
}

func TestDelayedExpansionNotEnabled_Flagged(t *testing.T) {
	sc := build(t, []string{
		`@echo off`,
		`set VAR=1`,
		`echo !VAR!`,
	})
	ctx := Build(sc)
	diags := NewEngine().Evaluate(sc, rules.Options{}, ctx)
	assert.True(t, hasDiag(diags, 3, "P008"))
}

func TestDelayedExpansionNotEnabled_NotFlaggedWhenEnabled(t *testing.T) {
	sc := build(t, []string{
		`@echo off`,
		`setlocal enabledelayedexpansion`,
		`set VAR=1`,
		`echo !VAR!`,
	})
	ctx := Build(sc)
	diags := NewEngine().Evaluate(sc, rules.Options{}, ctx)
	assert.False(t, hasDiag(diags, 4, "P008"))
}

func TestDelayedExpansionUnused_Flagged(t *testing.T) {
	sc := build(t, []string{
		`@echo off`,
		`setlocal enabledelayedexpansion`,
		`echo hi`,
		`endlocal`,
	})
	ctx := Build(sc)
	diags := NewEngine().Evaluate(sc, rules.Options{}, ctx)
	assert.True(t, hasDiag(diags, 2, "P004"))
}

func TestDelayedExpansionUnused_NotFlaggedWhenUsed(t *testing.T) {
	sc := build(t, []string{
		`@echo off`,
		`setlocal enabledelayedexpansion`,
		`set VAR=1`,
		`echo !VAR!`,
		`endlocal`,
	})
	ctx := Build(sc)
	diags := NewEngine().Evaluate(sc, rules.Options{}, ctx)
	assert.False(t, hasDiag(diags, 2, "P004"))
}

func TestDelayedExpansionUnused_OpenScopeAtEOF(t *testing.T) {
	sc := build(t, []string{
		`@echo off`,
		`setlocal enabledelayedexpansion`,
		`echo hi`,
	})
	ctx := Build(sc)
	diags := NewEngine().Evaluate(sc, rules.Options{}, ctx)
	assert.True(t, hasDiag(diags, 2, "P004"))
}
