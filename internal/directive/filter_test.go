package directive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tboy1337/blinter/internal/rules"
	"github.com/tboy1337/blinter/internal/script"
	"github.com/tboy1337/blinter/internal/source"
)

func scriptFrom(t *testing.T, lines []string) *script.Script {
	t.Helper()
	raw := ""
	for i, l := range lines {
		raw += l
		if i < len(lines)-1 {
			raw += "\r\n"
		}
	}
	src, err := source.Decode("script.bat", []byte(raw))
	require.NoError(t, err)
	return script.Classify(src)
}

func TestFilterSuppressesLineDirective(t *testing.T) {
	sc := scriptFrom(t, []string{
		`@echo off`,
		`IF %VAR%=="bad" echo x`,
		`REM LINT:IGNORE-LINE E007`,
	})
	diags := []rules.Diagnostic{rules.New(3, "E007"), rules.New(3, "W021")}
	res := Filter(sc, diags, rules.Options{MinSeverity: rules.SeverityStyle}, rules.DefaultCatalog)

	assert.Len(t, res.Suppressed, 1)
	assert.Equal(t, "E007", res.Suppressed[0].RuleCode)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, "W021", res.Diagnostics[0].RuleCode)
}

func TestFilterSeverityThreshold(t *testing.T) {
	sc := scriptFrom(t, []string{`@echo off`, `echo hi`})
	diags := []rules.Diagnostic{rules.New(2, "S004"), rules.New(2, "E006")}
	res := Filter(sc, diags, rules.Options{MinSeverity: rules.SeverityWarning}, rules.DefaultCatalog)

	var codes []string
	for _, d := range res.Diagnostics {
		codes = append(codes, d.RuleCode)
	}
	assert.Contains(t, codes, "E006")
	assert.NotContains(t, codes, "S004")
}

func TestFilterNextLineDirective(t *testing.T) {
	sc := scriptFrom(t, []string{
		`@echo off`,
		`REM LINT:IGNORE W024`,
		`WMIC os get caption`,
	})
	diags := []rules.Diagnostic{rules.New(3, "W024")}
	res := Filter(sc, diags, rules.Options{MinSeverity: rules.SeverityStyle}, rules.DefaultCatalog)
	assert.Empty(t, res.Diagnostics)
	require.Len(t, res.Suppressed, 1)
}
