package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSeverity(t *testing.T) {
	cases := map[string]Severity{
		"error":       SeverityError,
		"WARNING":     SeverityWarning,
		"warn":        SeverityWarning,
		"Style":       SeverityStyle,
		"security":    SeveritySecurity,
		"performance": SeverityPerformance,
		"perf":        SeverityPerformance,
	}
	for in, want := range cases {
		got, ok := ParseSeverity(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := ParseSeverity("bogus")
	assert.False(t, ok)
}

func TestSeverity_String(t *testing.T) {
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "style", SeverityStyle.String())
	assert.Equal(t, "security", SeveritySecurity.String())
	assert.Equal(t, "performance", SeverityPerformance.String())
	assert.Equal(t, "unknown", Severity(99).String())
}

func TestSeverity_AtLeast(t *testing.T) {
	assert.True(t, SeverityError.AtLeast(SeverityStyle))
	assert.True(t, SeverityWarning.AtLeast(SeverityWarning))
	assert.False(t, SeverityStyle.AtLeast(SeverityError))
	assert.True(t, SeverityPerformance.AtLeast(SeverityStyle))
	assert.False(t, SeverityPerformance.AtLeast(SeveritySecurity))
}

func TestSeverity_UIRank_DisplayOrder(t *testing.T) {
	// spec.md §4.9: Error > Warning > Security > Performance > Style.
	assert.Less(t, SeverityError.UIRank(), SeverityWarning.UIRank())
	assert.Less(t, SeverityWarning.UIRank(), SeveritySecurity.UIRank())
	assert.Less(t, SeveritySecurity.UIRank(), SeverityPerformance.UIRank())
	assert.Less(t, SeverityPerformance.UIRank(), SeverityStyle.UIRank())
}
