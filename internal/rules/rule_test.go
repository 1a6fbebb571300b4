package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tboy1337/blinter/internal/script"
)

func TestOptions_Enabled(t *testing.T) {
	o := Options{}
	assert.True(t, o.Enabled("E001"))

	o = Options{DisabledRules: map[string]bool{"E001": true}}
	assert.False(t, o.Enabled("E001"))
	assert.True(t, o.Enabled("E002"))

	o = Options{EnabledRules: map[string]bool{"E001": true}}
	assert.True(t, o.Enabled("E001"))
	assert.False(t, o.Enabled("E002"))
}

func TestAnalysisContext_SetlocalDepthAndDelayedExpansion(t *testing.T) {
	a := NewAnalysisContext()
	assert.Equal(t, 0, a.SetlocalDepth())
	assert.False(t, a.DelayedExpansionActive())

	a.SetlocalStack = append(a.SetlocalStack, 1)
	a.DelayedExpansionEnabled = append(a.DelayedExpansionEnabled, false)
	assert.Equal(t, 1, a.SetlocalDepth())
	assert.False(t, a.DelayedExpansionActive())

	a.SetlocalStack = append(a.SetlocalStack, 5)
	a.DelayedExpansionEnabled = append(a.DelayedExpansionEnabled, true)
	assert.Equal(t, 2, a.SetlocalDepth())
	assert.True(t, a.DelayedExpansionActive(), "innermost scope wins")
}

func TestAnalysisContext_IsVariableDefined(t *testing.T) {
	a := NewAnalysisContext()
	assert.False(t, a.IsVariableDefined("FOO", 10))

	a.VariablesDefined["FOO"] = &VariableInfo{FirstLine: 5}
	assert.False(t, a.IsVariableDefined("FOO", 4))
	assert.True(t, a.IsVariableDefined("FOO", 5))
	assert.True(t, a.IsVariableDefined("FOO", 10))

	a.VariablesDefined["BAR"] = &VariableInfo{FirstLine: 100, FromCaller: true}
	assert.True(t, a.IsVariableDefined("BAR", 1), "caller-supplied definitions apply everywhere")
}

func TestNewLineRule_Adapter(t *testing.T) {
	r := NewLineRule("E999", func(ctx LineContext) []Diagnostic {
		return []Diagnostic{New(ctx.Line.Index, "E999")}
	})
	assert.Equal(t, "E999", r.Code())
	diags := r.EvaluateLine(LineContext{Line: script.Line{Index: 7}})
	assert.Equal(t, []Diagnostic{New(7, "E999")}, diags)
}

func TestNewFileRule_Adapter(t *testing.T) {
	r := NewFileRule("W999", func(ctx FileContext) []Diagnostic {
		return nil
	})
	assert.Equal(t, "W999", r.Code())
	assert.Nil(t, r.EvaluateFile(FileContext{}))
}
