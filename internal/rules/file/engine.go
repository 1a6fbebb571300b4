package file

import (
	"sort"

	"github.com/tboy1337/blinter/internal/rules"
	"github.com/tboy1337/blinter/internal/script"
)

// Engine runs the whole-file rule set (C6) against a Script's
// AnalysisContext, built once by Build and shared with the per-line engine
// so both passes see the same bookkeeping.
type Engine struct {
	rules []rules.FileRule
}

// NewEngine builds an Engine from the default whole-file rule set.
func NewEngine() *Engine {
	return &Engine{rules: defaultRules()}
}

// Evaluate runs every registered FileRule against sc and its already-built
// AnalysisContext.
func (e *Engine) Evaluate(sc *script.Script, cfg rules.Options, analysis *rules.AnalysisContext) []rules.Diagnostic {
	ctx := rules.FileContext{Script: sc, Config: cfg, Analysis: analysis}
	var out []rules.Diagnostic
	for _, r := range e.rules {
		if !cfg.Enabled(r.Code()) {
			continue
		}
		out = append(out, r.EvaluateFile(ctx)...)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].LineIndex != out[j].LineIndex {
			return out[i].LineIndex < out[j].LineIndex
		}
		return out[i].RuleCode < out[j].RuleCode
	})
	return out
}
