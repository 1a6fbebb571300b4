// Package line implements the per-line rule engine (spec.md §4.5, C5):
// every rule whose decision is local to a single code line, evaluated in
// line-index order with a small amount of running state (S003's casing
// accumulator) threaded across the pass.
package line

import (
	"sort"

	"github.com/tboy1337/blinter/internal/rules"
	"github.com/tboy1337/blinter/internal/script"
)

// Engine runs the registered LineRule set over every code line of a Script.
type Engine struct {
	rules []rules.LineRule
}

// NewEngine builds an Engine from the default structural and pattern-table
// rule set.
func NewEngine() *Engine {
	e := &Engine{}
	e.rules = append(e.rules, structuralRules()...)
	e.rules = append(e.rules, patternTableRules()...)
	return e
}

// Evaluate runs every registered rule over sc's code lines, then the two
// rules that need file-wide-but-still-"local" bookkeeping that doesn't rise
// to the level of C6's AnalysisContext: S001 (@ECHO OFF presence in the
// first three non-blank, non-comment lines) and S003 (command-casing
// consistency, via a running accumulator across the whole pass).
func (e *Engine) Evaluate(sc *script.Script, cfg rules.Options, analysis *rules.AnalysisContext) []rules.Diagnostic {
	var out []rules.Diagnostic
	casing := newCasingState()

	for _, l := range sc.Lines {
		if l.Kind != script.KindCode {
			continue
		}
		ctx := rules.LineContext{Script: sc, Line: l, Config: cfg, Analysis: analysis}

		var lineDiags []rules.Diagnostic
		for _, r := range e.rules {
			if !cfg.Enabled(r.Code()) {
				continue
			}
			lineDiags = append(lineDiags, r.EvaluateLine(ctx)...)
		}
		if cfg.Enabled("S003") {
			if d, ok := casing.check(l); ok {
				lineDiags = append(lineDiags, d)
			}
		}
		sort.SliceStable(lineDiags, func(i, j int) bool { return lineDiags[i].RuleCode < lineDiags[j].RuleCode })
		out = append(out, lineDiags...)
	}

	if cfg.Enabled("S001") {
		if d, ok := checkEchoOffPresence(sc); ok {
			out = append(out, d)
		}
	}

	return out
}
