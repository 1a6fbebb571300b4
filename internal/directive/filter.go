// Package directive implements the configuration and suppression gate
// (spec.md §4.8, C8): applying the severity filter and inline
// LINT:IGNORE[-LINE] directives to a raw diagnostic list. Enabled/disabled
// rule-set filtering happens earlier, inside the rule engines themselves
// (rules.Options.Enabled), since it determines whether a rule runs at all
// rather than whether its output survives.
package directive

import (
	"github.com/tboy1337/blinter/internal/rules"
	"github.com/tboy1337/blinter/internal/script"
)

// FilterResult is the outcome of running the gate over one script's raw
// diagnostics, mirroring the teacher's violations/suppressed split.
type FilterResult struct {
	// Diagnostics are the survivors: what the caller ultimately reports.
	Diagnostics []rules.Diagnostic

	// Suppressed are diagnostics a LINT:IGNORE directive removed.
	Suppressed []rules.Diagnostic
}

// Filter applies the severity threshold and inline suppression directives,
// in that order, against sc's already-classified lines (Script.Line's
// EffectiveSuppression), rather than re-parsing comments.
func Filter(sc *script.Script, diags []rules.Diagnostic, cfg rules.Options, catalog *rules.Catalog) *FilterResult {
	result := &FilterResult{
		Diagnostics: make([]rules.Diagnostic, 0, len(diags)),
		Suppressed:  make([]rules.Diagnostic, 0),
	}

	for _, d := range diags {
		if !passesSeverityFilter(d, cfg, catalog) {
			continue
		}
		if isSuppressed(sc, d) {
			result.Suppressed = append(result.Suppressed, d)
			continue
		}
		result.Diagnostics = append(result.Diagnostics, d)
	}
	return result
}

func passesSeverityFilter(d rules.Diagnostic, cfg rules.Options, catalog *rules.Catalog) bool {
	rule, ok := catalog.Get(d.RuleCode)
	if !ok {
		return true
	}
	return rule.Severity.AtLeast(cfg.MinSeverity)
}

func isSuppressed(sc *script.Script, d rules.Diagnostic) bool {
	l, ok := sc.Line(d.LineIndex)
	if !ok {
		return false
	}
	supp := l.EffectiveSuppression()
	return supp != nil && supp.Suppresses(d.RuleCode)
}
