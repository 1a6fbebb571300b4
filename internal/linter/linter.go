// Package linter provides the shared lint pipeline used by both the CLI and
// any future programmatic caller.
//
// The pipeline: load (C1) → classify (C2) → rule engines (C5, C6) using the
// lexical helpers (C3) and the static catalog (C4) → call-follower merge
// (C7) → suppression gate (C8) → diagnostic emitter (C9).
package linter

import (
	"sort"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/tboy1337/blinter/internal/callfollower"
	"github.com/tboy1337/blinter/internal/config"
	"github.com/tboy1337/blinter/internal/directive"
	"github.com/tboy1337/blinter/internal/rules"
	filerules "github.com/tboy1337/blinter/internal/rules/file"
	linerules "github.com/tboy1337/blinter/internal/rules/line"
	"github.com/tboy1337/blinter/internal/script"
	"github.com/tboy1337/blinter/internal/source"
)

// Input configures a single invocation of LintFile.
type Input struct {
	// FilePath is the script to analyze.
	FilePath string

	// Config is the resolved options. If nil, LintFile loads via config.Load.
	Config *rules.Options

	// Logger receives operational messages (config fallback, call-follower
	// misses). Nil means logrus.StandardLogger().
	Logger logrus.FieldLogger

	// Catalog overrides the default rule catalog. Nil means rules.DefaultCatalog.
	Catalog *rules.Catalog
}

// Result is the output of LintFile.
type Result struct {
	// Diagnostics is the final, ordered, deduplicated diagnostic list (C9).
	Diagnostics []rules.Diagnostic

	// Suppressed are diagnostics an inline directive removed.
	Suppressed []rules.Diagnostic

	// Script is the classified script, exposed for callers (reporters) that
	// need source text.
	Script *script.Script
}

var lineEngine = linerules.NewEngine()
var fileEngine = filerules.NewEngine()

// LintFile runs the full pipeline for one file.
func LintFile(input Input) (*Result, error) {
	logger := input.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	catalog := input.Catalog
	if catalog == nil {
		catalog = rules.DefaultCatalog
	}

	opts := rules.Options{MaxLineLength: 150}
	if input.Config != nil {
		opts = *input.Config
	} else if cfg, err := config.Load(input.FilePath); err == nil {
		opts = cfg.ToOptions()
	} else {
		logger.WithError(err).WithField("file", input.FilePath).
			Warn("linter: config load failed, using defaults")
	}

	srcScript, err := source.Load(input.FilePath, source.Options{})
	if err != nil {
		return nil, err
	}
	sc := script.Classify(srcScript)

	analysis := filerules.Build(sc)

	var diags []rules.Diagnostic
	diags = append(diags, lineEngine.Evaluate(sc, opts, analysis)...)
	diags = append(diags, fileEngine.Evaluate(sc, opts, analysis)...)

	if opts.FollowCalls {
		callDiags := callfollower.Follow(sc, analysis, logger)
		diags = append(diags, callDiags...)
		// Re-run the undefined-variable check now that call-follower
		// definitions have been merged: this can only remove E006
		// diagnostics, never add new ones (spec.md §8).
		diags = filterOutStaleUndefined(diags, fileEngine.Evaluate(sc, opts, analysis))
	}

	gateResult := directive.Filter(sc, diags, opts, catalog)

	emitted := emit(gateResult.Diagnostics, catalog)

	return &Result{
		Diagnostics: emitted,
		Suppressed:  gateResult.Suppressed,
		Script:      sc,
	}, nil
}

// filterOutStaleUndefined replaces the E006 diagnostics in diags with the
// freshly recomputed set from a post-merge file-engine pass, leaving every
// other diagnostic untouched.
func filterOutStaleUndefined(diags []rules.Diagnostic, recomputed []rules.Diagnostic) []rules.Diagnostic {
	fresh := map[string]bool{}
	for _, d := range recomputed {
		if d.RuleCode == "E006" {
			fresh[key(d)] = true
		}
	}
	out := make([]rules.Diagnostic, 0, len(diags))
	for _, d := range diags {
		if d.RuleCode == "E006" && !fresh[key(d)] {
			continue
		}
		out = append(out, d)
	}
	return out
}

func key(d rules.Diagnostic) string {
	return d.RuleCode + ":" + strconv.Itoa(d.LineIndex)
}

// emit implements C9: a stable sort by (line ascending, severity display
// rank ascending, rule code ascending) and dedup by (line, code), per
// spec.md §4.9.
func emit(diags []rules.Diagnostic, catalog *rules.Catalog) []rules.Diagnostic {
	sorted := make([]rules.Diagnostic, len(diags))
	copy(sorted, diags)
	rank := func(d rules.Diagnostic) int {
		if rule, ok := catalog.Get(d.RuleCode); ok {
			return rule.Severity.UIRank()
		}
		return int(^uint(0) >> 1) // unknown codes sort last
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].LineIndex != sorted[j].LineIndex {
			return sorted[i].LineIndex < sorted[j].LineIndex
		}
		if ri, rj := rank(sorted[i]), rank(sorted[j]); ri != rj {
			return ri < rj
		}
		return sorted[i].RuleCode < sorted[j].RuleCode
	})

	out := make([]rules.Diagnostic, 0, len(sorted))
	seen := map[string]bool{}
	for _, d := range sorted {
		k := key(d)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, d)
	}
	return out
}
