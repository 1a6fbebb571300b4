// Package callfollower implements the call-follower (spec.md §4.7, C7):
// resolving scripts named by CALL relative to the calling script's
// directory, loading them (source+script only, not full rule evaluation),
// and merging their variable definitions into the caller's AnalysisContext
// at the CALL line's position. A failed resolution is not fatal: it
// produces a single CallTargetMissing-class (W003) diagnostic.
package callfollower

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/cenkalti/backoff/v5"
	"github.com/sirupsen/logrus"

	"github.com/tboy1337/blinter/internal/rules"
	"github.com/tboy1337/blinter/internal/script"
	"github.com/tboy1337/blinter/internal/source"
)

var callRe = regexp.MustCompile(`(?i)^\s*CALL\s+"?([^"&|<>\s]+\.(?:bat|cmd)|[A-Za-z0-9_.\\/%~-]+)"?`)

// knownBatchVarRef is the same SET-definition pattern (setVarRe) that
// internal/rules/file uses, duplicated here to keep this package free of a dependency on that
// package's regex internals.
var knownBatchVarRef = regexp.MustCompile(`(?i)^\s*SET\s+(/A\s+|/P\s+)?"?([A-Za-z_][A-Za-z0-9_]*)\s*[=:]`)

// Follow resolves every CALL target referenced in sc, merges each
// successfully loaded target's top-level variable definitions into
// analysis (scoped to start at the CALL line, per spec.md §3's "caller's
// CALL line as the effective definition point"), and returns any
// CallTargetMissing diagnostics for targets that could not be resolved.
// Cycle safety: a path already visited (by canonical absolute path) in this
// call tree is never reloaded or re-descended into.
func Follow(sc *script.Script, analysis *rules.AnalysisContext, logger logrus.FieldLogger) []rules.Diagnostic {
	visited := map[string]bool{}
	if abs, err := filepath.Abs(sc.Path); err == nil {
		visited[abs] = true
	}

	var diags []rules.Diagnostic
	baseDir := filepath.Dir(sc.Path)

	for _, l := range sc.Lines {
		if l.Kind != script.KindCode {
			continue
		}
		m := callRe.FindStringSubmatch(l.Text)
		if m == nil {
			continue
		}
		target := m[1]
		if strings.HasPrefix(target, ":") || strings.ContainsAny(target, "%") {
			continue // a CALL :label or a CALL %VAR% target, not a file path
		}

		resolved, ok := resolve(baseDir, target)
		if !ok {
			diags = append(diags, rules.New(l.Index, "W003").WithNote(target))
			analysis.CallTargets[target] = false
			continue
		}
		if visited[resolved] {
			continue
		}
		visited[resolved] = true
		analysis.CallTargets[resolved] = true

		child, err := loadWithRetry(resolved, logger)
		if err != nil {
			diags = append(diags, rules.New(l.Index, "W003").WithNote(target))
			continue
		}
		mergeDefinitions(analysis, child, l.Index)
	}

	return diags
}

// resolve tries target as given, then with .bat and .cmd appended if it has
// no extension, relative to baseDir.
func resolve(baseDir, target string) (string, bool) {
	candidates := []string{target}
	if filepath.Ext(target) == "" {
		candidates = append(candidates, target+".bat", target+".cmd")
	}
	for _, c := range candidates {
		p := c
		if !filepath.IsAbs(p) {
			p = filepath.Join(baseDir, c)
		}
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			abs, err := filepath.Abs(p)
			if err != nil {
				return p, true
			}
			return abs, true
		}
	}
	return "", false
}

// loadWithRetry loads a CALL target with bounded retry, for scripts that
// live on slow or network-mounted drives.
func loadWithRetry(path string, logger logrus.FieldLogger) (*script.Script, error) {
	op := func() (*script.Script, error) {
		srcScript, err := source.Load(path, source.Options{})
		if err != nil {
			return nil, err
		}
		return script.Classify(srcScript), nil
	}

	result, err := backoff.Retry(context.Background(), op,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(3),
	)
	if err != nil {
		logger.WithError(err).WithField("path", path).Warn("callfollower: failed to load CALL target")
		return nil, err
	}
	return result, nil
}

// mergeDefinitions copies the child script's top-level variable definitions
// into the caller's AnalysisContext, effective as of callLine, per spec.md
// §3: a variable supplied externally by C7 is considered defined from the
// caller's CALL line onward, without overwriting a definition the caller
// already has from its own source.
func mergeDefinitions(analysis *rules.AnalysisContext, child *script.Script, callLine int) {
	for _, l := range child.Lines {
		if l.Kind != script.KindCode {
			continue
		}
		m := knownBatchVarRef.FindStringSubmatch(l.Text)
		if m == nil {
			continue
		}
		name := m[2]
		if _, exists := analysis.VariablesDefined[name]; exists {
			continue
		}
		analysis.VariablesDefined[name] = &rules.VariableInfo{FirstLine: callLine, FromCaller: true}
	}
}
