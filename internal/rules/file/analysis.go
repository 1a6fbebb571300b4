// Package file implements the whole-file rule engine (spec.md §4.6, C6):
// the bookkeeping pass that builds an AnalysisContext (labels, variables,
// SETLOCAL balance, reachability) and the rules that consume it.
package file

import (
	"regexp"
	"strings"

	"github.com/tboy1337/blinter/internal/rules"
	"github.com/tboy1337/blinter/internal/script"
)

var (
	labelRefRe          = regexp.MustCompile(`(?i)\b(GOTO|CALL)\s+:?([A-Za-z_][A-Za-z0-9_.]*)`)
	variableRefRe       = regexp.MustCompile(`%([A-Za-z_][A-Za-z0-9_]*)%|!([A-Za-z_][A-Za-z0-9_]*)!`)
	setVarRe            = regexp.MustCompile(`(?i)^\s*SET\s+(/A\s+|/P\s+)?"?([A-Za-z_][A-Za-z0-9_]*)\s*[=:]`)
	forVarDefRe         = regexp.MustCompile(`(?i)^\s*FOR\b.*%%?([A-Za-z])\b`)
	setlocalRe          = regexp.MustCompile(`(?i)^\s*SETLOCAL\b(.*)$`)
	endlocalRe          = regexp.MustCompile(`(?i)^\s*ENDLOCAL\b`)
	exitRe              = regexp.MustCompile(`(?i)^\s*EXIT\b`)
	unconditionalGotoRe = regexp.MustCompile(`(?i)^\s*GOTO\s+`)
)

// wellKnownEnvVars is the explicit allowlist from spec.md §4.6: references
// to these never trigger E006 even with no local definition.
var wellKnownEnvVars = map[string]bool{}

func init() {
	for _, v := range []string{
		"PATH", "TEMP", "TMP", "USERPROFILE", "APPDATA", "LOCALAPPDATA",
		"WINDIR", "SYSTEMROOT", "COMSPEC", "HOMEDRIVE", "HOMEPATH",
		"USERNAME", "COMPUTERNAME", "PROCESSOR_ARCHITECTURE",
		"PROCESSOR_IDENTIFIER", "NUMBER_OF_PROCESSORS", "ERRORLEVEL",
		"RANDOM", "DATE", "TIME", "CD", "CMDCMDLINE", "CMDEXTVERSION",
		"OS", "PATHEXT", "PROMPT",
	} {
		wellKnownEnvVars[v] = true
	}
}

// Build runs the C6 bookkeeping pass over sc, producing a populated
// AnalysisContext. Rule evaluation (in this package's rule files) consumes
// the result; Build itself makes no diagnostic decisions.
func Build(sc *script.Script) *rules.AnalysisContext {
	ctx := rules.NewAnalysisContext()
	forVars := map[string]bool{}

	for _, l := range sc.Lines {
		switch l.Kind {
		case script.KindLabel:
			info, exists := ctx.LabelsDefined[l.LabelName]
			if exists {
				info.Count++
			} else {
				ctx.LabelsDefined[l.LabelName] = &rules.LabelInfo{FirstLine: l.Index, Count: 1}
			}
		case script.KindCode:
			buildLabelReferences(ctx, l)
			buildSetlocalTracking(ctx, l)
			buildVariableDefinitions(ctx, l, forVars)
			buildVariableReferences(ctx, l, forVars)
		}
	}

	buildReachability(ctx, sc)
	return ctx
}

func buildLabelReferences(ctx *rules.AnalysisContext, l script.Line) {
	for _, m := range labelRefRe.FindAllStringSubmatch(l.Text, -1) {
		name := m[2]
		if strings.EqualFold(name, "EOF") {
			continue
		}
		ctx.LabelsReferenced[name] = append(ctx.LabelsReferenced[name], l.Index)
	}
}

func buildVariableDefinitions(ctx *rules.AnalysisContext, l script.Line, forVars map[string]bool) {
	if m := setVarRe.FindStringSubmatch(l.Text); m != nil {
		name := m[2]
		if _, exists := ctx.VariablesDefined[name]; !exists {
			ctx.VariablesDefined[name] = &rules.VariableInfo{FirstLine: l.Index}
		}
	}
	if m := forVarDefRe.FindStringSubmatch(l.Text); m != nil {
		forVars[strings.ToUpper(m[1])] = true
	}
}

func buildVariableReferences(ctx *rules.AnalysisContext, l script.Line, forVars map[string]bool) {
	for _, m := range variableRefRe.FindAllStringSubmatch(l.Text, -1) {
		name := m[1]
		if name == "" {
			name = m[2]
		}
		if name == "" {
			continue
		}
		if isParameterRef(name) || forVars[strings.ToUpper(name)] || wellKnownEnvVars[strings.ToUpper(name)] {
			continue
		}
		ctx.VariablesReferenced[name] = append(ctx.VariablesReferenced[name], l.Index)
	}
}

func isParameterRef(name string) bool {
	return len(name) == 1 && name[0] >= '0' && name[0] <= '9'
}

func buildSetlocalTracking(ctx *rules.AnalysisContext, l script.Line) {
	if m := setlocalRe.FindStringSubmatch(l.Text); m != nil {
		ctx.SetlocalStack = append(ctx.SetlocalStack, l.Index)
		delayed := strings.Contains(strings.ToUpper(m[1]), "ENABLEDELAYEDEXPANSION")
		ctx.DelayedExpansionEnabled = append(ctx.DelayedExpansionEnabled, delayed)
		return
	}
	if endlocalRe.MatchString(l.Text) {
		if len(ctx.SetlocalStack) > 0 {
			ctx.SetlocalStack = ctx.SetlocalStack[:len(ctx.SetlocalStack)-1]
			ctx.DelayedExpansionEnabled = ctx.DelayedExpansionEnabled[:len(ctx.DelayedExpansionEnabled)-1]
		}
	}
}

// buildReachability implements the flow-insensitive approximation from
// spec.md §4.6: a line is unreachable if the immediately preceding
// non-comment, non-blank line is an unconditional EXIT/GOTO, and that
// predecessor is not inside a parenthesized block.
func buildReachability(ctx *rules.AnalysisContext, sc *script.Script) {
	depth := 0
	prevWasExit := false
	prevWasGoto := false

	for _, l := range sc.Lines {
		if l.Kind == script.KindBlank || l.Kind == script.KindComment {
			continue
		}
		depthBefore := depth
		depth += strings.Count(l.Text, "(") - strings.Count(l.Text, ")")
		if depth < 0 {
			depth = 0
		}

		if l.Kind == script.KindLabel {
			prevWasExit, prevWasGoto = false, false
			continue
		}

		switch {
		case prevWasExit && depthBefore == 0:
			ctx.ReachabilityMap[l.Index] = rules.UnreachableAfterExit
		case prevWasGoto && depthBefore == 0:
			ctx.ReachabilityMap[l.Index] = rules.UnreachableAfterGoto
		default:
			ctx.ReachabilityMap[l.Index] = rules.Reachable
		}

		prevWasExit = exitRe.MatchString(l.Text)
		prevWasGoto = unconditionalGotoRe.MatchString(l.Text) && !strings.Contains(strings.ToUpper(l.Text), "IF ")
	}
}
