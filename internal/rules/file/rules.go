package file

import (
	"regexp"
	"strings"

	"github.com/tboy1337/blinter/internal/lexical"
	"github.com/tboy1337/blinter/internal/rules"
	"github.com/tboy1337/blinter/internal/script"
	"github.com/tboy1337/blinter/internal/source"
)

var delayedVarRe = regexp.MustCompile(`!([A-Za-z_][A-Za-z0-9_]*)!`)

func defaultRules() []rules.FileRule {
	return []rules.FileRule{
		rules.NewFileRule("E001", checkUnbalancedParens),
		rules.NewFileRule("E002", checkUndefinedLabels),
		rules.NewFileRule("W013", checkDuplicateLabels),
		rules.NewFileRule("S010", checkDeadLabels),
		rules.NewFileRule("E008", checkUnreachableCode),
		rules.NewFileRule("E006", checkUndefinedVariables),
		rules.NewFileRule("P003", checkSetlocalNoSet),
		rules.NewFileRule("P005", checkEndlocalNoSetlocal),
		rules.NewFileRule("P006", checkSetlocalNoEndlocal),
		rules.NewFileRule("P024", checkSetlocalImmediateEndlocal),
		rules.NewFileRule("P026", checkSetlocalNestingDepth),
		rules.NewFileRule("W001", checkFallThrough),
		rules.NewFileRule("W004", checkPotentialInfiniteLoop),
		rules.NewFileRule("P002", checkDuplicatedBlocks),
		rules.NewFileRule("W018", checkMixedLineEndings),
		rules.NewFileRule("S005", checkInconsistentLineEnding),
		rules.NewFileRule("P004", checkDelayedExpansionUnused),
		rules.NewFileRule("P008", checkDelayedExpansionNotEnabled),
	}
}

// --- Line endings ------------------------------------------------------

// checkMixedLineEndings implements W018: the file's classified dominant
// style (source.splitLines) collapsed to Mixed because no single
// terminator reached the 95% threshold.
func checkMixedLineEndings(ctx rules.FileContext) []rules.Diagnostic {
	if ctx.Script.LineEndingStyle != source.LineEndingMixed {
		return nil
	}
	line := 1
	if len(ctx.Script.Lines) > 0 {
		line = ctx.Script.Lines[0].Index
	}
	return []rules.Diagnostic{rules.New(line, "W018")}
}

// checkInconsistentLineEnding implements S005: a line whose own terminator
// differs from the file's dominant style. Skipped entirely when the file
// has no single dominant style (W018 already covers that case), and for
// the final line when it has no terminator at all (source.RawLine.Ending
// is negative in that case).
func checkInconsistentLineEnding(ctx rules.FileContext) []rules.Diagnostic {
	dominant := ctx.Script.LineEndingStyle
	if dominant == source.LineEndingMixed {
		return nil
	}
	var out []rules.Diagnostic
	for _, l := range ctx.Script.Lines {
		if l.Ending < 0 {
			continue
		}
		if l.Ending != dominant {
			out = append(out, rules.New(l.Index, "S005"))
		}
	}
	return out
}

// --- Delayed expansion -------------------------------------------------

// checkDelayedExpansionNotEnabled implements P008: a !var! reference at a
// point where the innermost SETLOCAL scope (or the top level, if none is
// open) does not have delayed expansion enabled. Replays the same
// SETLOCAL/ENDLOCAL walk analysis.go's Build pass does, consulting
// AnalysisContext.DelayedExpansionActive at each !var! occurrence instead
// of only at EOF.
func checkDelayedExpansionNotEnabled(ctx rules.FileContext) []rules.Diagnostic {
	var out []rules.Diagnostic
	running := rules.NewAnalysisContext()
	for _, l := range ctx.Script.Lines {
		if l.Kind != script.KindCode {
			continue
		}
		if delayedVarRe.MatchString(l.Text) && !running.DelayedExpansionActive() {
			out = append(out, rules.New(l.Index, "P008"))
		}
		buildSetlocalTracking(running, l)
	}
	return out
}

// checkDelayedExpansionUnused implements P004: a SETLOCAL scope that
// enables delayed expansion but whose body never references a !var!
// before the scope closes (or before EOF, if never closed).
func checkDelayedExpansionUnused(ctx rules.FileContext) []rules.Diagnostic {
	var out []rules.Diagnostic
	running := rules.NewAnalysisContext()
	used := map[int]bool{}
	for _, l := range ctx.Script.Lines {
		if l.Kind != script.KindCode {
			continue
		}
		if delayedVarRe.MatchString(l.Text) {
			for _, start := range running.SetlocalStack {
				used[start] = true
			}
		}
		if endlocalRe.MatchString(l.Text) && len(running.SetlocalStack) > 0 {
			start := running.SetlocalStack[len(running.SetlocalStack)-1]
			enabled := running.DelayedExpansionEnabled[len(running.DelayedExpansionEnabled)-1]
			if enabled && !used[start] {
				out = append(out, rules.New(start, "P004"))
			}
		}
		buildSetlocalTracking(running, l)
	}
	for i, start := range running.SetlocalStack {
		if running.DelayedExpansionEnabled[i] && !used[start] {
			out = append(out, rules.New(start, "P004"))
		}
	}
	return out
}

// --- Parens ----------------------------------------------------------------

// checkUnbalancedParens implements E001: a `)` with no matching `(` before
// it (ParenBalance.Unbalanced), or a parenthesized block that never closes
// by EOF (ParenBalance.FinalDepth).
func checkUnbalancedParens(ctx rules.FileContext) []rules.Diagnostic {
	pb := lexical.NewParenBalance()
	lastCodeLine := 0
	for _, l := range ctx.Script.Lines {
		if l.Kind != script.KindCode {
			continue
		}
		pb.Feed(l.Index, l.Text)
		lastCodeLine = l.Index
	}
	if line, ok := pb.Unbalanced(); ok {
		return []rules.Diagnostic{rules.New(line, "E001")}
	}
	if pb.FinalDepth() != 0 {
		return []rules.Diagnostic{rules.New(lastCodeLine, "E001")}
	}
	return nil
}

// --- Labels --------------------------------------------------------------

func checkUndefinedLabels(ctx rules.FileContext) []rules.Diagnostic {
	var out []rules.Diagnostic
	for name, lines := range ctx.Analysis.LabelsReferenced {
		if _, ok := ctx.Analysis.LabelsDefined[name]; ok {
			continue
		}
		for _, ln := range lines {
			out = append(out, rules.New(ln, "E002").WithNote(name))
		}
	}
	return out
}

func checkDuplicateLabels(ctx rules.FileContext) []rules.Diagnostic {
	var out []rules.Diagnostic
	for _, l := range ctx.Script.Lines {
		if l.Kind != script.KindLabel {
			continue
		}
		info := ctx.Analysis.LabelsDefined[l.LabelName]
		if info != nil && info.Count > 1 && l.Index != info.FirstLine {
			out = append(out, rules.New(l.Index, "W013").WithNote(l.LabelName))
		}
	}
	return out
}

func checkDeadLabels(ctx rules.FileContext) []rules.Diagnostic {
	var out []rules.Diagnostic
	for _, l := range ctx.Script.Lines {
		if l.Kind != script.KindLabel {
			continue
		}
		if _, referenced := ctx.Analysis.LabelsReferenced[l.LabelName]; referenced {
			continue
		}
		if r, ok := ctx.Analysis.ReachabilityMap[l.Index]; ok && r != rules.Reachable {
			out = append(out, rules.New(l.Index, "S010").WithNote(l.LabelName))
		}
	}
	return out
}

// --- Reachability ----------------------------------------------------------

func checkUnreachableCode(ctx rules.FileContext) []rules.Diagnostic {
	var out []rules.Diagnostic
	for _, l := range ctx.Script.Lines {
		if l.Kind != script.KindCode {
			continue
		}
		if r, ok := ctx.Analysis.ReachabilityMap[l.Index]; ok && r != rules.Reachable {
			out = append(out, rules.New(l.Index, "E008"))
		}
	}
	return out
}

// --- Undefined variables ---------------------------------------------------

func checkUndefinedVariables(ctx rules.FileContext) []rules.Diagnostic {
	var out []rules.Diagnostic
	for name, refs := range ctx.Analysis.VariablesReferenced {
		for _, ln := range refs {
			if !ctx.Analysis.IsVariableDefined(name, ln) {
				out = append(out, rules.New(ln, "E006").WithNote(name))
			}
		}
	}
	return out
}

// --- SETLOCAL/ENDLOCAL balance ---------------------------------------------

func checkSetlocalNoSet(ctx rules.FileContext) []rules.Diagnostic {
	var out []rules.Diagnostic
	for i, l := range ctx.Script.Lines {
		if l.Kind != script.KindCode || !setlocalRe.MatchString(l.Text) {
			continue
		}
		depth := 1
		hasSet := false
		closed := false
		for _, next := range ctx.Script.Lines[i+1:] {
			if next.Kind != script.KindCode {
				continue
			}
			if setlocalRe.MatchString(next.Text) {
				depth++
			} else if endlocalRe.MatchString(next.Text) {
				depth--
				if depth == 0 {
					closed = true
					break
				}
			} else if setVarRe.MatchString(next.Text) {
				hasSet = true
			}
		}
		// A scope never closed by ENDLOCAL is P006's case, not P003's.
		if closed && !hasSet {
			out = append(out, rules.New(l.Index, "P003"))
		}
	}
	return out
}

func checkEndlocalNoSetlocal(ctx rules.FileContext) []rules.Diagnostic {
	var out []rules.Diagnostic
	depth := 0
	for _, l := range ctx.Script.Lines {
		if l.Kind != script.KindCode {
			continue
		}
		if setlocalRe.MatchString(l.Text) {
			depth++
		} else if endlocalRe.MatchString(l.Text) {
			if depth == 0 {
				out = append(out, rules.New(l.Index, "P005"))
			} else {
				depth--
			}
		}
	}
	return out
}

func checkSetlocalNoEndlocal(ctx rules.FileContext) []rules.Diagnostic {
	if len(ctx.Analysis.SetlocalStack) == 0 {
		return nil
	}
	var out []rules.Diagnostic
	for _, ln := range ctx.Analysis.SetlocalStack {
		out = append(out, rules.New(ln, "P006"))
	}
	return out
}

func checkSetlocalImmediateEndlocal(ctx rules.FileContext) []rules.Diagnostic {
	var out []rules.Diagnostic
	codeLines := codeOnlyLines(ctx.Script)
	for i, l := range codeLines {
		if !setlocalRe.MatchString(l.Text) {
			continue
		}
		if i+1 < len(codeLines) && endlocalRe.MatchString(codeLines[i+1].Text) {
			out = append(out, rules.New(l.Index, "P024"))
		}
	}
	return out
}

func checkSetlocalNestingDepth(ctx rules.FileContext) []rules.Diagnostic {
	var out []rules.Diagnostic
	depth := 0
	for _, l := range ctx.Script.Lines {
		if l.Kind != script.KindCode {
			continue
		}
		if setlocalRe.MatchString(l.Text) {
			depth++
			if depth > 3 {
				out = append(out, rules.New(l.Index, "P026"))
			}
		} else if endlocalRe.MatchString(l.Text) && depth > 0 {
			depth--
		}
	}
	return out
}

func codeOnlyLines(sc *script.Script) []script.Line {
	var out []script.Line
	for _, l := range sc.Lines {
		if l.Kind == script.KindCode {
			out = append(out, l)
		}
	}
	return out
}

// --- Fall-through / infinite loop -------------------------------------------

func checkFallThrough(ctx rules.FileContext) []rules.Diagnostic {
	code := codeOnlyLines(ctx.Script)
	if len(code) == 0 {
		return nil
	}
	if isPureSubroutineLibrary(ctx.Script) || isEchoOffAndCommentsOnly(ctx.Script) {
		return nil
	}
	last := code[len(code)-1]
	if exitRe.MatchString(last.Text) || isGotoEOF(last.Text) {
		return nil
	}
	return []rules.Diagnostic{rules.New(last.Index, "W001")}
}

func isGotoEOF(text string) bool {
	return unconditionalGotoRe.MatchString(text) && strings.Contains(strings.ToUpper(text), ":EOF")
}

func isPureSubroutineLibrary(sc *script.Script) bool {
	for _, l := range sc.Lines {
		if l.Kind == script.KindBlank || l.Kind == script.KindComment {
			continue
		}
		return l.Kind == script.KindLabel
	}
	return false
}

func isEchoOffAndCommentsOnly(sc *script.Script) bool {
	for _, l := range sc.Lines {
		switch l.Kind {
		case script.KindBlank, script.KindComment:
			continue
		case script.KindCode:
			if strings.EqualFold(strings.TrimLeft(l.Text, "@"), "echo off") {
				continue
			}
			return false
		default:
			return false
		}
	}
	return true
}

// checkPotentialInfiniteLoop implements the approximation from spec.md
// §4.6: a label followed, later in the file, by an unconditional GOTO back
// to it, with no SET of any variable and no line containing FOR or CALL in
// between. Lines are scanned in file order, not along control-flow paths.
// External-command mutation of the environment is not modeled.
func checkPotentialInfiniteLoop(ctx rules.FileContext) []rules.Diagnostic {
	var out []rules.Diagnostic
	code := ctx.Script.Lines
	for labelName, info := range ctx.Analysis.LabelsDefined {
		labelIdx := -1
		for i, l := range code {
			if l.Kind == script.KindLabel && l.LabelName == labelName && l.Index == info.FirstLine {
				labelIdx = i
				break
			}
		}
		if labelIdx < 0 {
			continue
		}
		mutated := map[string]bool{}
		for i := labelIdx + 1; i < len(code); i++ {
			l := code[i]
			if l.Kind != script.KindCode {
				continue
			}
			if m := setVarRe.FindStringSubmatch(l.Text); m != nil {
				mutated[strings.ToUpper(m[2])] = true
			}
			if strings.Contains(strings.ToUpper(l.Text), "FOR ") || strings.Contains(strings.ToUpper(l.Text), "CALL ") {
				mutated["__control__"] = true
			}
			if isGotoLabelRef(l.Text, labelName) {
				if !mutated["__control__"] && len(mutated) == 0 {
					out = append(out, rules.New(l.Index, "W004").WithNote(labelName))
				}
				break
			}
		}
	}
	return out
}

func isGotoLabelRef(text, labelName string) bool {
	if !unconditionalGotoRe.MatchString(text) {
		return false
	}
	target := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text[strings.Index(strings.ToUpper(text), "GOTO")+4:]), ":"))
	return strings.EqualFold(target, labelName)
}

// --- Code duplication --------------------------------------------------

const minDuplicateBlockLines = 3

// checkDuplicatedBlocks implements P002: two non-overlapping runs of at
// least minDuplicateBlockLines identical non-blank, non-comment lines.
func checkDuplicatedBlocks(ctx rules.FileContext) []rules.Diagnostic {
	code := codeOnlyLines(ctx.Script)
	n := len(code)
	if n < minDuplicateBlockLines*2 {
		return nil
	}

	seen := map[string]int{} // normalized block text -> starting index in code
	var out []rules.Diagnostic
	reported := map[int]bool{}

	for i := 0; i+minDuplicateBlockLines <= n; i++ {
		key := blockKey(code[i : i+minDuplicateBlockLines])
		if first, ok := seen[key]; ok {
			if !overlaps(first, i, minDuplicateBlockLines) && !reported[i] {
				out = append(out, rules.New(code[i].Index, "P002").WithNote(code[first].Text))
				reported[i] = true
			}
		} else {
			seen[key] = i
		}
	}
	return out
}

func blockKey(lines []script.Line) string {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(strings.TrimSpace(l.Text))
		b.WriteByte('\n')
	}
	return b.String()
}

func overlaps(a, b, length int) bool {
	return a < b+length && b < a+length
}
