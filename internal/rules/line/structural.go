package line

import (
	"regexp"
	"strings"

	"github.com/tboy1337/blinter/internal/lexical"
	"github.com/tboy1337/blinter/internal/rules"
	"github.com/tboy1337/blinter/internal/script"
)

// structuralRules returns every hand-written, code-specific LineRule named
// explicitly in spec.md §4.5.
func structuralRules() []rules.LineRule {
	return []rules.LineRule{
		rules.NewLineRule("S002", checkEchoOffNoAt),
		rules.NewLineRule("S004", checkTrailingWhitespace),
		rules.NewLineRule("S007", checkExtension),
		rules.NewLineRule("S011", checkLineLength),
		rules.NewLineRule("S028", checkRedundantParens),
		rules.NewLineRule("W005", checkUnquotedVariable),
		rules.NewLineRule("W021", checkIfComparisonQuoting),
		rules.NewLineRule("W024", checkDeprecatedCommand),
		rules.NewLineRule("E003", checkIfKeywordSpacing),
		rules.NewLineRule("E004", checkIfExistMixedComparison),
		rules.NewLineRule("E007", checkUnquotedEmptyComparison),
		rules.NewLineRule("E009", checkUnmatchedQuotes),
		rules.NewLineRule("E016", checkErrorlevelOperator),
		rules.NewLineRule("E017", checkPercentTildeModifier),
		rules.NewLineRule("E019", checkPercentTildeTarget),
		rules.NewLineRule("E020", checkForVariableForm),
		rules.NewLineRule("E021", checkSetAParens),
		rules.NewLineRule("E022", checkSetASyntax),
		rules.NewLineRule("E023", checkSetARestrictedOps),
		rules.NewLineRule("E024", checkPercentTildeConflict),
		rules.NewLineRule("E029", checkSetAComplexity),
		rules.NewLineRule("E030", checkDanglingCaret),
		rules.NewLineRule("E031", checkCaretInQuotes),
		rules.NewLineRule("E032", checkCaretBreaksQuote),
		rules.NewLineRule("E033", checkCaretAfterBlockClose),
		rules.NewLineRule("E034", checkRemovedCommand),
	}
}

// --- S-series ---------------------------------------------------------

func checkEchoOffNoAt(ctx rules.LineContext) []rules.Diagnostic {
	if regexp.MustCompile(`(?i)^ECHO\s+OFF\s*$`).MatchString(ctx.Line.Text) {
		return []rules.Diagnostic{rules.New(ctx.Line.Index, "S002")}
	}
	return nil
}

func checkTrailingWhitespace(ctx rules.LineContext) []rules.Diagnostic {
	t := ctx.Line.OriginalText
	trimmed := strings.TrimRight(t, " \t")
	if trimmed != t {
		return []rules.Diagnostic{rules.New(ctx.Line.Index, "S004")}
	}
	return nil
}

func checkExtension(ctx rules.LineContext) []rules.Diagnostic {
	p := strings.ToLower(ctx.Script.Path)
	if !strings.HasSuffix(p, ".bat") && !strings.HasSuffix(p, ".cmd") {
		return []rules.Diagnostic{rules.New(ctx.Line.Index, "S007")}
	}
	return nil
}

func checkLineLength(ctx rules.LineContext) []rules.Diagnostic {
	max := ctx.Config.MaxLineLength
	if max <= 0 {
		return nil
	}
	if len(ctx.Line.OriginalText) > max {
		return []rules.Diagnostic{rules.New(ctx.Line.Index, "S011")}
	}
	return nil
}

var redundantParenRe = regexp.MustCompile(`^\(\s*([^()&|<>]+)\s*\)\s*$`)

func checkRedundantParens(ctx rules.LineContext) []rules.Diagnostic {
	if redundantParenRe.MatchString(ctx.Line.Text) {
		return []rules.Diagnostic{rules.New(ctx.Line.Index, "S028")}
	}
	return nil
}

// --- W-series ---------------------------------------------------------

var unquotedVarRe = regexp.MustCompile(`(?:[^"]|^)%([A-Za-z_][A-Za-z0-9_]*)%(?:[^"]|$)`)

func checkUnquotedVariable(ctx rules.LineContext) []rules.Diagnostic {
	text := ctx.Line.Text
	low := strings.ToLower(text)
	if !strings.HasPrefix(low, "echo") && !strings.Contains(low, "if ") {
		// Only flag in commands where an embedded space commonly breaks
		// parsing: ECHO and IF conditions are the common cases named in
		// spec.md's examples.
		return nil
	}
	if unquotedVarRe.MatchString(text) && !strings.Contains(text, `"%`) {
		return []rules.Diagnostic{rules.New(ctx.Line.Index, "W005")}
	}
	return nil
}

var ifCompareRe = regexp.MustCompile(`(?i)^\s*IF\s+(NOT\s+)?(%[A-Za-z0-9_]+%|![A-Za-z0-9_]+!)\s*==`)

func checkIfComparisonQuoting(ctx rules.LineContext) []rules.Diagnostic {
	if ifCompareRe.MatchString(ctx.Line.Text) {
		return []rules.Diagnostic{rules.New(ctx.Line.Index, "W021")}
	}
	return nil
}

var deprecatedCommands = []string{
	"WMIC", "CACLS", "WINRM", "BITSADMIN", "NBTSTAT", "DPATH", "KEYS", "NET SEND", "AT",
}

func checkDeprecatedCommand(ctx rules.LineContext) []rules.Diagnostic {
	return matchCommandList(ctx, deprecatedCommands, "W024")
}

var removedCommands = []string{
	"CASPOL", "DISKCOMP", "APPEND", "BROWSTAT", "INUSE", "NET PRINT", "DISKCOPY", "STREAMS",
}

func checkRemovedCommand(ctx rules.LineContext) []rules.Diagnostic {
	return matchCommandList(ctx, removedCommands, "E034")
}

func matchCommandList(ctx rules.LineContext, list []string, code string) []rules.Diagnostic {
	up := strings.ToUpper(strings.TrimLeft(ctx.Line.Text, "@"))
	for _, cmd := range list {
		if up == cmd || strings.HasPrefix(up, cmd+" ") || strings.HasPrefix(up, cmd+"\t") {
			return []rules.Diagnostic{rules.New(ctx.Line.Index, code).WithNote(cmd)}
		}
	}
	return nil
}

// --- E-series: IF statement ---------------------------------------------

var ifNoSpaceRe = regexp.MustCompile(`(?i)^\s*IF[^ \t]`)

func checkIfKeywordSpacing(ctx rules.LineContext) []rules.Diagnostic {
	text := ctx.Line.Text
	if len(text) < 2 {
		return nil
	}
	if ifNoSpaceRe.MatchString(text) && !strings.EqualFold(firstWord(text), "if") {
		return []rules.Diagnostic{rules.New(ctx.Line.Index, "E003")}
	}
	return nil
}

var ifExistMixedRe = regexp.MustCompile(`(?i)^\s*IF\s+(NOT\s+)?EXIST\s+\S+.*==`)

func checkIfExistMixedComparison(ctx rules.LineContext) []rules.Diagnostic {
	if ifExistMixedRe.MatchString(ctx.Line.Text) {
		return []rules.Diagnostic{rules.New(ctx.Line.Index, "E004")}
	}
	return nil
}

var unquotedEmptyCompareRe = regexp.MustCompile(`(?i)^\s*IF\s+(NOT\s+)?%[A-Za-z0-9_]+%\s*==\s*""`)

func checkUnquotedEmptyComparison(ctx rules.LineContext) []rules.Diagnostic {
	if unquotedEmptyCompareRe.MatchString(ctx.Line.Text) {
		return []rules.Diagnostic{rules.New(ctx.Line.Index, "E007")}
	}
	return nil
}

func checkUnmatchedQuotes(ctx rules.LineContext) []rules.Diagnostic {
	if lexical.UnmatchedQuotes(ctx.Line.Text) {
		return []rules.Diagnostic{rules.New(ctx.Line.Index, "E009")}
	}
	return nil
}

var errorlevelNoOpRe = regexp.MustCompile(`(?i)^\s*IF\s+(NOT\s+)?%?ERRORLEVEL%?\s+(\d+)\b`)
var errorlevelWithOpRe = regexp.MustCompile(`(?i)^\s*IF\s+(NOT\s+)?%?ERRORLEVEL%?\s+(EQU|NEQ|LSS|LEQ|GTR|GEQ)\b`)

func checkErrorlevelOperator(ctx rules.LineContext) []rules.Diagnostic {
	text := ctx.Line.Text
	if errorlevelNoOpRe.MatchString(text) && !errorlevelWithOpRe.MatchString(text) {
		return []rules.Diagnostic{rules.New(ctx.Line.Index, "E016")}
	}
	return nil
}

// --- E-series: percent-tilde / FOR / SET /A, delegating to lexical -------

func checkPercentTildeModifier(ctx rules.LineContext) []rules.Diagnostic {
	return percentTildeDiags(ctx, "E017")
}

func checkPercentTildeTarget(ctx rules.LineContext) []rules.Diagnostic {
	return percentTildeDiags(ctx, "E019")
}

func checkPercentTildeConflict(ctx rules.LineContext) []rules.Diagnostic {
	return percentTildeDiags(ctx, "E024")
}

func percentTildeDiags(ctx rules.LineContext, wantCode string) []rules.Diagnostic {
	var out []rules.Diagnostic
	for _, issue := range lexical.ParsePercentTilde(ctx.Line.Text) {
		if issue.Code == wantCode {
			out = append(out, rules.New(ctx.Line.Index, wantCode))
		}
	}
	return out
}

func checkForVariableForm(ctx rules.LineContext) []rules.Diagnostic {
	var out []rules.Diagnostic
	for range lexical.CheckForVariableForm(ctx.Line.Text, true) {
		out = append(out, rules.New(ctx.Line.Index, "E020"))
	}
	return out
}

func checkSetAParens(ctx rules.LineContext) []rules.Diagnostic { return setADiag(ctx, "E021") }
func checkSetASyntax(ctx rules.LineContext) []rules.Diagnostic { return setADiag(ctx, "E022") }
func checkSetARestrictedOps(ctx rules.LineContext) []rules.Diagnostic {
	return setADiag(ctx, "E023")
}
func checkSetAComplexity(ctx rules.LineContext) []rules.Diagnostic { return setADiag(ctx, "E029") }

func setADiag(ctx rules.LineContext, wantCode string) []rules.Diagnostic {
	res, ok := lexical.ValidateSetA(ctx.Line.Text)
	if !ok || res.Code != wantCode {
		return nil
	}
	return []rules.Diagnostic{rules.New(ctx.Line.Index, wantCode)}
}

// --- E-series: caret escapes --------------------------------------------

func checkDanglingCaret(ctx rules.LineContext) []rules.Diagnostic {
	text := strings.TrimRight(ctx.Line.OriginalText, " \t")
	if !strings.HasSuffix(text, "^") || strings.HasSuffix(text, "^^") {
		return nil
	}
	next, ok := ctx.Script.Line(ctx.Line.Index + 1)
	if !ok || next.Kind == script.KindBlank || next.Kind == script.KindComment {
		return []rules.Diagnostic{rules.New(ctx.Line.Index, "E030")}
	}
	return nil
}

func checkCaretInQuotes(ctx rules.LineContext) []rules.Diagnostic {
	text := ctx.Line.Text
	inQuotes := false
	for i, r := range text {
		if r == '"' {
			inQuotes = !inQuotes
		}
		if r == '^' && inQuotes && i+1 < len(text) {
			return []rules.Diagnostic{rules.New(ctx.Line.Index, "E031")}
		}
	}
	return nil
}

// checkCaretBreaksQuote implements E032: a caret continuation that leaves an
// odd number of double quotes on the line, so the continued command
// inherits an open quote the author likely didn't intend.
func checkCaretBreaksQuote(ctx rules.LineContext) []rules.Diagnostic {
	text := strings.TrimRight(ctx.Line.OriginalText, " \t")
	if !strings.HasSuffix(text, "^") || strings.HasSuffix(text, "^^") {
		return nil
	}
	body := text[:len(text)-1]
	if strings.Count(body, `"`)%2 == 1 {
		return []rules.Diagnostic{rules.New(ctx.Line.Index, "E032")}
	}
	return nil
}

// checkCaretAfterBlockClose implements E033: a caret continuation directly
// after a block's closing paren. cmd.exe has already ended the parenthesized
// block by the time the continuation takes effect, so the next line joins
// the command outside the block rather than extending it.
func checkCaretAfterBlockClose(ctx rules.LineContext) []rules.Diagnostic {
	text := strings.TrimRight(ctx.Line.OriginalText, " \t")
	if !strings.HasSuffix(text, "^") || strings.HasSuffix(text, "^^") {
		return nil
	}
	body := strings.TrimRight(text[:len(text)-1], " \t")
	if strings.HasSuffix(body, ")") {
		return []rules.Diagnostic{rules.New(ctx.Line.Index, "E033")}
	}
	return nil
}

// --- S001: whole-script presence check, invoked directly by the engine ---

func checkEchoOffPresence(sc *script.Script) (rules.Diagnostic, bool) {
	checked := 0
	for _, l := range sc.Lines {
		if l.Kind == script.KindBlank || l.Kind == script.KindComment {
			continue
		}
		checked++
		if regexp.MustCompile(`(?i)^@ECHO\s+OFF\s*$`).MatchString(l.Text) {
			return rules.Diagnostic{}, false
		}
		if checked >= 3 {
			break
		}
	}
	if len(sc.Lines) == 0 {
		return rules.Diagnostic{}, false
	}
	return rules.New(1, "S001"), true
}
