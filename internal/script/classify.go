package script

import (
	"regexp"
	"strings"

	"github.com/tboy1337/blinter/internal/source"
)

// directiveRe matches "LINT:IGNORE" or "LINT:IGNORE-LINE" with an optional
// comma-separated code list, per spec.md §4.2/§6.
var directiveRe = regexp.MustCompile(`(?i)LINT:IGNORE(-LINE)?\s*(?:\(?\s*([A-Z]+[0-9]+(?:\s*,\s*[A-Z]+[0-9]+)*)\s*\)?)?`)

// Classify runs C2 over a loaded source.Script: it labels each line's Kind,
// extracts label names, and attaches suppression directives. It is a pure
// function of its input.
func Classify(src *source.Script) *Script {
	out := &Script{
		Path:            src.Path,
		Encoding:        src.Encoding,
		LineEndingStyle: src.LineEndingStyle,
		Lines:           make([]Line, len(src.Lines)),
	}

	var pendingNextLine *Suppression

	for i, raw := range src.Lines {
		trimmed := strings.TrimLeft(raw.Text, " \t")
		line := Line{
			Index:        raw.Index,
			Text:         trimmed,
			OriginalText: raw.Text,
			Ending:       raw.Ending,
		}

		switch {
		case strings.TrimSpace(trimmed) == "":
			line.Kind = KindBlank
		case strings.HasPrefix(trimmed, "::"):
			line.Kind = KindComment
		case isREM(trimmed):
			line.Kind = KindComment
		case isLabel(trimmed):
			line.Kind = KindLabel
			line.LabelName = labelName(trimmed)
		default:
			line.Kind = KindCode
		}

		if line.Kind == KindComment {
			if supp, sameLine, ok := parseDirective(trimmed); ok {
				if sameLine {
					line.Suppressions = supp
				} else {
					pendingNextLine = supp
				}
			}
		} else if line.Kind != KindBlank && pendingNextLine != nil {
			line.InheritedNext = pendingNextLine
			pendingNextLine = nil
		}

		out.Lines[i] = line
	}

	return out
}

// isREM reports whether trimmed's first token is REM (case-insensitive),
// followed by whitespace, EOL, or a separator.
func isREM(trimmed string) bool {
	if len(trimmed) < 3 {
		return false
	}
	if !strings.EqualFold(trimmed[:3], "rem") {
		return false
	}
	if len(trimmed) == 3 {
		return true
	}
	switch trimmed[3] {
	case ' ', '\t', '.', '/', ';', ':':
		return true
	default:
		return false
	}
}

// isLabel reports whether trimmed is a `:name` label definition. A leading
// `::` is always a comment, handled before isLabel is consulted.
func isLabel(trimmed string) bool {
	if !strings.HasPrefix(trimmed, ":") {
		return false
	}
	rest := strings.TrimSpace(trimmed[1:])
	return rest != ""
}

func labelName(trimmed string) string {
	rest := strings.TrimSpace(trimmed[1:])
	// A label name runs up to the first whitespace or separator.
	for i, r := range rest {
		if r == ' ' || r == '\t' || r == '&' || r == '<' || r == '>' || r == '|' {
			return rest[:i]
		}
	}
	return rest
}

// parseDirective parses a LINT:IGNORE[-LINE] comment. The second return
// value is true when the directive is line-scoped (IGNORE-LINE), false when
// it applies to the next non-blank line.
func parseDirective(commentLine string) (*Suppression, bool, bool) {
	m := directiveRe.FindStringSubmatch(commentLine)
	if m == nil {
		return nil, false, false
	}
	sameLine := strings.EqualFold(m[1], "-line")

	supp := &Suppression{Codes: map[string]bool{}}
	codesStr := strings.TrimSpace(m[2])
	if codesStr == "" {
		supp.All = true
		return supp, sameLine, true
	}
	for _, c := range strings.Split(codesStr, ",") {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c != "" {
			supp.Codes[c] = true
		}
	}
	return supp, sameLine, true
}

// EffectiveSuppression returns the suppression in effect for a line,
// combining an inline same-line directive with one inherited from a
// preceding "next-line" directive. Nil means no suppression applies.
func (l Line) EffectiveSuppression() *Suppression {
	if l.Suppressions != nil {
		return l.Suppressions
	}
	return l.InheritedNext
}
