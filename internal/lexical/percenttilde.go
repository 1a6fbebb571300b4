package lexical

import "regexp"

// percentTildeRe captures `%~[modifiers]<target>` references, where target
// is a digit (%0-%9) or a caret-form FOR variable letter (as in %~fI inside
// a FOR /F loop body using %%I).
var percentTildeRe = regexp.MustCompile(`%~([a-zA-Z$:]*)(\d|&?[a-zA-Z])`)

// validModifiers is the recognized single-letter modifier set from spec.md §4.3.
var validModifiers = map[byte]bool{
	'f': true, 'd': true, 'p': true, 'n': true,
	'x': true, 's': true, 'a': true, 't': true, 'z': true,
}

// PercentTildeIssue describes a single percent-tilde decision, tagged with
// the rule code it maps to.
type PercentTildeIssue struct {
	Column int
	Code   string // E017, E019, or E024
}

// ParsePercentTilde scans a code line for %~ references and reports issues
// per spec.md §4.3:
//   - E019: reported for a target that is neither a digit nor a FOR
//     variable. percentTildeRe only accepts a digit or a letter as the
//     target, and every non-digit target is taken to be a FOR variable
//     without checking for an enclosing FOR, so no match reaches E019.
//   - E017: an unrecognized modifier letter
//   - E024: modifier combination `a`+`z`, or `$PATH:` prefix with a
//     non-digit target
func ParsePercentTilde(line string) []PercentTildeIssue {
	var issues []PercentTildeIssue

	for _, loc := range percentTildeRe.FindAllStringSubmatchIndex(line, -1) {
		modStart, modEnd := loc[2], loc[3]
		targetStart, targetEnd := loc[4], loc[5]
		mods := line[modStart:modEnd]
		target := line[targetStart:targetEnd]
		col := loc[0]

		isDigit := len(target) == 1 && target[0] >= '0' && target[0] <= '9'
		isForVar := len(target) >= 1 && !isDigit

		if !isDigit && !isForVar {
			issues = append(issues, PercentTildeIssue{Column: col, Code: "E019"})
			continue
		}

		hasA, hasZ, hasPath := false, false, false
		i := 0
		for i < len(mods) {
			if mods[i] == '$' {
				// $PATH: prefix
				hasPath = true
				for i < len(mods) && mods[i] != ':' {
					i++
				}
				i++ // skip ':'
				continue
			}
			m := mods[i]
			if !validModifiers[m] {
				issues = append(issues, PercentTildeIssue{Column: col, Code: "E017"})
			} else {
				if m == 'a' {
					hasA = true
				}
				if m == 'z' {
					hasZ = true
				}
			}
			i++
		}

		// At this point target is either a digit or a FOR variable (the
		// non-digit/non-FOR-variable case already continued above via E019),
		// so hasPath && !isDigit means $PATH: was applied to a FOR variable,
		// which only resolves against %0-%9.
		if (hasA && hasZ) || (hasPath && !isDigit) {
			issues = append(issues, PercentTildeIssue{Column: col, Code: "E024"})
		}
	}

	return issues
}

// forVarSingleRe matches the span of a FOR statement from the FOR keyword up
// to the first DO keyword.
var forVarSingleRe = regexp.MustCompile(`(?i)\bfor\b[^\n]*?\bdo\b`)
var forHeaderRe = regexp.MustCompile(`(?i)^\s*for\b`)
var forVarDeclRe = regexp.MustCompile(`%(%?)([a-zA-Z])\b`)

// CheckForVariableForm validates that a FOR statement in a batch-file
// context uses the doubled %%<letter> form, per spec.md §4.3. isBatchContext
// is true for .bat/.cmd files (always, in this linter); the single-percent
// form is only valid when typed interactively, which the linter never sees,
// so a bare %<letter> on a FOR header/body is always flagged E020.
func CheckForVariableForm(line string, isBatchContext bool) []int {
	if !forHeaderRe.MatchString(line) {
		return nil
	}
	var cols []int
	for _, m := range forVarDeclRe.FindAllStringSubmatchIndex(line, -1) {
		doubled := m[2] != m[3] // group 1 (the optional extra %) matched
		if isBatchContext && !doubled {
			cols = append(cols, m[0])
		}
	}
	return cols
}
