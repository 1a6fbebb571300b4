package line

import (
	"strings"

	"github.com/tboy1337/blinter/internal/rules"
	"github.com/tboy1337/blinter/internal/script"
)

// firstWord returns the first whitespace-delimited token of a code line,
// with any leading @ removed; check treats it as the command keyword and
// compares it case-insensitively.
func firstWord(text string) string {
	t := strings.TrimLeft(text, "@")
	i := strings.IndexAny(t, " \t")
	if i < 0 {
		return t
	}
	return t[:i]
}

// casingState is S003's process-wide accumulator: the first-seen casing of
// each command keyword, checked against every later occurrence.
type casingState struct {
	seen map[string]string // lowercased keyword -> first-seen spelling
}

func newCasingState() *casingState {
	return &casingState{seen: map[string]string{}}
}

func (c *casingState) check(l script.Line) (rules.Diagnostic, bool) {
	word := firstWord(l.Text)
	if word == "" || !isCommandKeyword(word) {
		return rules.Diagnostic{}, false
	}
	key := strings.ToLower(word)
	if first, ok := c.seen[key]; ok {
		if first != word {
			return rules.New(l.Index, "S003").WithNote("first seen as \"" + first + "\""), true
		}
		return rules.Diagnostic{}, false
	}
	c.seen[key] = word
	return rules.Diagnostic{}, false
}

var commandKeywords = map[string]bool{
	"echo": true, "set": true, "if": true, "for": true, "goto": true,
	"call": true, "exit": true, "setlocal": true, "endlocal": true,
	"rem": true, "cd": true, "copy": true, "del": true, "cls": true,
	"pause": true, "shift": true, "start": true, "title": true,
}

func isCommandKeyword(word string) bool {
	return commandKeywords[strings.ToLower(word)]
}
