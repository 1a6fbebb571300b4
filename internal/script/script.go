// Package script holds the linter's per-file data model (spec.md §3): the
// classified Line sequence and the mutable AnalysisContext engines thread
// through a single analysis run.
package script

import "github.com/tboy1337/blinter/internal/source"

// Kind classifies a single line per spec.md §4.2.
type Kind int

const (
	KindBlank Kind = iota
	KindComment
	KindLabel
	KindCode
)

// Suppression records a LINT:IGNORE / LINT:IGNORE-LINE directive attached to
// a line, per spec.md §4.2 and §6.
type Suppression struct {
	// Codes is the set of rule codes suppressed. A nil/empty set with
	// All true means every rule is suppressed on the affected line(s).
	Codes map[string]bool
	All   bool
}

// Suppresses reports whether code is covered by this suppression.
func (s Suppression) Suppresses(code string) bool {
	if s.All {
		return true
	}
	return s.Codes[code]
}

// Line is one decoded, classified line of a Script.
type Line struct {
	Index          int // 1-based, dense within a Script.
	Text           string
	OriginalText   string // Text before trimming, for S004/S011.
	Ending         source.LineEnding
	Kind           Kind
	LabelName      string // set when Kind == KindLabel
	Suppressions   *Suppression
	InheritedNext  *Suppression // a "next-line" directive this line inherits from the previous line
}

// Script is the immutable, fully classified view of one file, ready for the
// rule engines. It wraps source.Script with classification added by C2.
type Script struct {
	Path            string
	Encoding        source.Encoding
	LineEndingStyle source.LineEnding
	Lines           []Line
}

// Line returns the Line at the given 1-based index, or the zero Line if out
// of range.
func (s *Script) Line(index int) (Line, bool) {
	if index < 1 || index > len(s.Lines) {
		return Line{}, false
	}
	return s.Lines[index-1], true
}

// CodeLines returns the indexes of all KindCode lines in order.
func (s *Script) CodeLines() []int {
	out := make([]int, 0, len(s.Lines))
	for _, l := range s.Lines {
		if l.Kind == KindCode {
			out = append(out, l.Index)
		}
	}
	return out
}
