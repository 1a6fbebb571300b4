package rules

// Diagnostic is a single finding, tied to a line and a rule (spec.md §3).
type Diagnostic struct {
	LineIndex   int
	RuleCode    string
	ContextNote string
}

// Equal reports field equality per spec.md §3 ("Diagnostic: equality by all
// fields").
func (d Diagnostic) Equal(o Diagnostic) bool {
	return d.LineIndex == o.LineIndex && d.RuleCode == o.RuleCode && d.ContextNote == o.ContextNote
}

// New builds a Diagnostic with no context note.
func New(lineIndex int, ruleCode string) Diagnostic {
	return Diagnostic{LineIndex: lineIndex, RuleCode: ruleCode}
}

// WithNote attaches a context note and returns the diagnostic by value.
func (d Diagnostic) WithNote(note string) Diagnostic {
	d.ContextNote = note
	return d
}
