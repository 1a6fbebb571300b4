package rules

import "github.com/tboy1337/blinter/internal/script"

// LineContext is the read-only view a per-line rule (C5) evaluates against.
// It carries the current line plus enough file-level state (accumulated so
// far, in index order) for rules like S003's casing accumulator.
type LineContext struct {
	Script   *script.Script
	Line     script.Line
	Config   Options
	Analysis *AnalysisContext
}

// FileContext is the read-only view a whole-file rule (C6) evaluates
// against: the full script plus the AnalysisContext built by a prior
// bookkeeping pass.
type FileContext struct {
	Script   *script.Script
	Config   Options
	Analysis *AnalysisContext
}

// Options is the subset of configuration the engines consume, per spec §4.8.
// It crosses from internal/config into the core as a plain value; the core
// never parses a config file itself.
type Options struct {
	MaxLineLength int
	EnabledRules  map[string]bool // nil means "all rules enabled"
	DisabledRules map[string]bool
	MinSeverity   Severity
	FollowCalls   bool
}

// Enabled reports whether code should be evaluated under these options,
// independent of suppression directives (those are applied later, at the
// C8 gate, against the line they annotate).
func (o Options) Enabled(code string) bool {
	if o.DisabledRules[code] {
		return false
	}
	if o.EnabledRules != nil && !o.EnabledRules[code] {
		return false
	}
	return true
}

// LabelInfo records where a label was first defined and whether it has been
// seen more than once.
type LabelInfo struct {
	FirstLine int
	Count     int
}

// VariableInfo records the earliest line a variable was considered defined,
// and whether that definition came from this file or was merged in by the
// call-follower (C7).
type VariableInfo struct {
	FirstLine  int
	FromCaller bool
}

// Reachability classifies a code line's reachability from the script's
// entry point, per spec §3/§4.6.
type Reachability int

const (
	Reachable Reachability = iota
	UnreachableAfterExit
	UnreachableAfterGoto
)

// AnalysisContext is the mutable, per-run bookkeeping state threaded through
// the per-line and whole-file engines (spec §3). It is created fresh for
// every Script and discarded with it.
type AnalysisContext struct {
	LabelsDefined    map[string]*LabelInfo
	LabelsReferenced map[string][]int // label name -> referencing line indices

	VariablesDefined    map[string]*VariableInfo
	VariablesReferenced map[string][]int

	SetlocalStack           []int  // line indices of open SETLOCAL scopes
	DelayedExpansionEnabled []bool // parallel stack to SetlocalStack

	ReachabilityMap map[int]Reachability

	CallTargets map[string]bool
}

// NewAnalysisContext returns an empty, ready-to-use context.
func NewAnalysisContext() *AnalysisContext {
	return &AnalysisContext{
		LabelsDefined:       make(map[string]*LabelInfo),
		LabelsReferenced:    make(map[string][]int),
		VariablesDefined:    make(map[string]*VariableInfo),
		VariablesReferenced: make(map[string][]int),
		ReachabilityMap:     make(map[int]Reachability),
		CallTargets:         make(map[string]bool),
	}
}

// SetlocalDepth is the number of currently open SETLOCAL scopes. Callers
// pop SetlocalStack on ENDLOCAL and must clamp at zero themselves (an
// ENDLOCAL with nothing open is the P005 condition, not a negative depth).
func (a *AnalysisContext) SetlocalDepth() int {
	return len(a.SetlocalStack)
}

// DelayedExpansionActive reports whether delayed expansion is enabled in
// the innermost open SETLOCAL scope (or process-wide, if no SETLOCAL is
// open and delayed expansion was never scoped).
func (a *AnalysisContext) DelayedExpansionActive() bool {
	if len(a.DelayedExpansionEnabled) == 0 {
		return false
	}
	return a.DelayedExpansionEnabled[len(a.DelayedExpansionEnabled)-1]
}

// IsVariableDefined reports whether name is considered defined at or before
// line, per spec §3: a label/variable defined on line N applies to all
// references regardless of position relative to the reference, except that
// a variable is defined only at or after its earliest defining line unless
// supplied by the call-follower.
func (a *AnalysisContext) IsVariableDefined(name string, atLine int) bool {
	info, ok := a.VariablesDefined[name]
	if !ok {
		return false
	}
	if info.FromCaller {
		return true
	}
	return info.FirstLine <= atLine
}

// LineRule evaluates rules whose decision is local to one line (C5).
type LineRule interface {
	Code() string
	EvaluateLine(ctx LineContext) []Diagnostic
}

// FileRule evaluates rules that need file-wide context (C6).
type FileRule interface {
	Code() string
	EvaluateFile(ctx FileContext) []Diagnostic
}

// lineRuleFunc adapts a plain function to the LineRule interface, mirroring
// http.HandlerFunc: most rules are a pure function of LineContext and don't
// need a dedicated named type.
type lineRuleFunc struct {
	code string
	fn   func(LineContext) []Diagnostic
}

func (f lineRuleFunc) Code() string                          { return f.code }
func (f lineRuleFunc) EvaluateLine(ctx LineContext) []Diagnostic { return f.fn(ctx) }

// NewLineRule builds a LineRule from a code and an evaluation function.
func NewLineRule(code string, fn func(LineContext) []Diagnostic) LineRule {
	return lineRuleFunc{code: code, fn: fn}
}

// fileRuleFunc is FileRule's analogue of lineRuleFunc.
type fileRuleFunc struct {
	code string
	fn   func(FileContext) []Diagnostic
}

func (f fileRuleFunc) Code() string                          { return f.code }
func (f fileRuleFunc) EvaluateFile(ctx FileContext) []Diagnostic { return f.fn(ctx) }

// NewFileRule builds a FileRule from a code and an evaluation function.
func NewFileRule(code string, fn func(FileContext) []Diagnostic) FileRule {
	return fileRuleFunc{code: code, fn: fn}
}
