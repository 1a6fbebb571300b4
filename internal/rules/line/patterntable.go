package line

import (
	"regexp"

	"github.com/tboy1337/blinter/internal/rules"
)

// patternEntry is one row of the pattern-table: a rule code and a
// precompiled regexp evaluated against a code line's text. This is the
// generic engine spec.md describes for the SEC/P codes it names only as
// "pattern-matched on the line in context" rather than specifying a bespoke
// decision procedure for each one.
type patternEntry struct {
	code string
	re   *regexp.Regexp
}

// patternTable is built once at package init, per spec.md §9's guidance to
// precompile regexes rather than build them per line.
var patternTable = []patternEntry{
	{"SEC001", regexp.MustCompile(`(?i)\b(password|passwd|pwd|secret|api[_-]?key|token)\s*=\s*[^\s%!]+`)},
	{"SEC002", regexp.MustCompile(`(?i)\bC:\\(Windows\\)?Temp\\[^\s%]+`)},
	{"SEC003", regexp.MustCompile(`(?i)\bftp\s+-s:`)},
	{"SEC004", regexp.MustCompile(`(?i)\b(sc\s+config\s+wuauserv\s+start=\s*disabled|netsh\s+advfirewall\s+set\s+\S+\s+state\s+off|Set-MpPreference\s+-DisableRealtimeMonitoring)`)},
	{"SEC005", regexp.MustCompile(`(?i)\b(curl|powershell\s+(-c|-command)|bitsadmin\s+/transfer).*&&.*\.(exe|bat|cmd|ps1)`)},
	{"SEC006", regexp.MustCompile(`(?i)\b(icacls|cacls)\s+\S+.*\b(everyone|users)\b.*\b(:f|/grant)\b`)},
	{"SEC007", regexp.MustCompile(`(?i)%[0-9~]+%.*&.*\S`)},
	{"SEC011", regexp.MustCompile(`(?i)\b(--ssl-?v?3|--tlsv1\.0|/SECPROTOCOL:SSL)\b`)},
	{"SEC012", regexp.MustCompile(`(?i)\s-p(assword)?[= ]\S+`)},
	{"SEC013", regexp.MustCompile(`(?i)\bnet\s+share\s+\S+=.*\bEVERYONE\b.*\bFULL\b`)},
	{"SEC014", regexp.MustCompile(`(?i)\bSet-ExecutionPolicy\s+(Unrestricted|Bypass)\b`)},
	{"SEC015", regexp.MustCompile(`(?i)\brunas\b.*\bsavecred\b`)},
	{"SEC016", regexp.MustCompile(`(?i)\breg\s+add\s+.*\\Run\\?\b`)},
	{"SEC017", regexp.MustCompile(`(?i)\bschtasks\s+/create\b.*\b(/ru\s+SYSTEM|/rp\s+\S+)\b`)},
	{"SEC018", regexp.MustCompile(`(?i)\bsc\s+(config|stop)\s+wuauserv\b`)},
	{"SEC019", regexp.MustCompile(`(?i)%TEMP%\\[^\s]+\.(exe|bat|cmd|vbs|ps1)\b`)},
	{"SEC020", regexp.MustCompile(`(?i)\bnc(\.exe)?\s+-l(p)?\s+\d+`)},
	{"SEC021", regexp.MustCompile(`(?i)\bwevtutil\s+(cl|sl)\b`)},
	{"SEC022", regexp.MustCompile(`(?i)\b(curl|bitsadmin|powershell).*https?://.*&&.*\.(exe|bat|cmd|ps1)`)},
	{"SEC023", regexp.MustCompile(`(?i)\b(password|token|secret|key)\S*\s*=\s*%RANDOM%`)},
	{"SEC024", regexp.MustCompile(`(?i)>>?\s*\S+\.log\b.*\b(password|secret|token)\b`)},

	{"P001", regexp.MustCompile(`(?i)^\s*(ECHO|SET)\b.*%[A-Za-z0-9_]+%.*%[A-Za-z0-9_]+%.*%[A-Za-z0-9_]+%`)},
	{"P007", regexp.MustCompile(`(?i)^\s*FOR\s+/L\b.*\bDO\b.*\b(hostname|whoami|ver|date\s+/t)\b`)},
	{"P009", regexp.MustCompile(`(?i)^\s*CALL\s+%~dp0`)},
	{"P010", regexp.MustCompile(`(?i)^\s*IF\s+(NOT\s+)?EXIST\s+\S+\s+GOTO\b`)},
	{"P011", regexp.MustCompile(`(?i)^\s*FOR\s*/F\b.*\bIN\s*\('[^']*'\)`)},
	{"P025", regexp.MustCompile(`(?i)^\s*CD\s+/D\s+"?[A-Za-z]:\\.*"?\s*$`)},
}

// patternTableRules adapts patternTable into LineRule instances so it
// participates in the same enable/disable/suppression plumbing as the
// hand-written structural rules.
func patternTableRules() []rules.LineRule {
	var out []rules.LineRule
	for _, entry := range patternTable {
		entry := entry
		out = append(out, rules.NewLineRule(entry.code, func(ctx rules.LineContext) []rules.Diagnostic {
			if entry.re.MatchString(ctx.Line.Text) {
				return []rules.Diagnostic{rules.New(ctx.Line.Index, entry.code)}
			}
			return nil
		}))
	}
	return out
}
