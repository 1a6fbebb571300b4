package testutil

import (
	"testing"

	"github.com/tboy1337/blinter/internal/rules"
	"github.com/tboy1337/blinter/internal/script"
)

// todoLineRule flags any code line containing the word TODO, as a minimal
// LineRule for exercising the table-driven helpers.
var todoLineRule = rules.NewLineRule("TEST001", func(ctx rules.LineContext) []rules.Diagnostic {
	if ctx.Line.Kind == script.KindCode && containsTODO(ctx.Line.Text) {
		return []rules.Diagnostic{rules.New(ctx.Line.Index, "TEST001").WithNote("found TODO")}
	}
	return nil
})

// manyLabelsFileRule flags the file once if it defines more than one label,
// as a minimal FileRule.
var manyLabelsFileRule = rules.NewFileRule("TEST002", func(ctx rules.FileContext) []rules.Diagnostic {
	if len(ctx.Analysis.LabelsDefined) > 1 {
		return []rules.Diagnostic{rules.New(1, "TEST002")}
	}
	return nil
})

func containsTODO(s string) bool {
	for i := 0; i+4 <= len(s); i++ {
		if s[i:i+4] == "TODO" {
			return true
		}
	}
	return false
}

func TestBuildScript(t *testing.T) {
	sc := BuildScript(t, "build.bat", "@echo off\r\necho hi\r\n")
	if sc == nil {
		t.Fatal("BuildScript returned nil")
	}
	if sc.Path != "build.bat" {
		t.Errorf("Path = %q, want %q", sc.Path, "build.bat")
	}
	if len(sc.Lines) != 2 {
		t.Errorf("len(Lines) = %d, want 2", len(sc.Lines))
	}
}

func TestBuildAnalysis(t *testing.T) {
	sc := BuildScript(t, DefaultTestPath, ":start\r\ngoto start\r\n")
	analysis := BuildAnalysis(sc)
	if analysis == nil {
		t.Fatal("BuildAnalysis returned nil")
	}
	if _, ok := analysis.LabelsDefined["start"]; !ok {
		t.Error("expected label \"start\" to be recorded")
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	if opts.MaxLineLength != 150 {
		t.Errorf("MaxLineLength = %d, want 150", opts.MaxLineLength)
	}
}

func TestRunLineRuleTests(t *testing.T) {
	RunLineRuleTests(t, todoLineRule, []RuleTestCase{
		{
			Name:      "no TODO",
			Content:   "@echo off\r\necho hi\r\n",
			WantCount: 0,
		},
		{
			Name:      "one TODO",
			Content:   "@echo off\r\nrem TODO fix this\r\necho TODO\r\n",
			WantCount: 1,
			WantLines: []int{3},
			WantNotes: []string{"found TODO"},
		},
	})
}

func TestRunFileRuleTests(t *testing.T) {
	RunFileRuleTests(t, manyLabelsFileRule, []RuleTestCase{
		{
			Name:      "single label",
			Content:   ":start\r\necho hi\r\n",
			WantCount: 0,
		},
		{
			Name:      "two labels",
			Content:   ":start\r\ngoto end\r\n:end\r\necho hi\r\n",
			WantCount: 1,
			WantLines: []int{1},
		},
	})
}

func TestAssertNoDiagnostics(t *testing.T) {
	AssertNoDiagnostics(t, nil)
	AssertNoDiagnostics(t, []rules.Diagnostic{})
}

func TestAssertDiagnosticCount(t *testing.T) {
	d := []rules.Diagnostic{rules.New(1, "TEST001")}
	AssertDiagnosticCount(t, d, 1)
	AssertDiagnosticCount(t, nil, 0)
}

func TestAssertDiagnosticAt(t *testing.T) {
	d := []rules.Diagnostic{rules.New(3, "TEST001")}
	AssertDiagnosticAt(t, d, 3, "TEST001")
}

func TestCountHelpers(t *testing.T) {
	content := "@echo off\r\n\r\nrem a comment\r\n:: also a comment\r\necho hi"
	if got := CountLines(content); got != 5 {
		t.Errorf("CountLines = %d, want 5", got)
	}
	if got := CountBlankLines(content); got != 1 {
		t.Errorf("CountBlankLines = %d, want 1", got)
	}
	if got := CountCommentLines(content); got != 2 {
		t.Errorf("CountCommentLines = %d, want 2", got)
	}
}
