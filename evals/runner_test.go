package evals

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/olgasafonova/wikiedits-mcp-server/tools"
)

// MockToolSelector implements ToolSelector for testing
type MockToolSelector struct {
	// Responses maps input strings to tool selections
	Responses map[string]struct {
		Tool string
		Args map[string]interface{}
	}
	// DefaultTool is returned if input isn't in Responses
	DefaultTool string
}

func (m *MockToolSelector) SelectTool(input string) (string, map[string]interface{}, error) {
	if resp, ok := m.Responses[input]; ok {
		return resp.Tool, resp.Args, nil
	}
	return m.DefaultTool, nil, nil
}

// PerfectToolSelector returns the expected tool for each test
type PerfectToolSelector struct {
	suite *ToolSelectionSuite
}

func (p *PerfectToolSelector) SelectTool(input string) (string, map[string]interface{}, error) {
	for _, test := range p.suite.Tests {
		if test.Input == input {
			return test.ExpectedTool, test.ExpectedArgs, nil
		}
	}
	return "", nil, nil
}

func TestDefaultSuite(t *testing.T) {
	suite, err := DefaultSuite()
	if err != nil {
		t.Fatalf("DefaultSuite failed: %v", err)
	}

	if suite.Name == "" {
		t.Error("Suite name should not be empty")
	}
	if len(suite.Tests) == 0 {
		t.Fatal("Suite should have tests")
	}

	if problems := Lint(suite); len(problems) > 0 {
		t.Errorf("default suite has problems:\n%s", strings.Join(problems, "\n"))
	}
}

func TestDefaultSuite_CoversEveryTool(t *testing.T) {
	suite, err := DefaultSuite()
	if err != nil {
		t.Fatalf("DefaultSuite failed: %v", err)
	}

	for tool, n := range Coverage(suite) {
		if n == 0 {
			t.Errorf("no test expects %s", tool)
		}
	}
}

func TestLoadToolSelectionSuite(t *testing.T) {
	suite, err := LoadToolSelectionSuite(filepath.Join(".", "tool_selection.json"))
	if err != nil {
		t.Fatalf("Failed to load tool selection suite: %v", err)
	}

	embedded, _ := DefaultSuite()
	if len(suite.Tests) != len(embedded.Tests) {
		t.Errorf("file has %d tests, embedded copy has %d", len(suite.Tests), len(embedded.Tests))
	}
}

func TestLoadToolSelectionSuite_Errors(t *testing.T) {
	if _, err := LoadToolSelectionSuite(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadToolSelectionSuite(path); err == nil || !strings.Contains(err.Error(), "parsing JSON") {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestLint(t *testing.T) {
	suite := &ToolSelectionSuite{Tests: []ToolSelectionTest{
		{ID: "ok", Input: "q", ExpectedTool: "wikimedia_edits", ExpectedArgs: map[string]interface{}{"project": "x"}},
		{ID: "unknown-tool", Input: "q", ExpectedTool: "wikimedia_views"},
		{ID: "bad-arg", Input: "q", ExpectedTool: "wikimedia_top", ExpectedArgs: map[string]interface{}{"page_title": "x"}},
		{ID: "self-forbidden", Input: "q", ExpectedTool: "wikimedia_pages", NotTools: []string{"wikimedia_pages"}},
		{ID: "ok", Input: "q", ExpectedTool: "wikimedia_series"},
	}}

	problems := Lint(suite)
	joined := strings.Join(problems, "\n")

	for _, want := range []string{
		`"unknown-tool": unknown tool "wikimedia_views"`,
		`"bad-arg": wikimedia_top has no argument "page_title"`,
		`"self-forbidden": wikimedia_pages is both expected and forbidden`,
		`"ok": duplicate id`,
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("missing problem %q in:\n%s", want, joined)
		}
	}
	if len(problems) != 4 {
		t.Errorf("got %d problems, want 4:\n%s", len(problems), joined)
	}
}

func TestArgNames(t *testing.T) {
	for _, spec := range tools.AllTools {
		names := ArgNames(toolArgs[spec.Name])
		if len(names) == 0 {
			t.Errorf("%s: no argument names", spec.Name)
		}
	}

	names := ArgNames(toolArgs["wikimedia_top"])
	for _, want := range []string{"date", "by", "count", "project"} {
		if !names[want] {
			t.Errorf("wikimedia_top missing argument %q", want)
		}
	}
	if len(ArgNames(nil)) != 0 {
		t.Error("ArgNames(nil) should be empty")
	}
}

func TestEvaluateToolSelection_Perfect(t *testing.T) {
	suite, _ := DefaultSuite()

	metrics, results := EvaluateToolSelection(suite, &PerfectToolSelector{suite: suite})

	if metrics.Accuracy != 1.0 {
		t.Errorf("Accuracy = %v, want 1.0; failures: %v", metrics.Accuracy, metrics.FailedDetails)
	}
	if len(results) != len(suite.Tests) {
		t.Errorf("got %d results, want %d", len(results), len(suite.Tests))
	}
}

func TestEvaluateToolSelection_Failures(t *testing.T) {
	suite := &ToolSelectionSuite{Tests: []ToolSelectionTest{
		{
			ID: "wrong-tool", Category: "totals", Input: "edits?",
			ExpectedTool: "wikimedia_edits", NotTools: []string{"wikimedia_series"},
		},
		{
			ID: "wrong-arg", Category: "rankings", Input: "top?",
			ExpectedTool: "wikimedia_top", ExpectedArgs: map[string]interface{}{"count": 5, "by": "edits"},
		},
		{
			ID: "right", Category: "rankings", Input: "top 3?",
			ExpectedTool: "wikimedia_top", ExpectedArgs: map[string]interface{}{"count": 3},
		},
	}}

	selector := &MockToolSelector{
		Responses: map[string]struct {
			Tool string
			Args map[string]interface{}
		}{
			"edits?": {Tool: "wikimedia_series"},
			"top?":   {Tool: "wikimedia_top", Args: map[string]interface{}{"count": float64(10)}},
			"top 3?": {Tool: "wikimedia_top", Args: map[string]interface{}{"count": float64(3)}},
		},
	}

	metrics, results := EvaluateToolSelection(suite, selector)

	if metrics.PassedTests != 1 || metrics.FailedTests != 2 {
		t.Errorf("passed/failed = %d/%d, want 1/2", metrics.PassedTests, metrics.FailedTests)
	}
	if metrics.ByCategory["rankings"].Passed != 1 {
		t.Errorf("rankings passed = %d, want 1", metrics.ByCategory["rankings"].Passed)
	}

	errs := strings.Join(results[0].Errors, "; ")
	if !strings.Contains(errs, "wrong tool") || !strings.Contains(errs, "forbidden tool") {
		t.Errorf("wrong-tool errors = %q", errs)
	}

	errs = strings.Join(results[1].Errors, "; ")
	if !strings.Contains(errs, "wrong arg count") || !strings.Contains(errs, "missing arg by") {
		t.Errorf("wrong-arg errors = %q", errs)
	}

	summary := FormatMetrics(metrics, "unit")
	for _, want := range []string{"=== unit ===", "Passed: 1 (33.3%)", "rankings    : 1/2", "Failed Tests:"} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary missing %q:\n%s", want, summary)
		}
	}
}

func TestCompareValues(t *testing.T) {
	tests := []struct {
		expected, actual interface{}
		want             bool
	}{
		{nil, nil, true},
		{nil, "x", false},
		{5, float64(5), true},
		{float64(5), 5, true},
		{5, float64(6), false},
		{"net", "net", true},
		{"net", "absolute", false},
		{[]interface{}{"a"}, []interface{}{"a"}, true},
	}

	for _, tt := range tests {
		if got := compareValues(tt.expected, tt.actual); got != tt.want {
			t.Errorf("compareValues(%v, %v) = %v, want %v", tt.expected, tt.actual, got, tt.want)
		}
	}
}
