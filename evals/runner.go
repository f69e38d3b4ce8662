// Package evals provides an evaluation framework for MCP tool selection accuracy.
// It checks that an LLM picks the right wikimedia tool and extracts proper
// arguments from natural language questions about edit activity.
package evals

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/olgasafonova/wikiedits-mcp-server/internal/wikimedia"
	"github.com/olgasafonova/wikiedits-mcp-server/tools"
)

//go:embed tool_selection.json
var defaultSuite []byte

// ToolSelectionTest represents a single tool selection evaluation case
type ToolSelectionTest struct {
	ID           string                 `json:"id"`
	Category     string                 `json:"category"`
	Input        string                 `json:"input"`
	ExpectedTool string                 `json:"expected_tool"`
	ExpectedArgs map[string]interface{} `json:"expected_args"`
	NotTools     []string               `json:"not_tools"`
}

// ToolSelectionSuite contains all tool selection tests
type ToolSelectionSuite struct {
	Name        string              `json:"name"`
	Version     string              `json:"version"`
	Description string              `json:"description"`
	Tests       []ToolSelectionTest `json:"tests"`
}

// ToolSelectionResult represents the result of a single evaluation
type ToolSelectionResult struct {
	TestID       string
	Input        string
	ExpectedTool string
	ActualTool   string
	Passed       bool
	Errors       []string
}

// EvalMetrics contains aggregate metrics for an evaluation run
type EvalMetrics struct {
	TotalTests    int
	PassedTests   int
	FailedTests   int
	Accuracy      float64 // PassedTests / TotalTests
	ByCategory    map[string]*CategoryMetrics
	FailedDetails []string
}

// CategoryMetrics contains metrics per category
type CategoryMetrics struct {
	Total  int
	Passed int
	Failed int
}

// ToolSelector is an interface that an LLM or mock can implement for testing
type ToolSelector interface {
	// SelectTool returns the tool name and arguments for a given natural language input
	SelectTool(input string) (toolName string, args map[string]interface{}, err error)
}

// toolArgs maps each tool to its argument type, for argument name checks
var toolArgs = map[string]any{
	"wikimedia_edits":  wikimedia.EditsArgs{},
	"wikimedia_bytes":  wikimedia.BytesArgs{},
	"wikimedia_pages":  wikimedia.PagesArgs{},
	"wikimedia_top":    wikimedia.TopArgs{},
	"wikimedia_series": wikimedia.SeriesArgs{},
}

// DefaultSuite returns the built-in tool selection suite
func DefaultSuite() (*ToolSelectionSuite, error) {
	return decodeSuite(strings.NewReader(string(defaultSuite)))
}

// LoadToolSelectionSuite loads tool selection tests from a JSON file
func LoadToolSelectionSuite(path string) (*ToolSelectionSuite, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	defer f.Close()
	return decodeSuite(f)
}

func decodeSuite(r io.Reader) (*ToolSelectionSuite, error) {
	var suite ToolSelectionSuite
	if err := json.NewDecoder(r).Decode(&suite); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	return &suite, nil
}

// Lint checks that every test refers to registered tools and known argument
// names. It returns one message per problem.
func Lint(suite *ToolSelectionSuite) []string {
	known := make(map[string]bool, len(tools.AllTools))
	for _, spec := range tools.AllTools {
		known[spec.Name] = true
	}

	var problems []string
	seen := make(map[string]bool)
	for _, test := range suite.Tests {
		if test.ID == "" || test.Input == "" {
			problems = append(problems, fmt.Sprintf("test %q: id and input are required", test.ID))
		}
		if seen[test.ID] {
			problems = append(problems, fmt.Sprintf("test %q: duplicate id", test.ID))
		}
		seen[test.ID] = true

		if !known[test.ExpectedTool] {
			problems = append(problems, fmt.Sprintf("test %q: unknown tool %q", test.ID, test.ExpectedTool))
			continue
		}
		for _, name := range test.NotTools {
			if !known[name] {
				problems = append(problems, fmt.Sprintf("test %q: unknown not_tool %q", test.ID, name))
			}
			if name == test.ExpectedTool {
				problems = append(problems, fmt.Sprintf("test %q: %s is both expected and forbidden", test.ID, name))
			}
		}

		fields := ArgNames(toolArgs[test.ExpectedTool])
		for key := range test.ExpectedArgs {
			if !fields[key] {
				problems = append(problems, fmt.Sprintf("test %q: %s has no argument %q", test.ID, test.ExpectedTool, key))
			}
		}
	}

	sort.Strings(problems)
	return problems
}

// ArgNames returns the JSON argument names of an Args struct
func ArgNames(args any) map[string]bool {
	names := make(map[string]bool)
	if args == nil {
		return names
	}
	t := reflect.TypeOf(args)
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("json")
		name, _, _ := strings.Cut(tag, ",")
		if name != "" && name != "-" {
			names[name] = true
		}
	}
	return names
}

// Coverage counts tests per expected tool
func Coverage(suite *ToolSelectionSuite) map[string]int {
	counts := make(map[string]int, len(tools.AllTools))
	for _, spec := range tools.AllTools {
		counts[spec.Name] = 0
	}
	for _, test := range suite.Tests {
		counts[test.ExpectedTool]++
	}
	return counts
}

// EvaluateToolSelection runs tool selection tests against a selector
func EvaluateToolSelection(suite *ToolSelectionSuite, selector ToolSelector) (*EvalMetrics, []ToolSelectionResult) {
	metrics := &EvalMetrics{
		ByCategory: make(map[string]*CategoryMetrics),
	}
	var results []ToolSelectionResult

	for _, test := range suite.Tests {
		metrics.TotalTests++

		if metrics.ByCategory[test.Category] == nil {
			metrics.ByCategory[test.Category] = &CategoryMetrics{}
		}
		metrics.ByCategory[test.Category].Total++

		actualTool, actualArgs, err := selector.SelectTool(test.Input)

		result := ToolSelectionResult{
			TestID:       test.ID,
			Input:        test.Input,
			ExpectedTool: test.ExpectedTool,
			ActualTool:   actualTool,
			Passed:       true,
		}

		if err != nil {
			result.Passed = false
			result.Errors = append(result.Errors, fmt.Sprintf("selector error: %v", err))
		}

		if actualTool != test.ExpectedTool {
			result.Passed = false
			result.Errors = append(result.Errors,
				fmt.Sprintf("wrong tool: expected %s, got %s", test.ExpectedTool, actualTool))
		}

		for _, forbidden := range test.NotTools {
			if actualTool == forbidden {
				result.Passed = false
				result.Errors = append(result.Errors, fmt.Sprintf("selected forbidden tool: %s", forbidden))
			}
		}

		for key, expectedValue := range test.ExpectedArgs {
			actualValue, exists := actualArgs[key]
			if !exists {
				result.Passed = false
				result.Errors = append(result.Errors,
					fmt.Sprintf("missing arg %s (expected %v)", key, expectedValue))
			} else if !compareValues(expectedValue, actualValue) {
				result.Passed = false
				result.Errors = append(result.Errors,
					fmt.Sprintf("wrong arg %s: expected %v, got %v", key, expectedValue, actualValue))
			}
		}

		if result.Passed {
			metrics.PassedTests++
			metrics.ByCategory[test.Category].Passed++
		} else {
			metrics.FailedTests++
			metrics.ByCategory[test.Category].Failed++
			metrics.FailedDetails = append(metrics.FailedDetails,
				fmt.Sprintf("[%s] %s: %s", test.ID, test.Input, strings.Join(result.Errors, "; ")))
		}

		results = append(results, result)
	}

	if metrics.TotalTests > 0 {
		metrics.Accuracy = float64(metrics.PassedTests) / float64(metrics.TotalTests)
	}

	return metrics, results
}

// compareValues compares expected and actual values. JSON numbers decode to
// float64, so integer expectations match equal floats.
func compareValues(expected, actual interface{}) bool {
	if expected == nil || actual == nil {
		return expected == nil && actual == nil
	}

	ev := reflect.ValueOf(expected)
	av := reflect.ValueOf(actual)

	switch ev.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if av.Kind() == reflect.Float64 {
			return float64(ev.Int()) == av.Float()
		}
	case reflect.Float32, reflect.Float64:
		switch av.Kind() {
		case reflect.Float64:
			return ev.Float() == av.Float()
		case reflect.Int, reflect.Int64:
			return ev.Float() == float64(av.Int())
		}
	}

	return reflect.DeepEqual(expected, actual)
}

// FormatMetrics returns a human-readable summary of evaluation metrics
func FormatMetrics(metrics *EvalMetrics, suiteName string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\n=== %s ===\n", suiteName)
	fmt.Fprintf(&b, "Total: %d tests\n", metrics.TotalTests)
	fmt.Fprintf(&b, "Passed: %d (%.1f%%)\n", metrics.PassedTests, metrics.Accuracy*100)
	fmt.Fprintf(&b, "Failed: %d\n", metrics.FailedTests)

	if len(metrics.ByCategory) > 0 {
		cats := make([]string, 0, len(metrics.ByCategory))
		for cat := range metrics.ByCategory {
			cats = append(cats, cat)
		}
		sort.Strings(cats)

		b.WriteString("\nBy Category:\n")
		for _, cat := range cats {
			m := metrics.ByCategory[cat]
			acc := float64(m.Passed) / float64(m.Total) * 100
			fmt.Fprintf(&b, "  %-12s: %d/%d (%.0f%%)\n", cat, m.Passed, m.Total, acc)
		}
	}

	details := metrics.FailedDetails
	if len(details) > 10 {
		fmt.Fprintf(&b, "\nFailed Tests (showing first 10 of %d):\n", len(details))
		details = details[:10]
	} else if len(details) > 0 {
		b.WriteString("\nFailed Tests:\n")
	}
	for _, detail := range details {
		fmt.Fprintf(&b, "  - %s\n", detail)
	}

	return b.String()
}
