// Package validation checks a synthesized template with cfn-lint-go.
//
// The linter is a library dependency for guaranteed version control; it only
// reads files, so the template bytes are staged through a temp file.
package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lex00/cfn-lint-go/pkg/lint"

	claudagent "github.com/hereya/aws-claud-agent"
	"github.com/hereya/aws-claud-agent/internal/template"
)

// CfnLintResult contains the result of running cfn-lint.
type CfnLintResult struct {
	Passed        bool     `json:"passed"`
	Errors        []string `json:"errors"`
	Warnings      []string `json:"warnings"`
	Informational []string `json:"informational"`
}

// TotalIssues returns the total number of issues found.
func (r CfnLintResult) TotalIssues() int {
	return len(r.Errors) + len(r.Warnings) + len(r.Informational)
}

// Validate synthesizes the template to YAML, lints it, and reports the
// outcome. Warnings are acceptable; errors fail validation.
func Validate(tmpl *claudagent.Template) (*claudagent.ValidateResult, error) {
	data, err := template.ToYAML(tmpl)
	if err != nil {
		return nil, fmt.Errorf("serializing template: %w", err)
	}

	lintResult, err := LintBytes(data)
	if err != nil {
		return nil, err
	}

	return &claudagent.ValidateResult{
		Success:   lintResult.Passed,
		Resources: len(tmpl.Resources),
		Errors:    lintResult.Errors,
		Warnings:  append(lintResult.Warnings, lintResult.Informational...),
	}, nil
}

// LintBytes lints template bytes by staging them through a temp file.
func LintBytes(data []byte) (*CfnLintResult, error) {
	dir, err := os.MkdirTemp("", "claud-agent-lint-")
	if err != nil {
		return nil, fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "template.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("writing template: %w", err)
	}

	return LintFile(path), nil
}

// LintFile runs cfn-lint-go on the given template file.
func LintFile(templatePath string) *CfnLintResult {
	if _, err := os.Stat(templatePath); err != nil {
		return &CfnLintResult{
			Passed: false,
			Errors: []string{fmt.Sprintf("Template file not found: %s", templatePath)},
		}
	}

	linter := lint.New(lint.Options{})
	matches, err := linter.LintFile(templatePath)
	if err != nil {
		return &CfnLintResult{
			Passed: false,
			Errors: []string{fmt.Sprintf("Linter error: %v", err)},
		}
	}

	result := &CfnLintResult{
		Errors:        []string{},
		Warnings:      []string{},
		Informational: []string{},
	}

	for _, match := range matches {
		formatted := formatMatch(match)

		switch match.Level {
		case "Error":
			result.Errors = append(result.Errors, formatted)
		case "Warning":
			result.Warnings = append(result.Warnings, formatted)
		default:
			result.Informational = append(result.Informational, formatted)
		}
	}

	// Passed if no errors (warnings are acceptable)
	result.Passed = len(result.Errors) == 0

	return result
}

// formatMatch formats a cfn-lint-go match for display.
func formatMatch(match lint.Match) string {
	pathStr := ""
	if len(match.Location.Path) > 0 {
		parts := make([]string, len(match.Location.Path))
		for i, p := range match.Location.Path {
			parts[i] = fmt.Sprintf("%v", p)
		}
		pathStr = strings.Join(parts, "/")
	}

	if pathStr != "" {
		return fmt.Sprintf("%s: %s (at %s)", match.Rule.ID, match.Message, pathStr)
	}
	return fmt.Sprintf("%s: %s", match.Rule.ID, match.Message)
}
