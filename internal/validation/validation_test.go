package validation

import (
	"testing"

	"github.com/lex00/cfn-lint-go/pkg/lint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	claudagent "github.com/hereya/aws-claud-agent"
)

func TestCfnLintResult_TotalIssues(t *testing.T) {
	tests := []struct {
		name     string
		result   CfnLintResult
		expected int
	}{
		{
			name:     "empty result",
			result:   CfnLintResult{},
			expected: 0,
		},
		{
			name: "errors only",
			result: CfnLintResult{
				Errors: []string{"error1", "error2"},
			},
			expected: 2,
		},
		{
			name: "mixed issues",
			result: CfnLintResult{
				Errors:        []string{"error1"},
				Warnings:      []string{"warning1", "warning2"},
				Informational: []string{"info1"},
			},
			expected: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.result.TotalIssues())
		})
	}
}

func TestFormatMatch(t *testing.T) {
	tests := []struct {
		name     string
		match    lint.Match
		expected string
	}{
		{
			name: "simple match",
			match: lint.Match{
				Rule:    lint.MatchRule{ID: "E1234"},
				Message: "Something is wrong",
			},
			expected: "E1234: Something is wrong",
		},
		{
			name: "match with path",
			match: lint.Match{
				Rule:    lint.MatchRule{ID: "W5678"},
				Message: "Warning message",
				Location: lint.MatchLocation{
					Path: []any{"Resources", "InputBucket", "Properties"},
				},
			},
			expected: "W5678: Warning message (at Resources/InputBucket/Properties)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatMatch(tt.match))
		})
	}
}

func TestLintFile_FileNotFound(t *testing.T) {
	result := LintFile("/nonexistent/template.yaml")
	assert.False(t, result.Passed)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Template file not found")
}

func TestLintBytes(t *testing.T) {
	data := []byte(`AWSTemplateFormatVersion: '2010-09-09'
Description: Test template
Resources:
  InputBucket:
    Type: AWS::S3::Bucket
    Properties:
      BucketName: test-bucket
`)

	result, err := LintBytes(data)
	require.NoError(t, err)
	assert.NotNil(t, result)
}

func TestValidate_CountsResources(t *testing.T) {
	tmpl := &claudagent.Template{
		AWSTemplateFormatVersion: "2010-09-09",
		Resources: map[string]claudagent.ResourceDef{
			"InputBucket": {
				Type:       "AWS::S3::Bucket",
				Properties: map[string]any{"BucketName": "claud-input"},
			},
			"OutputBucket": {
				Type:       "AWS::S3::Bucket",
				Properties: map[string]any{"BucketName": "claud-output"},
			},
		},
	}

	result, err := Validate(tmpl)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Resources)
}
