// Package differ provides semantic comparison of CloudFormation templates.
package differ

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"sort"

	"gopkg.in/yaml.v3"

	claudagent "github.com/hereya/aws-claud-agent"
)

// Result contains the difference between two templates.
type Result struct {
	Diff    claudagent.TemplateDiff
	Summary claudagent.DiffSummary
}

// Compare compares two CloudFormation templates and returns differences.
// The first template is the baseline; entries in Added exist only in the
// second.
func Compare(baseline, current *claudagent.Template) *Result {
	result := &Result{}

	res1 := baseline.Resources
	res2 := current.Resources

	for name, def := range res2 {
		if _, exists := res1[name]; !exists {
			result.Diff.Added = append(result.Diff.Added, claudagent.DiffEntry{
				Resource: name,
				Type:     def.Type,
			})
		}
	}

	for name, def := range res1 {
		if _, exists := res2[name]; !exists {
			result.Diff.Removed = append(result.Diff.Removed, claudagent.DiffEntry{
				Resource: name,
				Type:     def.Type,
			})
		}
	}

	for name, def1 := range res1 {
		if def2, exists := res2[name]; exists {
			changes := compareResources(def1, def2)
			if len(changes) > 0 {
				result.Diff.Modified = append(result.Diff.Modified, claudagent.DiffEntry{
					Resource: name,
					Type:     def1.Type,
					Changes:  changes,
				})
			}
		}
	}

	// Sort entries for consistent output
	sortEntries(result.Diff.Added)
	sortEntries(result.Diff.Removed)
	sortEntries(result.Diff.Modified)

	result.Summary = claudagent.DiffSummary{
		Added:    len(result.Diff.Added),
		Removed:  len(result.Diff.Removed),
		Modified: len(result.Diff.Modified),
	}
	result.Summary.Total = result.Summary.Added + result.Summary.Removed + result.Summary.Modified

	return result
}

// CompareWithFile compares a template against a template file.
func CompareWithFile(baselinePath string, current *claudagent.Template) (*Result, error) {
	baseline, err := LoadTemplate(baselinePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", baselinePath, err)
	}
	return Compare(baseline, current), nil
}

// LoadTemplate loads a CloudFormation template from a JSON or YAML file.
func LoadTemplate(path string) (*claudagent.Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var template claudagent.Template

	// Try JSON first
	if err := json.Unmarshal(data, &template); err != nil {
		if err := yaml.Unmarshal(data, &template); err != nil {
			return nil, fmt.Errorf("failed to parse as JSON or YAML: %w", err)
		}
	}

	return &template, nil
}

// compareResources compares two resource definitions and returns changes.
func compareResources(def1, def2 claudagent.ResourceDef) []string {
	var changes []string

	if def1.Type != def2.Type {
		changes = append(changes, fmt.Sprintf("Type changed: %s -> %s", def1.Type, def2.Type))
	}
	if def1.DeletionPolicy != def2.DeletionPolicy {
		changes = append(changes, "DeletionPolicy changed")
	}

	changes = append(changes, compareProperties("", def1.Properties, def2.Properties)...)

	if !equalStringSlices(def1.DependsOn, def2.DependsOn) {
		changes = append(changes, "DependsOn changed")
	}

	return changes
}

// compareProperties recursively compares property maps.
func compareProperties(prefix string, props1, props2 map[string]any) []string {
	var changes []string

	for key, val2 := range props2 {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		if val1, exists := props1[key]; exists {
			if !reflect.DeepEqual(normalize(val1), normalize(val2)) {
				changes = append(changes, fmt.Sprintf("%s modified", path))
			}
		} else {
			changes = append(changes, fmt.Sprintf("%s added", path))
		}
	}

	for key := range props1 {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		if _, exists := props2[key]; !exists {
			changes = append(changes, fmt.Sprintf("%s removed", path))
		}
	}

	sort.Strings(changes)
	return changes
}

// normalize erases the JSON/YAML decoding differences (ints vs floats,
// map[any]any) so semantically equal values compare equal.
func normalize(v any) any {
	switch val := v.(type) {
	case map[string]any:
		result := make(map[string]any, len(val))
		for k, nested := range val {
			result[k] = normalize(nested)
		}
		return result
	case map[any]any:
		result := make(map[string]any, len(val))
		for k, nested := range val {
			result[fmt.Sprintf("%v", k)] = normalize(nested)
		}
		return result
	case []any:
		result := make([]any, len(val))
		for i, nested := range val {
			result[i] = normalize(nested)
		}
		return result
	case int:
		return float64(val)
	case int64:
		return float64(val)
	default:
		return v
	}
}

// equalStringSlices compares two string slices for equality.
func equalStringSlices(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// sortEntries sorts diff entries by resource name.
func sortEntries(entries []claudagent.DiffEntry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Resource < entries[j].Resource
	})
}
