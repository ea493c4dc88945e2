// Package template builds CloudFormation templates from declared resources.
package template

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	claudagent "github.com/hereya/aws-claud-agent"
)

// Builder constructs a CloudFormation template from declared resources.
//
// Resources are added by logical name; references between them (Ref, GetAtt,
// Sub) are detected from the serialized properties and drive the dependency
// ordering.
type Builder struct {
	description string
	resources   map[string]*entry
	outputs     map[string]claudagent.Output
}

type entry struct {
	resource       claudagent.Resource
	deletionPolicy string
}

// NewBuilder creates a template builder.
func NewBuilder(description string) *Builder {
	return &Builder{
		description: description,
		resources:   make(map[string]*entry),
		outputs:     make(map[string]claudagent.Output),
	}
}

// Add declares a resource under the given logical name.
func (b *Builder) Add(name string, res claudagent.Resource) {
	b.resources[name] = &entry{resource: res}
}

// SetDeletionPolicy sets the DeletionPolicy (and matching UpdateReplacePolicy)
// for a previously added resource. Unknown names are ignored.
func (b *Builder) SetDeletionPolicy(name, policy string) {
	if e, ok := b.resources[name]; ok {
		e.deletionPolicy = policy
	}
}

// AddOutput declares a template output.
func (b *Builder) AddOutput(name string, out claudagent.Output) {
	b.outputs[name] = out
}

// Build constructs the CloudFormation template.
func (b *Builder) Build() (*claudagent.Template, error) {
	// Serialize all resources first so dependencies can be extracted.
	props := make(map[string]map[string]any, len(b.resources))
	deps := make(map[string][]string, len(b.resources))
	for name, e := range b.resources {
		p, err := serializeResource(e.resource)
		if err != nil {
			return nil, fmt.Errorf("serializing %s: %w", name, err)
		}
		props[name] = p

		for _, dep := range Dependencies(p) {
			if _, exists := b.resources[dep]; exists && dep != name {
				deps[name] = append(deps[name], dep)
			}
		}
	}

	// Ordering is not visible in the JSON map but the sort still rejects cycles.
	if _, err := topologicalSort(b.resources, deps); err != nil {
		return nil, err
	}

	tmpl := &claudagent.Template{
		AWSTemplateFormatVersion: "2010-09-09",
		Description:              b.description,
		Resources:                make(map[string]claudagent.ResourceDef, len(b.resources)),
	}

	for name, e := range b.resources {
		def := claudagent.ResourceDef{
			Type:       e.resource.ResourceType(),
			Properties: props[name],
		}
		if e.deletionPolicy != "" {
			def.DeletionPolicy = e.deletionPolicy
			def.UpdateReplacePolicy = e.deletionPolicy
		}
		tmpl.Resources[name] = def
	}

	if len(b.outputs) > 0 {
		tmpl.Outputs = make(map[string]claudagent.Output, len(b.outputs))
		for name, out := range b.outputs {
			// Normalize through JSON so intrinsic values render the same in
			// both JSON and YAML templates.
			value, err := normalizeValue(out.Value)
			if err != nil {
				return nil, fmt.Errorf("serializing output %s: %w", name, err)
			}
			out.Value = value
			tmpl.Outputs[name] = out
		}
	}

	return tmpl, nil
}

// normalizeValue round-trips a value through JSON so custom marshalers
// (Ref, GetAtt, Sub) collapse into plain maps.
func normalizeValue(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// serializeResource converts a Go struct to CloudFormation properties.
func serializeResource(res claudagent.Resource) (map[string]any, error) {
	// Convert to JSON to normalize the structure; custom MarshalJSON on the
	// intrinsic types produces the Ref/Fn::GetAtt/Fn::Sub forms.
	data, err := json.Marshal(res)
	if err != nil {
		return nil, err
	}

	var props map[string]any
	if err := json.Unmarshal(data, &props); err != nil {
		return nil, err
	}
	return props, nil
}

// subRefPattern matches ${LogicalName} and ${LogicalName.Attribute}
// substitutions inside Fn::Sub strings. Literal ${!...} escapes and
// AWS:: pseudo-parameters are filtered by the caller.
var subRefPattern = regexp.MustCompile(`\$\{([A-Za-z0-9:]+)(?:\.[A-Za-z0-9]+)?\}`)

// Dependencies extracts the logical names referenced by serialized resource
// properties via Ref, Fn::GetAtt, and Fn::Sub. Names are sorted and deduplicated;
// pseudo-parameters (AWS::*) are excluded.
func Dependencies(v any) []string {
	seen := make(map[string]bool)
	collectDependencies(v, seen)

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func collectDependencies(v any, seen map[string]bool) {
	switch val := v.(type) {
	case map[string]any:
		if ref, ok := val["Ref"].(string); ok && len(val) == 1 {
			markDependency(ref, seen)
			return
		}
		if att, ok := val["Fn::GetAtt"]; ok && len(val) == 1 {
			if parts, ok := att.([]any); ok && len(parts) > 0 {
				if name, ok := parts[0].(string); ok {
					markDependency(name, seen)
				}
			}
			return
		}
		if sub, ok := val["Fn::Sub"]; ok && len(val) == 1 {
			collectSubDependencies(sub, seen)
			return
		}
		for _, elem := range val {
			collectDependencies(elem, seen)
		}
	case []any:
		for _, elem := range val {
			collectDependencies(elem, seen)
		}
	}
}

func collectSubDependencies(sub any, seen map[string]bool) {
	switch s := sub.(type) {
	case string:
		for _, match := range subRefPattern.FindAllStringSubmatch(s, -1) {
			markDependency(match[1], seen)
		}
	case []any:
		// Two-element form: the variable map shadows template references.
		if len(s) != 2 {
			return
		}
		str, _ := s[0].(string)
		vars, _ := s[1].(map[string]any)
		for _, match := range subRefPattern.FindAllStringSubmatch(str, -1) {
			if _, shadowed := vars[match[1]]; !shadowed {
				markDependency(match[1], seen)
			}
		}
	}
}

func markDependency(name string, seen map[string]bool) {
	if strings.HasPrefix(name, "AWS::") {
		return
	}
	seen[name] = true
}

// topologicalSort returns resources in dependency order using Kahn's algorithm.
func topologicalSort(resources map[string]*entry, deps map[string][]string) ([]string, error) {
	graph := make(map[string][]string)
	inDegree := make(map[string]int)

	for name := range resources {
		graph[name] = nil
		inDegree[name] = 0
	}

	for name, resourceDeps := range deps {
		for _, dep := range resourceDeps {
			graph[dep] = append(graph[dep], name)
			inDegree[name]++
		}
	}

	var queue []string
	for name, degree := range inDegree {
		if degree == 0 {
			queue = append(queue, name)
		}
	}
	sort.Strings(queue) // Deterministic order

	var result []string
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		result = append(result, node)

		for _, neighbor := range graph[node] {
			inDegree[neighbor]--
			if inDegree[neighbor] == 0 {
				queue = append(queue, neighbor)
				sort.Strings(queue)
			}
		}
	}

	if len(result) != len(resources) {
		var cyclic []string
		for name, degree := range inDegree {
			if degree > 0 {
				cyclic = append(cyclic, name)
			}
		}
		sort.Strings(cyclic)
		return nil, errors.New("circular dependency detected: " + strings.Join(cyclic, ", "))
	}

	return result, nil
}

// ToJSON serializes the template to JSON.
func ToJSON(t *claudagent.Template) ([]byte, error) {
	return json.MarshalIndent(t, "", "  ")
}

// ToYAML serializes the template to YAML.
func ToYAML(t *claudagent.Template) ([]byte, error) {
	return yaml.Marshal(t)
}
