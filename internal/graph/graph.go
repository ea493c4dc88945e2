// Package graph generates DOT and Mermaid dependency graphs from a
// synthesized template.
package graph

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/emicklei/dot"

	claudagent "github.com/hereya/aws-claud-agent"
	"github.com/hereya/aws-claud-agent/internal/template"
)

// Format specifies the output format for the graph.
type Format string

const (
	// FormatDOT outputs Graphviz DOT format.
	FormatDOT Format = "dot"
	// FormatMermaid outputs Mermaid format for GitHub/markdown rendering.
	FormatMermaid Format = "mermaid"
)

// Generator renders the dependency graph of a template's resources.
type Generator struct {
	// Format specifies the output format (dot or mermaid). Defaults to dot.
	Format Format

	// ClusterByType groups resources by AWS service.
	ClusterByType bool
}

// Generate writes the dependency graph of tmpl to w.
func (g *Generator) Generate(tmpl *claudagent.Template, w io.Writer) error {
	graph := g.buildGraph(tmpl)

	format := g.Format
	if format == "" {
		format = FormatDOT
	}

	var output string
	if format == FormatMermaid {
		output = dot.MermaidGraph(graph, dot.MermaidTopToBottom)
	} else {
		output = graph.String()
	}

	_, err := w.Write([]byte(output))
	return err
}

// GenerateString is a convenience method that returns the graph as a string.
func (g *Generator) GenerateString(tmpl *claudagent.Template) (string, error) {
	var sb strings.Builder
	if err := g.Generate(tmpl, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// buildGraph creates the dot.Graph structure from the template's resources.
func (g *Generator) buildGraph(tmpl *claudagent.Template) *dot.Graph {
	graph := dot.NewGraph(dot.Directed)
	graph.Attr("rankdir", "TB")

	graph.NodeInitializer(func(n dot.Node) {
		n.Attr("shape", "box")
		n.Attr("fontname", "Arial")
	})
	graph.EdgeInitializer(func(e dot.Edge) {
		e.Attr("fontname", "Arial")
		e.Attr("fontsize", "10")
	})

	getAttRefs := buildGetAttSet(tmpl)

	if g.ClusterByType {
		g.addClusteredNodes(graph, tmpl)
	} else {
		g.addNodes(graph, tmpl)
	}

	for name, def := range tmpl.Resources {
		for _, dep := range template.Dependencies(def.Properties) {
			if _, ok := tmpl.Resources[dep]; !ok || dep == name {
				continue
			}

			from := graph.Node(name)
			to := graph.Node(dep)
			e := graph.Edge(from, to)

			// Attribute references are the strong edges.
			if getAttRefs[name+"->"+dep] {
				e.Attr("color", "blue")
			}
		}
	}

	return graph
}

// buildGetAttSet collects the edges made through Fn::GetAtt references.
func buildGetAttSet(tmpl *claudagent.Template) map[string]bool {
	getAttRefs := make(map[string]bool)
	for name, def := range tmpl.Resources {
		for _, target := range getAttTargets(def.Properties) {
			getAttRefs[name+"->"+target] = true
		}
	}
	return getAttRefs
}

// getAttTargets walks serialized properties and returns the resources
// referenced through Fn::GetAtt.
func getAttTargets(v any) []string {
	var targets []string
	switch value := v.(type) {
	case map[string]any:
		if att, ok := value["Fn::GetAtt"]; ok && len(value) == 1 {
			switch ref := att.(type) {
			case []any:
				if len(ref) > 0 {
					if name, ok := ref[0].(string); ok {
						targets = append(targets, name)
					}
				}
			case string:
				if name, _, ok := strings.Cut(ref, "."); ok {
					targets = append(targets, name)
				}
			}
			return targets
		}
		for _, nested := range value {
			targets = append(targets, getAttTargets(nested)...)
		}
	case []any:
		for _, nested := range value {
			targets = append(targets, getAttTargets(nested)...)
		}
	case json.RawMessage:
		var decoded any
		if err := json.Unmarshal(value, &decoded); err == nil {
			targets = append(targets, getAttTargets(decoded)...)
		}
	}
	return targets
}

// addNodes adds resource nodes without clustering.
func (g *Generator) addNodes(graph *dot.Graph, tmpl *claudagent.Template) {
	for name, def := range tmpl.Resources {
		n := graph.Node(name)
		n.Label(name + "\\n[" + def.Type + "]")
	}
}

// addClusteredNodes adds resource nodes grouped by AWS service.
func (g *Generator) addClusteredNodes(graph *dot.Graph, tmpl *claudagent.Template) {
	serviceResources := make(map[string][]string)
	for name, def := range tmpl.Resources {
		service := extractService(def.Type)
		serviceResources[service] = append(serviceResources[service], name)
	}

	for service, resNames := range serviceResources {
		if len(resNames) > 1 {
			cluster := graph.Subgraph("cluster_"+service, dot.ClusterOption{})
			cluster.Attr("label", service)
			cluster.Attr("style", "rounded")
			cluster.Attr("bgcolor", "lightyellow")

			for _, name := range resNames {
				n := cluster.Node(name)
				n.Label(name + "\\n[" + tmpl.Resources[name].Type + "]")
			}
		} else {
			for _, name := range resNames {
				n := graph.Node(name)
				n.Label(name + "\\n[" + tmpl.Resources[name].Type + "]")
			}
		}
	}
}

// extractService extracts the service segment from a CloudFormation type.
// e.g., "AWS::S3::Bucket" -> "S3"
func extractService(cfnType string) string {
	parts := strings.Split(cfnType, "::")
	if len(parts) == 3 {
		return parts[1]
	}
	return "Other"
}
