package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hereya/aws-claud-agent/internal/graph"
)

func newGraphCmd() *cobra.Command {
	var (
		outputFormat  string
		clusterByType bool
		envFile       string
	)

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Generate DOT graph of resource dependencies",
		Long: `Generate a DOT or Mermaid format graph showing resource dependencies.

The output can be rendered with Graphviz:
    claud-agent graph | dot -Tpng -o deps.png

Or used in GitHub markdown (Mermaid format):
    claud-agent graph -f mermaid

Examples:
    claud-agent graph
    claud-agent graph -c              # cluster by service
    claud-agent graph -f mermaid      # mermaid format`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraph(envFile, outputFormat, clusterByType)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "dot", "Output format: dot or mermaid")
	cmd.Flags().BoolVarP(&clusterByType, "cluster", "c", false, "Cluster resources by AWS service")
	cmd.Flags().StringVar(&envFile, "env-file", "", "KEY=VALUE file overlaid over the environment")

	return cmd
}

func runGraph(envFile, format string, cluster bool) error {
	tmpl, err := synthesize(envFile)
	if err != nil {
		return fmt.Errorf("graph failed: %w", err)
	}

	var graphFormat graph.Format
	switch format {
	case "dot":
		graphFormat = graph.FormatDOT
	case "mermaid":
		graphFormat = graph.FormatMermaid
	default:
		return fmt.Errorf("unknown format: %s (use 'dot' or 'mermaid')", format)
	}

	gen := &graph.Generator{
		Format:        graphFormat,
		ClusterByType: cluster,
	}

	return gen.Generate(tmpl, os.Stdout)
}
