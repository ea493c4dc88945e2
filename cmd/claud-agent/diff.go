package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hereya/aws-claud-agent/internal/differ"
)

func newDiffCmd() *cobra.Command {
	var (
		outputFormat string
		envFile      string
	)

	cmd := &cobra.Command{
		Use:   "diff <template-file>",
		Short: "Compare the synthesized template against a saved one",
		Long: `Diff synthesizes the template from the current configuration and compares
it against a previously saved template file (JSON or YAML).

Examples:
    claud-agent synth -o template.json
    # ... change configuration ...
    claud-agent diff template.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(args[0], envFile, outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")
	cmd.Flags().StringVar(&envFile, "env-file", "", "KEY=VALUE file overlaid over the environment")

	return cmd
}

func runDiff(baselinePath, envFile, format string) error {
	tmpl, err := synthesize(envFile)
	if err != nil {
		return fmt.Errorf("diff failed: %w", err)
	}

	result, err := differ.CompareWithFile(baselinePath, tmpl)
	if err != nil {
		return fmt.Errorf("diff failed: %w", err)
	}

	switch format {
	case "json":
		data, err := json.MarshalIndent(result.Diff, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))

	case "text":
		if result.Summary.Total == 0 {
			fmt.Println("No differences")
			return nil
		}

		for _, entry := range result.Diff.Added {
			fmt.Printf("+ %s (%s)\n", entry.Resource, entry.Type)
		}
		for _, entry := range result.Diff.Removed {
			fmt.Printf("- %s (%s)\n", entry.Resource, entry.Type)
		}
		for _, entry := range result.Diff.Modified {
			fmt.Printf("~ %s (%s)\n", entry.Resource, entry.Type)
			for _, change := range entry.Changes {
				fmt.Printf("    %s\n", change)
			}
		}
		fmt.Printf("%d added, %d removed, %d modified\n",
			result.Summary.Added, result.Summary.Removed, result.Summary.Modified)

	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if result.Summary.Total > 0 {
		os.Exit(2)
	}
	return nil
}
