package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	claudagent "github.com/hereya/aws-claud-agent"
	"github.com/hereya/aws-claud-agent/internal/stack"
	"github.com/hereya/aws-claud-agent/internal/template"
)

func newSynthCmd() *cobra.Command {
	var (
		outputFormat string
		outputFile   string
		envFile      string
	)

	cmd := &cobra.Command{
		Use:   "synth",
		Short: "Generate the CloudFormation template",
		Long: `Synth reads the stack configuration from the environment and generates
the CloudFormation template.

Examples:
    claud-agent synth
    claud-agent synth -o template.json
    claud-agent synth --format yaml
    claud-agent synth --env-file stack.env`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSynth(envFile, outputFormat, outputFile)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "Output format: json or yaml")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVar(&envFile, "env-file", "", "KEY=VALUE file overlaid over the environment")

	return cmd
}

func runSynth(envFile, format, outputFile string) error {
	tmpl, err := synthesize(envFile)
	if err != nil {
		result := claudagent.SynthResult{
			Success: false,
			Errors:  []string{err.Error()},
		}
		return outputSynthResult(result, format, outputFile)
	}

	resourceNames := make([]string, 0, len(tmpl.Resources))
	for name := range tmpl.Resources {
		resourceNames = append(resourceNames, name)
	}
	sort.Strings(resourceNames)

	result := claudagent.SynthResult{
		Success:   true,
		Template:  *tmpl,
		Resources: resourceNames,
	}
	return outputSynthResult(result, format, outputFile)
}

// outputSynthResult reports failures on stderr and renders the template of a
// successful synthesis in the requested format.
func outputSynthResult(result claudagent.SynthResult, format, outputFile string) error {
	if !result.Success {
		for _, e := range result.Errors {
			fmt.Fprintln(os.Stderr, e)
		}
		return fmt.Errorf("synth failed")
	}

	data, err := renderTemplate(&result.Template, format)
	if err != nil {
		return err
	}

	return writeOutput(data, outputFile)
}

// synthesize loads the configuration and builds the template.
func synthesize(envFile string) (*claudagent.Template, error) {
	env, err := stack.MergedEnv(envFile)
	if err != nil {
		return nil, err
	}

	cfg, err := stack.FromEnv(env)
	if err != nil {
		return nil, err
	}

	return stack.Build(cfg)
}

func renderTemplate(tmpl *claudagent.Template, format string) ([]byte, error) {
	switch format {
	case "json":
		return template.ToJSON(tmpl)
	case "yaml":
		return template.ToYAML(tmpl)
	default:
		return nil, fmt.Errorf("unknown format: %s (use 'json' or 'yaml')", format)
	}
}

func writeOutput(data []byte, outputFile string) error {
	if outputFile == "" {
		fmt.Println(string(data))
		return nil
	}
	return os.WriteFile(outputFile, data, 0644)
}
