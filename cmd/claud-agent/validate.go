package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	claudagent "github.com/hereya/aws-claud-agent"
	"github.com/hereya/aws-claud-agent/internal/validation"
)

// newValidateCmd creates the "validate" subcommand for linting the template.
func newValidateCmd() *cobra.Command {
	var (
		outputFormat string
		envFile      string
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Lint the synthesized template",
		Long: `Validate synthesizes the template and runs cfn-lint on it.

Warnings are reported but do not fail validation; errors do.

Examples:
    claud-agent validate
    claud-agent validate --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(envFile, outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")
	cmd.Flags().StringVar(&envFile, "env-file", "", "KEY=VALUE file overlaid over the environment")

	return cmd
}

func runValidate(envFile, format string) error {
	tmpl, err := synthesize(envFile)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	result, err := validation.Validate(tmpl)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	return outputValidateResult(*result, format)
}

func outputValidateResult(result claudagent.ValidateResult, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))

	case "text":
		for _, warnMsg := range result.Warnings {
			fmt.Printf("  WARNING: %s\n", warnMsg)
		}
		if result.Success {
			fmt.Printf("Validation passed: %d resources OK\n", result.Resources)
			return nil
		}

		fmt.Println("Validation FAILED:")
		for _, errMsg := range result.Errors {
			fmt.Printf("  ERROR: %s\n", errMsg)
		}

	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if !result.Success {
		os.Exit(1)
	}

	return nil
}
