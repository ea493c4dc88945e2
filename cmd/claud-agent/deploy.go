package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hereya/aws-claud-agent/internal/deploy"
	"github.com/hereya/aws-claud-agent/internal/stack"
	"github.com/hereya/aws-claud-agent/internal/template"
)

func newDeployCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Create or update the CloudFormation stack",
		Long: `Deploy synthesizes the template and applies it through CloudFormation,
creating the stack on first run and updating it afterwards.

Credentials and region come from the standard AWS configuration chain.

Examples:
    claud-agent deploy
    claud-agent deploy --env-file stack.env`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeploy(cmd, envFile)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "KEY=VALUE file overlaid over the environment")

	return cmd
}

func runDeploy(cmd *cobra.Command, envFile string) error {
	cfg, err := loadStackConfig(envFile)
	if err != nil {
		return err
	}

	tmpl, err := stack.Build(cfg)
	if err != nil {
		return err
	}
	body, err := template.ToJSON(tmpl)
	if err != nil {
		return err
	}

	driver, err := deploy.NewFromConfig(cmd.Context(), nil)
	if err != nil {
		return err
	}

	return driver.Apply(cmd.Context(), cfg.StackName, body)
}

func newDestroyCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "destroy",
		Short: "Delete the CloudFormation stack",
		Long: `Destroy deletes the stack. With RETAIN_ON_DELETE=true the buckets and
queues survive the deletion.

Examples:
    claud-agent destroy`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stackName, err := stackNameFromEnv(envFile)
			if err != nil {
				return err
			}

			driver, err := deploy.NewFromConfig(cmd.Context(), nil)
			if err != nil {
				return err
			}

			return driver.Destroy(cmd.Context(), stackName)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "KEY=VALUE file overlaid over the environment")

	return cmd
}

func newOutputsCmd() *cobra.Command {
	var (
		outputFormat string
		envFile      string
	)

	cmd := &cobra.Command{
		Use:   "outputs",
		Short: "Show the deployed stack's outputs",
		Long: `Outputs prints the stack outputs: bucket names, queue URLs, the function
name, the region, and the consumer policy.

Examples:
    claud-agent outputs
    claud-agent outputs --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOutputs(cmd, envFile, outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "env", "Output format: env or json")
	cmd.Flags().StringVar(&envFile, "env-file", "", "KEY=VALUE file overlaid over the environment")

	return cmd
}

func runOutputs(cmd *cobra.Command, envFile, format string) error {
	stackName, err := stackNameFromEnv(envFile)
	if err != nil {
		return err
	}

	driver, err := deploy.NewFromConfig(cmd.Context(), nil)
	if err != nil {
		return err
	}

	outputs, err := driver.Outputs(cmd.Context(), stackName)
	if err != nil {
		return err
	}

	switch format {
	case "json":
		data, err := json.MarshalIndent(outputs, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))

	case "env":
		keys := make([]string, 0, len(outputs))
		for key := range outputs {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Printf("%s=%s\n", key, outputs[key])
		}

	default:
		return fmt.Errorf("unknown format: %s (use 'env' or 'json')", format)
	}

	return nil
}

func loadStackConfig(envFile string) (*stack.Config, error) {
	env, err := stack.MergedEnv(envFile)
	if err != nil {
		return nil, err
	}
	return stack.FromEnv(env)
}

// stackNameFromEnv resolves the stack name alone; destroy and outputs do not
// need the full configuration.
func stackNameFromEnv(envFile string) (string, error) {
	env, err := stack.MergedEnv(envFile)
	if err != nil {
		return "", err
	}
	if name := strings.TrimSpace(env[stack.EnvStackName]); name != "" {
		return name, nil
	}
	return stack.DefaultStackName, nil
}
