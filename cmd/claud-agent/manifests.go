package main

import (
	"github.com/spf13/cobra"

	"github.com/hereya/aws-claud-agent/internal/stack"
)

func newManifestsCmd() *cobra.Command {
	var (
		outputFile string
		envFile    string
	)

	cmd := &cobra.Command{
		Use:   "manifests",
		Short: "Generate Kubernetes manifests for ACK controllers",
		Long: `Manifests renders the stack as Kubernetes resources for AWS Controllers
for Kubernetes (ACK), as an alternative to CloudFormation.

Examples:
    claud-agent manifests
    claud-agent manifests -o stack.yaml
    claud-agent manifests | kubectl apply -f -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runManifests(envFile, outputFile)
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVar(&envFile, "env-file", "", "KEY=VALUE file overlaid over the environment")

	return cmd
}

func runManifests(envFile, outputFile string) error {
	env, err := stack.MergedEnv(envFile)
	if err != nil {
		return err
	}

	cfg, err := stack.FromEnv(env)
	if err != nil {
		return err
	}

	data, err := stack.Manifests(cfg)
	if err != nil {
		return err
	}

	return writeOutput(data, outputFile)
}
