// Command claud-agent synthesizes and deploys the AWS stack for the claud
// agent: input/output buckets, input/output queues, and the container-image
// Lambda function wired between them.
//
// Usage:
//
//	claud-agent synth                 Generate CloudFormation template
//	claud-agent validate              Lint the synthesized template
//	claud-agent deploy                Create or update the stack
//	claud-agent outputs               Show stack outputs
//	claud-agent version               Show version
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "claud-agent",
		Short: "Declare and deploy the claud agent AWS stack",
		Long: `claud-agent declares the agent's AWS topology and synthesizes it to a
CloudFormation template.

Configuration comes from the environment; only the container image is
required:

    IMAGE_URI=123456789012.dkr.ecr.us-east-1.amazonaws.com/claud-agent:v1 \
        claud-agent synth

CloudFormation provisions the resources:

    claud-agent deploy`,
	}

	rootCmd.AddCommand(
		newSynthCmd(),
		newValidateCmd(),
		newDiffCmd(),
		newGraphCmd(),
		newManifestsCmd(),
		newWatchCmd(),
		newDeployCmd(),
		newDestroyCmd(),
		newOutputsCmd(),
		newVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("claud-agent %s\n", getVersion())
		},
	}
}
