// Package deploy drives the synthesized template through CloudFormation:
// create or update, delete, and output retrieval.
package deploy

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
	"github.com/aws/smithy-go"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// waitTimeout bounds the stack waiters; CloudFormation itself enforces a
// stricter per-resource timeout.
const waitTimeout = 60 * time.Minute

// API is the subset of the CloudFormation client the driver uses.
type API interface {
	CreateStack(ctx context.Context, params *cloudformation.CreateStackInput, optFns ...func(*cloudformation.Options)) (*cloudformation.CreateStackOutput, error)
	UpdateStack(ctx context.Context, params *cloudformation.UpdateStackInput, optFns ...func(*cloudformation.Options)) (*cloudformation.UpdateStackOutput, error)
	DeleteStack(ctx context.Context, params *cloudformation.DeleteStackInput, optFns ...func(*cloudformation.Options)) (*cloudformation.DeleteStackOutput, error)
	DescribeStacks(ctx context.Context, params *cloudformation.DescribeStacksInput, optFns ...func(*cloudformation.Options)) (*cloudformation.DescribeStacksOutput, error)
}

// Driver applies templates to CloudFormation.
type Driver struct {
	client API
	waiter waiter
	log    *logrus.Logger
}

// waiter abstracts the SDK stack waiters so tests can skip the wait.
type waiter interface {
	WaitForCreate(ctx context.Context, stackName string) error
	WaitForUpdate(ctx context.Context, stackName string) error
	WaitForDelete(ctx context.Context, stackName string) error
}

// New creates a driver over an existing CloudFormation client.
func New(client API, log *logrus.Logger) *Driver {
	d := &Driver{client: client, log: log}
	if d.log == nil {
		d.log = logrus.New()
	}
	if concrete, ok := client.(*cloudformation.Client); ok {
		d.waiter = sdkWaiter{client: concrete}
	} else {
		d.waiter = noopWaiter{}
	}
	return d
}

// NewFromConfig creates a driver from the ambient AWS configuration.
func NewFromConfig(ctx context.Context, log *logrus.Logger) (*Driver, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading AWS configuration: %w", err)
	}
	return New(cloudformation.NewFromConfig(cfg), log), nil
}

// Apply creates the stack, or updates it when it already exists. A no-op
// update is not an error. It blocks until CloudFormation settles.
func (d *Driver) Apply(ctx context.Context, stackName string, templateBody []byte) error {
	ctx, cancel := context.WithTimeout(ctx, waitTimeout)
	defer cancel()

	exists, err := d.stackExists(ctx, stackName)
	if err != nil {
		return err
	}

	token := uuid.NewString()
	if !exists {
		d.log.WithField("stack", stackName).Info("creating stack")
		_, err = d.client.CreateStack(ctx, &cloudformation.CreateStackInput{
			StackName:          aws.String(stackName),
			TemplateBody:       aws.String(string(templateBody)),
			ClientRequestToken: aws.String(token),
			Capabilities:       []types.Capability{types.CapabilityCapabilityNamedIam},
			OnFailure:          types.OnFailureRollback,
		})
		if err != nil {
			return fmt.Errorf("creating stack %s: %w", stackName, err)
		}
		if err := d.waiter.WaitForCreate(ctx, stackName); err != nil {
			return fmt.Errorf("waiting for stack %s: %w", stackName, err)
		}
		d.log.WithField("stack", stackName).Info("stack created")
		return nil
	}

	d.log.WithField("stack", stackName).Info("updating stack")
	_, err = d.client.UpdateStack(ctx, &cloudformation.UpdateStackInput{
		StackName:          aws.String(stackName),
		TemplateBody:       aws.String(string(templateBody)),
		ClientRequestToken: aws.String(token),
		Capabilities:       []types.Capability{types.CapabilityCapabilityNamedIam},
	})
	if err != nil {
		if isNoUpdate(err) {
			d.log.WithField("stack", stackName).Info("stack already up to date")
			return nil
		}
		return fmt.Errorf("updating stack %s: %w", stackName, err)
	}
	if err := d.waiter.WaitForUpdate(ctx, stackName); err != nil {
		return fmt.Errorf("waiting for stack %s: %w", stackName, err)
	}
	d.log.WithField("stack", stackName).Info("stack updated")
	return nil
}

// Destroy deletes the stack and blocks until the deletion settles. Deleting
// a stack that does not exist is a no-op.
func (d *Driver) Destroy(ctx context.Context, stackName string) error {
	ctx, cancel := context.WithTimeout(ctx, waitTimeout)
	defer cancel()

	exists, err := d.stackExists(ctx, stackName)
	if err != nil {
		return err
	}
	if !exists {
		d.log.WithField("stack", stackName).Info("stack does not exist, nothing to delete")
		return nil
	}

	d.log.WithField("stack", stackName).Info("deleting stack")
	_, err = d.client.DeleteStack(ctx, &cloudformation.DeleteStackInput{
		StackName:          aws.String(stackName),
		ClientRequestToken: aws.String(uuid.NewString()),
	})
	if err != nil {
		return fmt.Errorf("deleting stack %s: %w", stackName, err)
	}
	if err := d.waiter.WaitForDelete(ctx, stackName); err != nil {
		return fmt.Errorf("waiting for stack %s: %w", stackName, err)
	}
	d.log.WithField("stack", stackName).Info("stack deleted")
	return nil
}

// Outputs returns the stack outputs keyed by output name.
func (d *Driver) Outputs(ctx context.Context, stackName string) (map[string]string, error) {
	out, err := d.client.DescribeStacks(ctx, &cloudformation.DescribeStacksInput{
		StackName: aws.String(stackName),
	})
	if err != nil {
		if isStackMissing(err) {
			return nil, fmt.Errorf("stack %s does not exist", stackName)
		}
		return nil, fmt.Errorf("describing stack %s: %w", stackName, err)
	}
	if len(out.Stacks) == 0 {
		return nil, fmt.Errorf("stack %s does not exist", stackName)
	}

	outputs := make(map[string]string, len(out.Stacks[0].Outputs))
	for _, o := range out.Stacks[0].Outputs {
		outputs[aws.ToString(o.OutputKey)] = aws.ToString(o.OutputValue)
	}
	return outputs, nil
}

func (d *Driver) stackExists(ctx context.Context, stackName string) (bool, error) {
	_, err := d.client.DescribeStacks(ctx, &cloudformation.DescribeStacksInput{
		StackName: aws.String(stackName),
	})
	if err != nil {
		if isStackMissing(err) {
			return false, nil
		}
		return false, fmt.Errorf("describing stack %s: %w", stackName, err)
	}
	return true, nil
}

// isStackMissing detects the ValidationError CloudFormation returns for a
// DescribeStacks on a stack that does not exist.
func isStackMissing(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.ErrorCode() == "ValidationError" &&
		strings.Contains(apiErr.ErrorMessage(), "does not exist")
}

// isNoUpdate detects the error UpdateStack returns when the template is
// unchanged.
func isNoUpdate(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.ErrorCode() == "ValidationError" &&
		strings.Contains(apiErr.ErrorMessage(), "No updates are to be performed")
}

type sdkWaiter struct {
	client *cloudformation.Client
}

func (w sdkWaiter) WaitForCreate(ctx context.Context, stackName string) error {
	return cloudformation.NewStackCreateCompleteWaiter(w.client).Wait(ctx,
		&cloudformation.DescribeStacksInput{StackName: aws.String(stackName)}, waitTimeout)
}

func (w sdkWaiter) WaitForUpdate(ctx context.Context, stackName string) error {
	return cloudformation.NewStackUpdateCompleteWaiter(w.client).Wait(ctx,
		&cloudformation.DescribeStacksInput{StackName: aws.String(stackName)}, waitTimeout)
}

func (w sdkWaiter) WaitForDelete(ctx context.Context, stackName string) error {
	return cloudformation.NewStackDeleteCompleteWaiter(w.client).Wait(ctx,
		&cloudformation.DescribeStacksInput{StackName: aws.String(stackName)}, waitTimeout)
}

type noopWaiter struct{}

func (noopWaiter) WaitForCreate(context.Context, string) error { return nil }
func (noopWaiter) WaitForUpdate(context.Context, string) error { return nil }
func (noopWaiter) WaitForDelete(context.Context, string) error { return nil }
