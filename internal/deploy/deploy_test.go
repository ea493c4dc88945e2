package deploy

import (
	"context"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
	"github.com/aws/smithy-go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockAPI struct {
	describeErr error
	updateErr   error

	created []cloudformation.CreateStackInput
	updated []cloudformation.UpdateStackInput
	deleted []cloudformation.DeleteStackInput

	outputs []types.Output
}

func (m *mockAPI) CreateStack(_ context.Context, params *cloudformation.CreateStackInput, _ ...func(*cloudformation.Options)) (*cloudformation.CreateStackOutput, error) {
	m.created = append(m.created, *params)
	return &cloudformation.CreateStackOutput{StackId: aws.String("stack-id")}, nil
}

func (m *mockAPI) UpdateStack(_ context.Context, params *cloudformation.UpdateStackInput, _ ...func(*cloudformation.Options)) (*cloudformation.UpdateStackOutput, error) {
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	m.updated = append(m.updated, *params)
	return &cloudformation.UpdateStackOutput{StackId: aws.String("stack-id")}, nil
}

func (m *mockAPI) DeleteStack(_ context.Context, params *cloudformation.DeleteStackInput, _ ...func(*cloudformation.Options)) (*cloudformation.DeleteStackOutput, error) {
	m.deleted = append(m.deleted, *params)
	return &cloudformation.DeleteStackOutput{}, nil
}

func (m *mockAPI) DescribeStacks(_ context.Context, params *cloudformation.DescribeStacksInput, _ ...func(*cloudformation.Options)) (*cloudformation.DescribeStacksOutput, error) {
	if m.describeErr != nil {
		return nil, m.describeErr
	}
	return &cloudformation.DescribeStacksOutput{
		Stacks: []types.Stack{{
			StackName:   params.StackName,
			StackStatus: types.StackStatusCreateComplete,
			Outputs:     m.outputs,
		}},
	}, nil
}

func missingStackErr() error {
	return &smithy.GenericAPIError{
		Code:    "ValidationError",
		Message: "Stack with id claud-agent does not exist",
	}
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestDriver_Apply_CreatesMissingStack(t *testing.T) {
	api := &mockAPI{describeErr: missingStackErr()}
	d := New(api, quietLogger())

	err := d.Apply(context.Background(), "claud-agent", []byte("{}"))
	require.NoError(t, err)

	require.Len(t, api.created, 1)
	assert.Empty(t, api.updated)

	created := api.created[0]
	assert.Equal(t, "claud-agent", aws.ToString(created.StackName))
	assert.Equal(t, "{}", aws.ToString(created.TemplateBody))
	assert.NotEmpty(t, aws.ToString(created.ClientRequestToken))
	assert.Contains(t, created.Capabilities, types.CapabilityCapabilityNamedIam)
}

func TestDriver_Apply_UpdatesExistingStack(t *testing.T) {
	api := &mockAPI{}
	d := New(api, quietLogger())

	err := d.Apply(context.Background(), "claud-agent", []byte("{}"))
	require.NoError(t, err)

	assert.Empty(t, api.created)
	require.Len(t, api.updated, 1)
	assert.Equal(t, "claud-agent", aws.ToString(api.updated[0].StackName))
}

func TestDriver_Apply_NoUpdateIsNotAnError(t *testing.T) {
	api := &mockAPI{
		updateErr: &smithy.GenericAPIError{
			Code:    "ValidationError",
			Message: "No updates are to be performed.",
		},
	}
	d := New(api, quietLogger())

	err := d.Apply(context.Background(), "claud-agent", []byte("{}"))
	require.NoError(t, err)
	assert.Empty(t, api.updated)
}

func TestDriver_Destroy(t *testing.T) {
	api := &mockAPI{}
	d := New(api, quietLogger())

	err := d.Destroy(context.Background(), "claud-agent")
	require.NoError(t, err)
	require.Len(t, api.deleted, 1)
	assert.Equal(t, "claud-agent", aws.ToString(api.deleted[0].StackName))
}

func TestDriver_Destroy_MissingStackIsNoop(t *testing.T) {
	api := &mockAPI{describeErr: missingStackErr()}
	d := New(api, quietLogger())

	err := d.Destroy(context.Background(), "claud-agent")
	require.NoError(t, err)
	assert.Empty(t, api.deleted)
}

func TestDriver_Outputs(t *testing.T) {
	api := &mockAPI{
		outputs: []types.Output{
			{OutputKey: aws.String("InputQueueUrl"), OutputValue: aws.String("https://sqs.example/claud-input-queue")},
			{OutputKey: aws.String("FunctionName"), OutputValue: aws.String("claud-agent-claud-agent")},
		},
	}
	d := New(api, quietLogger())

	outputs, err := d.Outputs(context.Background(), "claud-agent")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"InputQueueUrl": "https://sqs.example/claud-input-queue",
		"FunctionName":  "claud-agent-claud-agent",
	}, outputs)
}

func TestDriver_Outputs_MissingStack(t *testing.T) {
	api := &mockAPI{describeErr: missingStackErr()}
	d := New(api, quietLogger())

	_, err := d.Outputs(context.Background(), "claud-agent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestStackErrorDetection(t *testing.T) {
	assert.True(t, isStackMissing(missingStackErr()))
	assert.False(t, isStackMissing(&smithy.GenericAPIError{Code: "AccessDenied", Message: "nope"}))
	assert.False(t, isStackMissing(context.Canceled))

	assert.True(t, isNoUpdate(&smithy.GenericAPIError{
		Code:    "ValidationError",
		Message: "No updates are to be performed.",
	}))
	assert.False(t, isNoUpdate(missingStackErr()))
}
