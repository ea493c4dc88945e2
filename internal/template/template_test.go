package template

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	claudagent "github.com/hereya/aws-claud-agent"
	"github.com/hereya/aws-claud-agent/intrinsics"
	"github.com/hereya/aws-claud-agent/resources/lambda"
	"github.com/hereya/aws-claud-agent/resources/s3"
	"github.com/hereya/aws-claud-agent/resources/sqs"
)

func TestBuilder_Build(t *testing.T) {
	b := NewBuilder("test stack")
	b.Add("InputBucket", s3.Bucket{BucketName: "claud-input-demo"})
	b.Add("InputQueue", sqs.Queue{QueueName: "claud-input-queue-demo", VisibilityTimeout: 1800})
	b.Add("AgentFunction", lambda.Function{
		FunctionName: "claud-agent-demo",
		PackageType:  "Image",
		Code:         lambda.Function_Code{ImageUri: "example.com/agent:latest"},
		Environment: &lambda.Function_Environment{
			Variables: map[string]any{
				"INPUT_QUEUE_URL": intrinsics.Ref{Name: "InputQueue"},
			},
		},
	})
	b.AddOutput("InputBucketName", claudagent.Output{
		Description: "Input bucket",
		Value:       "claud-input-demo",
	})

	tmpl, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, "2010-09-09", tmpl.AWSTemplateFormatVersion)
	assert.Equal(t, "test stack", tmpl.Description)
	assert.Len(t, tmpl.Resources, 3)

	fn := tmpl.Resources["AgentFunction"]
	assert.Equal(t, "AWS::Lambda::Function", fn.Type)
	env := fn.Properties["Environment"].(map[string]any)
	vars := env["Variables"].(map[string]any)
	assert.Equal(t, map[string]any{"Ref": "InputQueue"}, vars["INPUT_QUEUE_URL"])

	assert.Equal(t, "claud-input-demo", tmpl.Outputs["InputBucketName"].Value)
}

func TestBuilder_SetDeletionPolicy(t *testing.T) {
	b := NewBuilder("test stack")
	b.Add("InputBucket", s3.Bucket{BucketName: "claud-input-demo"})
	b.SetDeletionPolicy("InputBucket", "Retain")
	b.SetDeletionPolicy("NoSuchResource", "Retain")

	tmpl, err := b.Build()
	require.NoError(t, err)

	def := tmpl.Resources["InputBucket"]
	assert.Equal(t, "Retain", def.DeletionPolicy)
	assert.Equal(t, "Retain", def.UpdateReplacePolicy)
}

func TestBuilder_NormalizesOutputIntrinsics(t *testing.T) {
	b := NewBuilder("test stack")
	b.Add("InputQueue", sqs.Queue{QueueName: "claud-input-queue-demo"})
	b.AddOutput("InputQueueUrl", claudagent.Output{
		Value: intrinsics.Ref{Name: "InputQueue"},
	})
	b.AddOutput("Region", claudagent.Output{Value: intrinsics.AWS_REGION})

	tmpl, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"Ref": "InputQueue"}, tmpl.Outputs["InputQueueUrl"].Value)
	assert.Equal(t, map[string]any{"Ref": "AWS::Region"}, tmpl.Outputs["Region"].Value)
}

func TestDependencies(t *testing.T) {
	tests := []struct {
		name     string
		props    any
		expected []string
	}{
		{
			name:     "ref",
			props:    map[string]any{"FunctionName": map[string]any{"Ref": "AgentFunction"}},
			expected: []string{"AgentFunction"},
		},
		{
			name: "getatt",
			props: map[string]any{
				"EventSourceArn": map[string]any{"Fn::GetAtt": []any{"InputQueue", "Arn"}},
			},
			expected: []string{"InputQueue"},
		},
		{
			name: "sub string",
			props: map[string]any{
				"LogGroupName": map[string]any{"Fn::Sub": "/aws/lambda/${AgentFunction}"},
			},
			expected: []string{"AgentFunction"},
		},
		{
			name: "pseudo parameters excluded",
			props: map[string]any{
				"Region": map[string]any{"Ref": "AWS::Region"},
				"Name":   map[string]any{"Fn::Sub": "${AWS::StackName}-agent"},
			},
			expected: []string{},
		},
		{
			name: "sub map shadows references",
			props: map[string]any{
				"Value": map[string]any{
					"Fn::Sub": []any{
						"${Prefix}-${InputBucket.Arn}",
						map[string]any{"Prefix": "claud"},
					},
				},
			},
			expected: []string{"InputBucket"},
		},
		{
			name: "nested and deduplicated",
			props: map[string]any{
				"Statement": []any{
					map[string]any{"Resource": map[string]any{"Fn::GetAtt": []any{"InputBucket", "Arn"}}},
					map[string]any{"Resource": map[string]any{"Fn::Sub": "${InputBucket.Arn}/*"}},
				},
			},
			expected: []string{"InputBucket"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ElementsMatch(t, tt.expected, Dependencies(tt.props))
		})
	}
}

func TestBuilder_CycleDetection(t *testing.T) {
	b := NewBuilder("test stack")
	b.Add("A", lambda.Function{
		FunctionName: intrinsics.Ref{Name: "B"},
		Code:         lambda.Function_Code{ImageUri: "x"},
	})
	b.Add("B", lambda.Function{
		FunctionName: intrinsics.Ref{Name: "A"},
		Code:         lambda.Function_Code{ImageUri: "x"},
	})

	_, err := b.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circular dependency")
}

func TestToJSONAndToYAML(t *testing.T) {
	b := NewBuilder("test stack")
	b.Add("InputBucket", s3.Bucket{BucketName: "claud-input-demo"})

	tmpl, err := b.Build()
	require.NoError(t, err)

	jsonData, err := ToJSON(tmpl)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(jsonData, &parsed))
	assert.Contains(t, parsed, "Resources")

	yamlData, err := ToYAML(tmpl)
	require.NoError(t, err)
	assert.Contains(t, string(yamlData), "AWS::S3::Bucket")
}
