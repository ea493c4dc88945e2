package stack

import (
	"fmt"

	claudagent "github.com/hereya/aws-claud-agent"
	"github.com/hereya/aws-claud-agent/internal/template"
	"github.com/hereya/aws-claud-agent/intrinsics"
	"github.com/hereya/aws-claud-agent/resources/iam"
	"github.com/hereya/aws-claud-agent/resources/lambda"
	"github.com/hereya/aws-claud-agent/resources/logs"
	"github.com/hereya/aws-claud-agent/resources/s3"
	"github.com/hereya/aws-claud-agent/resources/sqs"
)

const (
	// inputQueueVisibilityMultiple follows the Lambda/SQS guidance: the queue
	// visibility timeout must cover several invocation attempts.
	inputQueueVisibilityMultiple = 6

	// outputQueueVisibility is short: consumers only read small result
	// notifications.
	outputQueueVisibility = 30

	// queueRetentionSeconds keeps messages for 14 days, the SQS maximum.
	queueRetentionSeconds = 14 * 24 * 60 * 60

	// receiveWaitSeconds enables long polling on both queues.
	receiveWaitSeconds = 20

	logRetentionDays = 30

	// Agent invocations run one job at a time.
	eventBatchSize = 1
)

// Logical resource names in the synthesized template.
const (
	ResInputBucket    = "InputBucket"
	ResOutputBucket   = "OutputBucket"
	ResInputQueue     = "InputQueue"
	ResOutputQueue    = "OutputQueue"
	ResAgentRole      = "AgentRole"
	ResAgentFunction  = "AgentFunction"
	ResAgentLogGroup  = "AgentLogGroup"
	ResQueueMapping   = "InputQueueMapping"
	ResConsumerPolicy = "ConsumerPolicy"
)

// Build synthesizes the CloudFormation template for the given configuration.
func Build(cfg *Config) (*claudagent.Template, error) {
	b := template.NewBuilder(fmt.Sprintf("claud agent stack %s (image %s)", cfg.StackName, cfg.Image.Repository))

	b.Add(ResInputBucket, bucket(cfg.InputBucketName()))
	b.Add(ResOutputBucket, bucket(cfg.OutputBucketName()))

	b.Add(ResInputQueue, sqs.Queue{
		QueueName:                     cfg.InputQueueName(),
		VisibilityTimeout:             inputQueueVisibilityMultiple * cfg.Timeout,
		MessageRetentionPeriod:        queueRetentionSeconds,
		ReceiveMessageWaitTimeSeconds: receiveWaitSeconds,
	})
	b.Add(ResOutputQueue, sqs.Queue{
		QueueName:                     cfg.OutputQueueName(),
		VisibilityTimeout:             outputQueueVisibility,
		MessageRetentionPeriod:        queueRetentionSeconds,
		ReceiveMessageWaitTimeSeconds: receiveWaitSeconds,
	})

	b.Add(ResAgentRole, agentRole())

	b.Add(ResAgentLogGroup, logs.LogGroup{
		LogGroupName:    "/aws/lambda/" + cfg.FunctionName(),
		RetentionInDays: logRetentionDays,
	})

	b.Add(ResAgentFunction, lambda.Function{
		FunctionName: cfg.FunctionName(),
		Description:  "Runs the claud agent against jobs from the input queue",
		PackageType:  "Image",
		Code:         lambda.Function_Code{ImageUri: cfg.ImageURI},
		Role:         intrinsics.GetAtt{Resource: ResAgentRole, Attribute: "Arn"},
		MemorySize:   cfg.MemorySize,
		Timeout:      cfg.Timeout,
		Environment: &lambda.Function_Environment{
			Variables: map[string]any{
				"INPUT_BUCKET":     intrinsics.Ref{Name: ResInputBucket},
				"OUTPUT_BUCKET":    intrinsics.Ref{Name: ResOutputBucket},
				"INPUT_QUEUE_URL":  intrinsics.Ref{Name: ResInputQueue},
				"OUTPUT_QUEUE_URL": intrinsics.Ref{Name: ResOutputQueue},
			},
		},
	})

	b.Add(ResQueueMapping, lambda.EventSourceMapping{
		EventSourceArn: intrinsics.GetAtt{Resource: ResInputQueue, Attribute: "Arn"},
		FunctionName:   intrinsics.Ref{Name: ResAgentFunction},
		BatchSize:      eventBatchSize,
	})

	b.Add(ResConsumerPolicy, iam.ManagedPolicy{
		ManagedPolicyName: cfg.ConsumerPolicyName(),
		Description:       "Minimal client access to the claud agent queues and buckets",
		PolicyDocument:    ConsumerPolicyDocument(),
	})

	// Stateful resources honor the deletion flag; everything else is always
	// deletable.
	deletionPolicy := "Delete"
	if cfg.RetainOnDelete {
		deletionPolicy = "Retain"
	}
	for _, name := range []string{ResInputBucket, ResOutputBucket, ResInputQueue, ResOutputQueue} {
		b.SetDeletionPolicy(name, deletionPolicy)
	}

	policyJSON, err := ConsumerPolicyJSON()
	if err != nil {
		return nil, fmt.Errorf("rendering consumer policy: %w", err)
	}

	b.AddOutput("InputBucketName", claudagent.Output{
		Description: "Bucket receiving agent job payloads",
		Value:       intrinsics.Ref{Name: ResInputBucket},
	})
	b.AddOutput("OutputBucketName", claudagent.Output{
		Description: "Bucket holding agent results",
		Value:       intrinsics.Ref{Name: ResOutputBucket},
	})
	b.AddOutput("InputQueueUrl", claudagent.Output{
		Description: "Queue that triggers the agent",
		Value:       intrinsics.Ref{Name: ResInputQueue},
	})
	b.AddOutput("OutputQueueUrl", claudagent.Output{
		Description: "Queue carrying result notifications",
		Value:       intrinsics.Ref{Name: ResOutputQueue},
	})
	b.AddOutput("FunctionName", claudagent.Output{
		Description: "Agent function name",
		Value:       intrinsics.Ref{Name: ResAgentFunction},
	})
	b.AddOutput("Region", claudagent.Output{
		Description: "Region the stack is deployed in",
		Value:       intrinsics.AWS_REGION,
	})
	b.AddOutput("ConsumerPolicyArn", claudagent.Output{
		Description: "Managed policy granting client access",
		Value:       intrinsics.Ref{Name: ResConsumerPolicy},
	})
	b.AddOutput("ConsumerPolicyJson", claudagent.Output{
		Description: "Consumer policy document with resolved ARNs",
		Value:       intrinsics.Sub{String: policyJSON},
	})

	return b.Build()
}

// bucket returns a hardened private bucket: versioned, encrypted, no public
// access.
func bucket(name string) s3.Bucket {
	return s3.Bucket{
		BucketName: name,
		BucketEncryption: &s3.Bucket_BucketEncryption{
			ServerSideEncryptionConfiguration: []s3.Bucket_ServerSideEncryptionRule{
				{ServerSideEncryptionByDefault: &s3.Bucket_ServerSideEncryptionByDefault{
					SSEAlgorithm: "AES256",
				}},
			},
		},
		PublicAccessBlockConfiguration: &s3.Bucket_PublicAccessBlockConfiguration{
			BlockPublicAcls:       true,
			BlockPublicPolicy:     true,
			IgnorePublicAcls:      true,
			RestrictPublicBuckets: true,
		},
		VersioningConfiguration: &s3.Bucket_VersioningConfiguration{Status: "Enabled"},
	}
}

// agentRole is the function execution role: logs, read input, write output,
// send results, and the receive rights the event source mapping needs.
func agentRole() iam.Role {
	return iam.Role{
		Description: "Execution role for the claud agent function",
		AssumeRolePolicyDocument: intrinsics.PolicyDocument{
			Version: "2012-10-17",
			Statement: []any{
				intrinsics.PolicyStatement{
					Effect:    "Allow",
					Principal: intrinsics.ServicePrincipal{"lambda.amazonaws.com"},
					Action:    "sts:AssumeRole",
				},
			},
		},
		Policies: []any{
			iam.Role_Policy{
				PolicyName: "agent-logs",
				PolicyDocument: intrinsics.PolicyDocument{
					Version: "2012-10-17",
					Statement: []any{
						intrinsics.PolicyStatement{
							Effect: "Allow",
							Action: []any{
								"logs:CreateLogGroup",
								"logs:CreateLogStream",
								"logs:PutLogEvents",
							},
							// The log group Arn attribute already ends in ":*".
							Resource: intrinsics.GetAtt{Resource: ResAgentLogGroup, Attribute: "Arn"},
						},
					},
				},
			},
			iam.Role_Policy{
				PolicyName: "agent-input-bucket",
				PolicyDocument: intrinsics.PolicyDocument{
					Version: "2012-10-17",
					Statement: []any{
						intrinsics.PolicyStatement{
							Effect: "Allow",
							Action: []any{"s3:GetObject", "s3:ListBucket"},
							Resource: []any{
								intrinsics.GetAtt{Resource: ResInputBucket, Attribute: "Arn"},
								intrinsics.Sub{String: "${" + ResInputBucket + ".Arn}/*"},
							},
						},
					},
				},
			},
			iam.Role_Policy{
				PolicyName: "agent-output-bucket",
				PolicyDocument: intrinsics.PolicyDocument{
					Version: "2012-10-17",
					Statement: []any{
						intrinsics.PolicyStatement{
							Effect:   "Allow",
							Action:   []any{"s3:PutObject", "s3:AbortMultipartUpload"},
							Resource: intrinsics.Sub{String: "${" + ResOutputBucket + ".Arn}/*"},
						},
					},
				},
			},
			iam.Role_Policy{
				PolicyName: "agent-queues",
				PolicyDocument: intrinsics.PolicyDocument{
					Version: "2012-10-17",
					Statement: []any{
						intrinsics.PolicyStatement{
							Effect:   "Allow",
							Action:   "sqs:SendMessage",
							Resource: intrinsics.GetAtt{Resource: ResOutputQueue, Attribute: "Arn"},
						},
						intrinsics.PolicyStatement{
							Effect: "Allow",
							Action: []any{
								"sqs:ReceiveMessage",
								"sqs:DeleteMessage",
								"sqs:GetQueueAttributes",
							},
							Resource: intrinsics.GetAtt{Resource: ResInputQueue, Attribute: "Arn"},
						},
					},
				},
			},
		},
	}
}
