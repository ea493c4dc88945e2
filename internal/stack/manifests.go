package stack

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/yaml"

	iamv1alpha1 "github.com/hereya/aws-claud-agent/resources/k8s/iam/v1alpha1"
	lambdav1alpha1 "github.com/hereya/aws-claud-agent/resources/k8s/lambda/v1alpha1"
	s3v1alpha1 "github.com/hereya/aws-claud-agent/resources/k8s/s3/v1alpha1"
	sqsv1alpha1 "github.com/hereya/aws-claud-agent/resources/k8s/sqs/v1alpha1"

	"github.com/hereya/aws-claud-agent/intrinsics"
)

// manifestNamespace is where the ACK controllers watch for resources.
const manifestNamespace = "ack-system"

// Manifests renders the same topology as a multi-document YAML manifest for
// AWS Controllers for Kubernetes. Queue and bucket names are deterministic,
// so the policy ARNs are computed statically; queue ARNs wildcard the region
// and account, which are unknown at synthesis time. The event source
// mapping's queue ARN carries the same wildcards and must be pinned to the
// target account before applying. The log group is not rendered: there is no
// ACK controller for it, and Lambda creates the group on first invocation.
func Manifests(cfg *Config) ([]byte, error) {
	roleName := cfg.ResourceName(RoleFunction)

	agentPolicy, err := staticAgentPolicyJSON(cfg)
	if err != nil {
		return nil, fmt.Errorf("rendering agent policy: %w", err)
	}
	consumerPolicy, err := staticConsumerPolicyJSON(cfg)
	if err != nil {
		return nil, fmt.Errorf("rendering consumer policy: %w", err)
	}
	trustPolicy, err := json.Marshal(intrinsics.PolicyDocument{
		Version: "2012-10-17",
		Statement: []any{
			intrinsics.PolicyStatement{
				Effect:    "Allow",
				Principal: intrinsics.ServicePrincipal{"lambda.amazonaws.com"},
				Action:    "sts:AssumeRole",
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("rendering trust policy: %w", err)
	}

	docs := []any{
		ackBucket(cfg.InputBucketName()),
		ackBucket(cfg.OutputBucketName()),
		ackQueue(cfg.InputQueueName(), inputQueueVisibilityMultiple*cfg.Timeout),
		ackQueue(cfg.OutputQueueName(), outputQueueVisibility),
		iamv1alpha1.Role{
			TypeMeta:   metav1.TypeMeta{APIVersion: "iam.services.k8s.aws/v1alpha1", Kind: "Role"},
			ObjectMeta: objectMeta(roleName),
			Spec: iamv1alpha1.RoleSpec{
				Name:                     roleName,
				Description:              strPtr("Execution role for the claud agent function"),
				AssumeRolePolicyDocument: strPtr(string(trustPolicy)),
				Policies:                 []*string{strPtr(agentPolicy)},
			},
		},
		lambdav1alpha1.Function{
			TypeMeta:   metav1.TypeMeta{APIVersion: "lambda.services.k8s.aws/v1alpha1", Kind: "Function"},
			ObjectMeta: objectMeta(cfg.FunctionName()),
			Spec: lambdav1alpha1.FunctionSpec{
				Name:        cfg.FunctionName(),
				Description: strPtr("Runs the claud agent against jobs from the input queue"),
				PackageType: strPtr("Image"),
				Code:        &lambdav1alpha1.FunctionCode{ImageURI: strPtr(cfg.ImageURI)},
				RoleRef: &lambdav1alpha1.AWSResourceReferenceWrapper{
					From: &lambdav1alpha1.AWSResourceReference{Name: strPtr(roleName)},
				},
				MemorySize: int64Ptr(int64(cfg.MemorySize)),
				Timeout:    int64Ptr(int64(cfg.Timeout)),
				Environment: &lambdav1alpha1.Environment{
					Variables: map[string]*string{
						"INPUT_BUCKET":      strPtr(cfg.InputBucketName()),
						"OUTPUT_BUCKET":     strPtr(cfg.OutputBucketName()),
						"INPUT_QUEUE_NAME":  strPtr(cfg.InputQueueName()),
						"OUTPUT_QUEUE_NAME": strPtr(cfg.OutputQueueName()),
					},
				},
			},
		},
		lambdav1alpha1.EventSourceMapping{
			TypeMeta:   metav1.TypeMeta{APIVersion: "lambda.services.k8s.aws/v1alpha1", Kind: "EventSourceMapping"},
			ObjectMeta: objectMeta(cfg.FunctionName() + "-mapping"),
			Spec: lambdav1alpha1.EventSourceMappingSpec{
				EventSourceARN: strPtr("arn:aws:sqs:*:*:" + cfg.InputQueueName()),
				FunctionRef: &lambdav1alpha1.AWSResourceReferenceWrapper{
					From: &lambdav1alpha1.AWSResourceReference{Name: strPtr(cfg.FunctionName())},
				},
				BatchSize: int64Ptr(eventBatchSize),
			},
		},
		iamv1alpha1.Policy{
			TypeMeta:   metav1.TypeMeta{APIVersion: "iam.services.k8s.aws/v1alpha1", Kind: "Policy"},
			ObjectMeta: objectMeta(cfg.ConsumerPolicyName()),
			Spec: iamv1alpha1.PolicySpec{
				Name:           cfg.ConsumerPolicyName(),
				Description:    strPtr("Minimal client access to the claud agent queues and buckets"),
				PolicyDocument: strPtr(consumerPolicy),
			},
		},
	}

	var buf bytes.Buffer
	for i, doc := range docs {
		data, err := yaml.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("rendering manifest %d: %w", i, err)
		}
		if i > 0 {
			buf.WriteString("---\n")
		}
		buf.Write(data)
	}
	return buf.Bytes(), nil
}

func ackBucket(name string) s3v1alpha1.Bucket {
	return s3v1alpha1.Bucket{
		TypeMeta:   metav1.TypeMeta{APIVersion: "s3.services.k8s.aws/v1alpha1", Kind: "Bucket"},
		ObjectMeta: objectMeta(name),
		Spec: s3v1alpha1.BucketSpec{
			Name: name,
			Encryption: &s3v1alpha1.ServerSideEncryptionConfiguration{
				Rules: []*s3v1alpha1.ServerSideEncryptionRule{
					{ApplyServerSideEncryptionByDefault: &s3v1alpha1.ServerSideEncryptionByDefault{
						SSEAlgorithm: strPtr("AES256"),
					}},
				},
			},
			PublicAccessBlock: &s3v1alpha1.PublicAccessBlockConfiguration{
				BlockPublicACLs:       boolPtr(true),
				BlockPublicPolicy:     boolPtr(true),
				IgnorePublicACLs:      boolPtr(true),
				RestrictPublicBuckets: boolPtr(true),
			},
			Versioning: &s3v1alpha1.VersioningConfiguration{Status: strPtr("Enabled")},
		},
	}
}

func ackQueue(name string, visibilityTimeout int) sqsv1alpha1.Queue {
	return sqsv1alpha1.Queue{
		TypeMeta:   metav1.TypeMeta{APIVersion: "sqs.services.k8s.aws/v1alpha1", Kind: "Queue"},
		ObjectMeta: objectMeta(name),
		Spec: sqsv1alpha1.QueueSpec{
			QueueName:                     name,
			VisibilityTimeout:             strPtr(strconv.Itoa(visibilityTimeout)),
			MessageRetentionPeriod:        strPtr(strconv.Itoa(queueRetentionSeconds)),
			ReceiveMessageWaitTimeSeconds: strPtr(strconv.Itoa(receiveWaitSeconds)),
		},
	}
}

// staticARNReplacer maps the Fn::Sub ARN templates to statically derivable
// ARNs. Bucket ARNs are exact; queue ARNs wildcard region and account.
func staticARNReplacer(cfg *Config) *strings.Replacer {
	return strings.NewReplacer(
		"${"+ResInputBucket+".Arn}", "arn:aws:s3:::"+cfg.InputBucketName(),
		"${"+ResOutputBucket+".Arn}", "arn:aws:s3:::"+cfg.OutputBucketName(),
		"${"+ResInputQueue+".Arn}", "arn:aws:sqs:*:*:"+cfg.InputQueueName(),
		"${"+ResOutputQueue+".Arn}", "arn:aws:sqs:*:*:"+cfg.OutputQueueName(),
	)
}

// staticConsumerPolicyJSON is the consumer policy with static ARNs, used in
// the ACK rendition where CloudFormation substitution is unavailable.
func staticConsumerPolicyJSON(cfg *Config) (string, error) {
	doc, err := ConsumerPolicyJSON()
	if err != nil {
		return "", err
	}
	return staticARNReplacer(cfg).Replace(doc), nil
}

// staticAgentPolicyJSON grants the function role its runtime rights with
// static ARNs.
func staticAgentPolicyJSON(cfg *Config) (string, error) {
	doc := intrinsics.PolicyDocument{
		Version: "2012-10-17",
		Statement: []any{
			intrinsics.PolicyStatement{
				Effect: "Allow",
				Action: []any{
					"logs:CreateLogGroup",
					"logs:CreateLogStream",
					"logs:PutLogEvents",
				},
				Resource: "arn:aws:logs:*:*:log-group:/aws/lambda/" + cfg.FunctionName() + ":*",
			},
			intrinsics.PolicyStatement{
				Effect: "Allow",
				Action: []any{"s3:GetObject", "s3:ListBucket"},
				Resource: []any{
					"arn:aws:s3:::" + cfg.InputBucketName(),
					"arn:aws:s3:::" + cfg.InputBucketName() + "/*",
				},
			},
			intrinsics.PolicyStatement{
				Effect:   "Allow",
				Action:   []any{"s3:PutObject", "s3:AbortMultipartUpload"},
				Resource: "arn:aws:s3:::" + cfg.OutputBucketName() + "/*",
			},
			intrinsics.PolicyStatement{
				Effect:   "Allow",
				Action:   "sqs:SendMessage",
				Resource: "arn:aws:sqs:*:*:" + cfg.OutputQueueName(),
			},
			intrinsics.PolicyStatement{
				Effect: "Allow",
				Action: []any{
					"sqs:ReceiveMessage",
					"sqs:DeleteMessage",
					"sqs:GetQueueAttributes",
				},
				Resource: "arn:aws:sqs:*:*:" + cfg.InputQueueName(),
			},
		},
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func objectMeta(name string) metav1.ObjectMeta {
	return metav1.ObjectMeta{Name: name, Namespace: manifestNamespace}
}

func strPtr(s string) *string { return &s }

func int64Ptr(i int64) *int64 { return &i }

func boolPtr(b bool) *bool { return &b }
