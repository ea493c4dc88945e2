package stack

import (
	"encoding/json"

	"github.com/hereya/aws-claud-agent/intrinsics"
)

// grant is one consumer access grant: actions on Fn::Sub ARN templates over
// the stack's logical resource names.
type grant struct {
	sid       string
	actions   []string
	resources []string
}

// consumerGrants are the four minimal rights a client application needs:
// submit work and collect results, nothing else.
func consumerGrants() []grant {
	return []grant{
		{
			sid:       "WriteInputBucket",
			actions:   []string{"s3:PutObject", "s3:AbortMultipartUpload"},
			resources: []string{"${InputBucket.Arn}/*"},
		},
		{
			sid:       "SendInputQueue",
			actions:   []string{"sqs:SendMessage", "sqs:GetQueueAttributes"},
			resources: []string{"${InputQueue.Arn}"},
		},
		{
			sid:       "ReadOutputBucket",
			actions:   []string{"s3:GetObject", "s3:ListBucket"},
			resources: []string{"${OutputBucket.Arn}", "${OutputBucket.Arn}/*"},
		},
		{
			sid:       "ReceiveOutputQueue",
			actions:   []string{"sqs:ReceiveMessage", "sqs:DeleteMessage", "sqs:GetQueueAttributes"},
			resources: []string{"${OutputQueue.Arn}"},
		},
	}
}

// ConsumerPolicyDocument is the consumer policy for the provisioned managed
// policy: each ARN template is wrapped in Fn::Sub so CloudFormation resolves
// it against the stack's resources.
func ConsumerPolicyDocument() intrinsics.PolicyDocument {
	doc := intrinsics.NewPolicyDocument()
	for _, g := range consumerGrants() {
		resources := make([]any, len(g.resources))
		for i, r := range g.resources {
			resources[i] = intrinsics.Sub{String: r}
		}
		doc.Statement = append(doc.Statement, intrinsics.PolicyStatement{
			Sid:      g.sid,
			Effect:   "Allow",
			Action:   toAny(g.actions),
			Resource: resources,
		})
	}
	return doc
}

// ConsumerPolicyJSON is the same document rendered as a JSON string with the
// ${...} ARN templates left in place. Wrapped in a single Fn::Sub it becomes
// the ConsumerPolicyJson stack output.
func ConsumerPolicyJSON() (string, error) {
	doc := intrinsics.NewPolicyDocument()
	for _, g := range consumerGrants() {
		doc.Statement = append(doc.Statement, intrinsics.PolicyStatement{
			Sid:      g.sid,
			Effect:   "Allow",
			Action:   toAny(g.actions),
			Resource: toAny(g.resources),
		})
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
