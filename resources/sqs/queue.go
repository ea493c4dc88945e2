// Package sqs contains the SQS resource types used by the claud agent stack.
package sqs

import (
	"github.com/hereya/aws-claud-agent/intrinsics"
)

// Queue represents an AWS::SQS::Queue resource.
//
// The Ref of a queue is its URL; the Arn attribute is its ARN.
type Queue struct {
	// QueueName is the physical queue name.
	QueueName any `json:"QueueName,omitempty"`

	// VisibilityTimeout is the visibility timeout in seconds.
	VisibilityTimeout int `json:"VisibilityTimeout,omitempty"`

	// MessageRetentionPeriod is how long SQS retains messages, in seconds.
	MessageRetentionPeriod int `json:"MessageRetentionPeriod,omitempty"`

	// ReceiveMessageWaitTimeSeconds enables long polling when > 0.
	ReceiveMessageWaitTimeSeconds int `json:"ReceiveMessageWaitTimeSeconds,omitempty"`

	// RedrivePolicy configures a dead-letter queue.
	RedrivePolicy *Queue_RedrivePolicy `json:"RedrivePolicy,omitempty"`

	// Tags are key-value pairs attached to the queue.
	Tags []intrinsics.Tag `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (Queue) ResourceType() string {
	return "AWS::SQS::Queue"
}

// Queue_RedrivePolicy routes failed messages to a dead-letter queue.
type Queue_RedrivePolicy struct {
	DeadLetterTargetArn any `json:"deadLetterTargetArn"`
	MaxReceiveCount     int `json:"maxReceiveCount"`
}
