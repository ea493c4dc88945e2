package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// Queue represents an ACK SQS Queue resource.
// +kubebuilder:object:root=true
type Queue struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   QueueSpec   `json:"spec,omitempty"`
	Status QueueStatus `json:"status,omitempty"`
}

// QueueSpec defines the desired state of an SQS Queue.
// Attribute values are strings, matching the SQS attribute API.
type QueueSpec struct {
	// QueueName is the queue name.
	QueueName string `json:"queueName"`

	// VisibilityTimeout is the visibility timeout in seconds.
	VisibilityTimeout *string `json:"visibilityTimeout,omitempty"`

	// MessageRetentionPeriod is how long SQS retains messages, in seconds.
	MessageRetentionPeriod *string `json:"messageRetentionPeriod,omitempty"`

	// ReceiveMessageWaitTimeSeconds enables long polling when > 0.
	ReceiveMessageWaitTimeSeconds *string `json:"receiveMessageWaitTimeSeconds,omitempty"`

	// Tags are key-value pairs to categorize resources.
	Tags map[string]*string `json:"tags,omitempty"`
}

// QueueStatus defines the observed state of an SQS Queue.
type QueueStatus struct {
	// ACKResourceMetadata contains ACK-specific metadata.
	ACKResourceMetadata *ACKResourceMetadata `json:"ackResourceMetadata,omitempty"`

	// Conditions represent the latest available observations.
	Conditions []*Condition `json:"conditions,omitempty"`

	// QueueURL is the URL of the created queue.
	QueueURL *string `json:"queueURL,omitempty"`

	// QueueID is the stable and unique ID of the queue.
	QueueID *string `json:"queueID,omitempty"`
}

// ACKResourceMetadata contains ACK-specific metadata.
type ACKResourceMetadata struct {
	// ARN is the Amazon Resource Name.
	ARN *string `json:"arn,omitempty"`

	// OwnerAccountID is the AWS account ID of the resource owner.
	OwnerAccountID *string `json:"ownerAccountID,omitempty"`

	// Region is the AWS region.
	Region *string `json:"region,omitempty"`
}

// Condition represents a condition.
type Condition struct {
	// Type is the type of condition.
	Type *string `json:"type,omitempty"`

	// Status is the status of the condition.
	Status *string `json:"status,omitempty"`

	// LastTransitionTime is when the condition last transitioned.
	LastTransitionTime *metav1.Time `json:"lastTransitionTime,omitempty"`

	// Message is a human-readable message.
	Message *string `json:"message,omitempty"`

	// Reason is a brief reason for the condition.
	Reason *string `json:"reason,omitempty"`
}
