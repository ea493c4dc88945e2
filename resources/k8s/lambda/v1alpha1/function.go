package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// Function represents an ACK Lambda Function resource.
// +kubebuilder:object:root=true
type Function struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   FunctionSpec   `json:"spec,omitempty"`
	Status FunctionStatus `json:"status,omitempty"`
}

// FunctionSpec defines the desired state of a Lambda Function.
type FunctionSpec struct {
	// Name is the function name.
	Name string `json:"name"`

	// Description documents the function.
	Description *string `json:"description,omitempty"`

	// PackageType is "Image" for container-image functions.
	PackageType *string `json:"packageType,omitempty"`

	// Code locates the function code.
	Code *FunctionCode `json:"code,omitempty"`

	// Role is the ARN of the execution role.
	Role *string `json:"role,omitempty"`

	// RoleRef is a reference to an ACK Role resource.
	RoleRef *AWSResourceReferenceWrapper `json:"roleRef,omitempty"`

	// MemorySize is the memory in MB.
	MemorySize *int64 `json:"memorySize,omitempty"`

	// Timeout is the execution timeout in seconds.
	Timeout *int64 `json:"timeout,omitempty"`

	// Environment holds the function environment variables.
	Environment *Environment `json:"environment,omitempty"`
}

// FunctionStatus defines the observed state of a Lambda Function.
type FunctionStatus struct {
	// ACKResourceMetadata contains ACK-specific metadata.
	ACKResourceMetadata *ACKResourceMetadata `json:"ackResourceMetadata,omitempty"`

	// Conditions represent the latest available observations.
	Conditions []*Condition `json:"conditions,omitempty"`

	// State is the current state of the function.
	State *string `json:"state,omitempty"`

	// LastModified is when the function was last updated.
	LastModified *string `json:"lastModified,omitempty"`
}

// FunctionCode locates the function code.
type FunctionCode struct {
	// ImageURI is the container image URI.
	ImageURI *string `json:"imageURI,omitempty"`

	// S3Bucket and S3Key locate zip-packaged code.
	S3Bucket *string `json:"s3Bucket,omitempty"`
	S3Key    *string `json:"s3Key,omitempty"`
}

// Environment holds environment variables.
type Environment struct {
	Variables map[string]*string `json:"variables,omitempty"`
}

// AWSResourceReferenceWrapper wraps an AWS resource reference.
type AWSResourceReferenceWrapper struct {
	// From contains the reference information.
	From *AWSResourceReference `json:"from,omitempty"`
}

// AWSResourceReference references an AWS resource.
type AWSResourceReference struct {
	// Name is the name of the referenced resource.
	Name *string `json:"name,omitempty"`

	// Namespace is the namespace of the referenced resource.
	Namespace *string `json:"namespace,omitempty"`
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
