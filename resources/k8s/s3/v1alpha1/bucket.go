package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// Bucket represents an ACK S3 Bucket resource.
// +kubebuilder:object:root=true
type Bucket struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   BucketSpec   `json:"spec,omitempty"`
	Status BucketStatus `json:"status,omitempty"`
}

// BucketSpec defines the desired state of an S3 Bucket.
type BucketSpec struct {
	// Name is the bucket name.
	Name string `json:"name"`

	// Encryption configures server-side encryption.
	Encryption *ServerSideEncryptionConfiguration `json:"encryption,omitempty"`

	// PublicAccessBlock blocks public access to the bucket.
	PublicAccessBlock *PublicAccessBlockConfiguration `json:"publicAccessBlock,omitempty"`

	// Versioning enables object versioning.
	Versioning *VersioningConfiguration `json:"versioning,omitempty"`

	// Tagging holds the bucket tag set.
	Tagging *Tagging `json:"tagging,omitempty"`
}

// BucketStatus defines the observed state of an S3 Bucket.
type BucketStatus struct {
	// ACKResourceMetadata contains ACK-specific metadata.
	ACKResourceMetadata *ACKResourceMetadata `json:"ackResourceMetadata,omitempty"`

	// Conditions represent the latest available observations.
	Conditions []*Condition `json:"conditions,omitempty"`

	// Location is the bucket location.
	Location *string `json:"location,omitempty"`
}

// ServerSideEncryptionConfiguration holds the encryption rules.
type ServerSideEncryptionConfiguration struct {
	Rules []*ServerSideEncryptionRule `json:"rules,omitempty"`
}

// ServerSideEncryptionRule is a single encryption rule.
type ServerSideEncryptionRule struct {
	ApplyServerSideEncryptionByDefault *ServerSideEncryptionByDefault `json:"applyServerSideEncryptionByDefault,omitempty"`
}

// ServerSideEncryptionByDefault selects the default encryption algorithm.
type ServerSideEncryptionByDefault struct {
	SSEAlgorithm *string `json:"sseAlgorithm,omitempty"`
}

// PublicAccessBlockConfiguration blocks public ACLs and policies.
type PublicAccessBlockConfiguration struct {
	BlockPublicACLs       *bool `json:"blockPublicACLs,omitempty"`
	BlockPublicPolicy     *bool `json:"blockPublicPolicy,omitempty"`
	IgnorePublicACLs      *bool `json:"ignorePublicACLs,omitempty"`
	RestrictPublicBuckets *bool `json:"restrictPublicBuckets,omitempty"`
}

// VersioningConfiguration enables or suspends versioning.
type VersioningConfiguration struct {
	// Status is "Enabled" or "Suspended".
	Status *string `json:"status,omitempty"`
}

// Tagging holds the bucket tag set.
type Tagging struct {
	TagSet []*Tag `json:"tagSet,omitempty"`
}

// Tag is a key-value pair.
type Tag struct {
	// Key is the tag key.
	Key *string `json:"key,omitempty"`

	// Value is the tag value.
	Value *string `json:"value,omitempty"`
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
