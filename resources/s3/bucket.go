// Package s3 contains the S3 resource types used by the claud agent stack.
package s3

import (
	"github.com/hereya/aws-claud-agent/intrinsics"
)

// Bucket represents an AWS::S3::Bucket resource.
type Bucket struct {
	// BucketName is the physical bucket name. Must be globally unique and lowercase.
	BucketName any `json:"BucketName,omitempty"`

	// BucketEncryption configures server-side encryption.
	BucketEncryption *Bucket_BucketEncryption `json:"BucketEncryption,omitempty"`

	// PublicAccessBlockConfiguration blocks public access to the bucket.
	PublicAccessBlockConfiguration *Bucket_PublicAccessBlockConfiguration `json:"PublicAccessBlockConfiguration,omitempty"`

	// VersioningConfiguration enables object versioning.
	VersioningConfiguration *Bucket_VersioningConfiguration `json:"VersioningConfiguration,omitempty"`

	// Tags are key-value pairs attached to the bucket.
	Tags []intrinsics.Tag `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (Bucket) ResourceType() string {
	return "AWS::S3::Bucket"
}

// Bucket_BucketEncryption configures default server-side encryption.
type Bucket_BucketEncryption struct {
	ServerSideEncryptionConfiguration []Bucket_ServerSideEncryptionRule `json:"ServerSideEncryptionConfiguration"`
}

// Bucket_ServerSideEncryptionRule is a single encryption rule.
type Bucket_ServerSideEncryptionRule struct {
	ServerSideEncryptionByDefault *Bucket_ServerSideEncryptionByDefault `json:"ServerSideEncryptionByDefault,omitempty"`
	BucketKeyEnabled              bool                                  `json:"BucketKeyEnabled,omitempty"`
}

// Bucket_ServerSideEncryptionByDefault selects the default encryption algorithm.
type Bucket_ServerSideEncryptionByDefault struct {
	SSEAlgorithm   string `json:"SSEAlgorithm"`
	KMSMasterKeyID any    `json:"KMSMasterKeyID,omitempty"`
}

// Bucket_PublicAccessBlockConfiguration blocks public ACLs and policies.
type Bucket_PublicAccessBlockConfiguration struct {
	BlockPublicAcls       bool `json:"BlockPublicAcls"`
	BlockPublicPolicy     bool `json:"BlockPublicPolicy"`
	IgnorePublicAcls      bool `json:"IgnorePublicAcls"`
	RestrictPublicBuckets bool `json:"RestrictPublicBuckets"`
}

// Bucket_VersioningConfiguration enables or suspends versioning.
type Bucket_VersioningConfiguration struct {
	// Status is "Enabled" or "Suspended".
	Status string `json:"Status"`
}
