package iam

// ManagedPolicy represents an AWS::IAM::ManagedPolicy resource.
// The claud agent stack provisions one holding the consumer grants so that
// client applications can attach it directly.
type ManagedPolicy struct {
	// ManagedPolicyName is the physical policy name.
	ManagedPolicyName any `json:"ManagedPolicyName,omitempty"`

	// Description documents the policy.
	Description string `json:"Description,omitempty"`

	// PolicyDocument is the permission document.
	PolicyDocument any `json:"PolicyDocument"`
}

// ResourceType returns the CloudFormation type.
func (ManagedPolicy) ResourceType() string {
	return "AWS::IAM::ManagedPolicy"
}
