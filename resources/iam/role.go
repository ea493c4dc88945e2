// Package iam contains the IAM resource types used by the claud agent stack.
package iam

// Role represents an AWS::IAM::Role resource.
type Role struct {
	// RoleName is the physical role name.
	RoleName any `json:"RoleName,omitempty"`

	// Description documents the role.
	Description string `json:"Description,omitempty"`

	// AssumeRolePolicyDocument is the trust policy.
	AssumeRolePolicyDocument any `json:"AssumeRolePolicyDocument"`

	// ManagedPolicyArns lists attached managed policies.
	ManagedPolicyArns []any `json:"ManagedPolicyArns,omitempty"`

	// Policies are inline policies embedded in the role.
	Policies []any `json:"Policies,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (Role) ResourceType() string {
	return "AWS::IAM::Role"
}

// Role_Policy is an inline policy attached to a role.
type Role_Policy struct {
	PolicyName     any `json:"PolicyName"`
	PolicyDocument any `json:"PolicyDocument"`
}
