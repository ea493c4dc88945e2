// Package intrinsics provides CloudFormation intrinsic functions.
// This file contains IAM policy document types and helpers.
package intrinsics

import (
	"encoding/json"
)

// Json is a shorthand for map[string]any.
// Used for inline JSON objects like Condition blocks.
type Json = map[string]any

// PolicyDocument represents an IAM policy document.
//
// Example:
//
//	var ConsumerPolicy = PolicyDocument{
//	    Version:   "2012-10-17",
//	    Statement: []any{WriteInputStatement},
//	}
type PolicyDocument struct {
	Version   string `json:"Version,omitempty"`
	Statement []any  `json:"Statement"`
}

// NewPolicyDocument creates a PolicyDocument with the default version.
func NewPolicyDocument() PolicyDocument {
	return PolicyDocument{Version: "2012-10-17"}
}

// PolicyStatement represents an IAM policy statement.
//
// Example:
//
//	var AssumeRole = PolicyStatement{
//	    Effect:    "Allow",
//	    Principal: ServicePrincipal{"lambda.amazonaws.com"},
//	    Action:    "sts:AssumeRole",
//	}
type PolicyStatement struct {
	Sid       string `json:"Sid,omitempty"`
	Effect    string `json:"Effect"`
	Principal any    `json:"Principal,omitempty"`
	Action    any    `json:"Action,omitempty"`
	Resource  any    `json:"Resource,omitempty"`
	Condition Json   `json:"Condition,omitempty"`
}

// --- Principal Helpers ---

// ServicePrincipal represents a service principal (e.g., lambda.amazonaws.com).
// Serializes to {"Service": ...} format.
type ServicePrincipal []any

// MarshalJSON serializes to {"Service": ...} format.
func (p ServicePrincipal) MarshalJSON() ([]byte, error) {
	if len(p) == 1 {
		return json.Marshal(map[string]any{"Service": p[0]})
	}
	return json.Marshal(map[string]any{"Service": []any(p)})
}
