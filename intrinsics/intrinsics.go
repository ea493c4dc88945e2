// Package intrinsics provides CloudFormation intrinsic functions.
//
// Core intrinsic functions:
//
//	Ref{"InputQueue"} → {"Ref": "InputQueue"}
//	Sub{String: "${AWS::Region}-bucket"} → {"Fn::Sub": "${AWS::Region}-bucket"}
//	Join{",", []any{"a", "b"}} → {"Fn::Join": [",", ["a", "b"]]}
//
// Pseudo-parameters:
//
//	AWS_REGION, AWS_ACCOUNT_ID, AWS_STACK_NAME, etc.
package intrinsics

import (
	"encoding/json"
)

// Ref represents a CloudFormation Ref intrinsic function.
//
//	Ref{"InputQueue"} → {"Ref": "InputQueue"}
type Ref struct {
	Name string
}

// MarshalJSON serializes Ref to CloudFormation Ref syntax.
func (r Ref) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{"Ref": r.Name})
}

// GetAtt represents a CloudFormation Fn::GetAtt intrinsic function.
//
//	GetAtt{"InputQueue", "Arn"} → {"Fn::GetAtt": ["InputQueue", "Arn"]}
type GetAtt struct {
	Resource  string
	Attribute string
}

// MarshalJSON serializes GetAtt to CloudFormation Fn::GetAtt syntax.
func (g GetAtt) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string][]string{
		"Fn::GetAtt": {g.Resource, g.Attribute},
	})
}

// Sub represents a CloudFormation Fn::Sub intrinsic function.
//
//	Sub{String: "${InputBucket.Arn}/*"} → {"Fn::Sub": "${InputBucket.Arn}/*"}
type Sub struct {
	String string
}

// MarshalJSON serializes Sub to CloudFormation Fn::Sub syntax.
func (s Sub) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{"Fn::Sub": s.String})
}

// SubWithMap is Fn::Sub with a variable map.
//
//	SubWithMap{String: "${Role}", Variables: Json{"Role": "x"}}
//	→ {"Fn::Sub": ["${Role}", {"Role": "x"}]}
type SubWithMap struct {
	String    string
	Variables map[string]any
}

// MarshalJSON serializes SubWithMap to the two-element Fn::Sub form.
func (s SubWithMap) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string][]any{
		"Fn::Sub": {s.String, s.Variables},
	})
}

// Join represents a CloudFormation Fn::Join intrinsic function.
//
//	Join{Delimiter: "-", Values: []any{"a", "b"}} → {"Fn::Join": ["-", ["a", "b"]]}
type Join struct {
	Delimiter string
	Values    []any
}

// MarshalJSON serializes Join to CloudFormation Fn::Join syntax.
func (j Join) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string][]any{
		"Fn::Join": {j.Delimiter, j.Values},
	})
}

// Tag represents a CloudFormation resource tag.
type Tag struct {
	Key   string `json:"Key"`
	Value any    `json:"Value"`
}
