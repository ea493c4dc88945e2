// Package lambda contains the Lambda resource types used by the claud agent stack.
package lambda

// Function represents an AWS::Lambda::Function resource.
type Function struct {
	// FunctionName is the physical function name.
	FunctionName any `json:"FunctionName,omitempty"`

	// Description documents the function.
	Description string `json:"Description,omitempty"`

	// PackageType is "Image" for container-image functions, "Zip" otherwise.
	PackageType string `json:"PackageType,omitempty"`

	// Code locates the function code.
	Code Function_Code `json:"Code"`

	// Role is the ARN of the execution role.
	Role any `json:"Role,omitempty"`

	// MemorySize is the memory in MB.
	MemorySize int `json:"MemorySize,omitempty"`

	// Timeout is the execution timeout in seconds.
	Timeout int `json:"Timeout,omitempty"`

	// Architectures lists the instruction set architectures (e.g. "arm64").
	Architectures []string `json:"Architectures,omitempty"`

	// Environment holds the function environment variables.
	Environment *Function_Environment `json:"Environment,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (Function) ResourceType() string {
	return "AWS::Lambda::Function"
}

// Function_Code locates the function code: a container image URI for
// image-packaged functions, or inline/S3 code for zip-packaged ones.
type Function_Code struct {
	ImageUri any    `json:"ImageUri,omitempty"`
	S3Bucket any    `json:"S3Bucket,omitempty"`
	S3Key    any    `json:"S3Key,omitempty"`
	ZipFile  string `json:"ZipFile,omitempty"`
}

// Function_Environment holds environment variables.
type Function_Environment struct {
	Variables map[string]any `json:"Variables,omitempty"`
}
