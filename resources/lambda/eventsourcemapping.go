package lambda

// EventSourceMapping represents an AWS::Lambda::EventSourceMapping resource.
// It polls an event source (here, an SQS queue) and invokes the function.
type EventSourceMapping struct {
	// EventSourceArn is the ARN of the source queue.
	EventSourceArn any `json:"EventSourceArn,omitempty"`

	// FunctionName is the name or ARN of the target function.
	FunctionName any `json:"FunctionName,omitempty"`

	// BatchSize is the number of records per invocation.
	BatchSize int `json:"BatchSize,omitempty"`

	// Enabled toggles the mapping without deleting it.
	Enabled *bool `json:"Enabled,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (EventSourceMapping) ResourceType() string {
	return "AWS::Lambda::EventSourceMapping"
}
