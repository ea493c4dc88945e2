// Package logs contains the CloudWatch Logs resource types used by the claud agent stack.
package logs

// LogGroup represents an AWS::Logs::LogGroup resource.
type LogGroup struct {
	// LogGroupName is the physical log group name.
	LogGroupName any `json:"LogGroupName,omitempty"`

	// RetentionInDays is how long log events are kept.
	RetentionInDays int `json:"RetentionInDays,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (LogGroup) ResourceType() string {
	return "AWS::Logs::LogGroup"
}
