package stack

import (
	"strings"
)

// Roles give every resource a deterministic per-role name suffix.
const (
	RoleInputBucket    = "input"
	RoleOutputBucket   = "output"
	RoleInputQueue     = "input-queue"
	RoleOutputQueue    = "output-queue"
	RoleFunction       = "agent"
	RoleConsumerPolicy = "consumer"
)

// ResourceName derives the physical name for a role: prefix, role, and stack
// identifier joined and lowercased. Lowercasing keeps bucket names legal
// whatever the prefix.
func (c *Config) ResourceName(role string) string {
	return strings.ToLower(c.NamePrefix + "-" + role + "-" + c.StackName)
}

// InputBucketName is the physical name of the input bucket.
func (c *Config) InputBucketName() string { return c.ResourceName(RoleInputBucket) }

// OutputBucketName is the physical name of the output bucket.
func (c *Config) OutputBucketName() string { return c.ResourceName(RoleOutputBucket) }

// InputQueueName is the physical name of the input queue.
func (c *Config) InputQueueName() string { return c.ResourceName(RoleInputQueue) }

// OutputQueueName is the physical name of the output queue.
func (c *Config) OutputQueueName() string { return c.ResourceName(RoleOutputQueue) }

// FunctionName is the physical name of the agent function.
func (c *Config) FunctionName() string { return c.ResourceName(RoleFunction) }

// ConsumerPolicyName is the physical name of the consumer managed policy.
func (c *Config) ConsumerPolicyName() string { return c.ResourceName(RoleConsumerPolicy) }
