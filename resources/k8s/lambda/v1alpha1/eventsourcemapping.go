package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// EventSourceMapping represents an ACK Lambda EventSourceMapping resource.
// +kubebuilder:object:root=true
type EventSourceMapping struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   EventSourceMappingSpec   `json:"spec,omitempty"`
	Status EventSourceMappingStatus `json:"status,omitempty"`
}

// EventSourceMappingSpec defines the desired state of an EventSourceMapping.
type EventSourceMappingSpec struct {
	// EventSourceARN is the ARN of the source queue.
	EventSourceARN *string `json:"eventSourceARN,omitempty"`

	// FunctionName is the name or ARN of the target function.
	FunctionName *string `json:"functionName,omitempty"`

	// FunctionRef is a reference to an ACK Function resource.
	FunctionRef *AWSResourceReferenceWrapper `json:"functionRef,omitempty"`

	// BatchSize is the number of records per invocation.
	BatchSize *int64 `json:"batchSize,omitempty"`

	// Enabled toggles the mapping without deleting it.
	Enabled *bool `json:"enabled,omitempty"`
}

// EventSourceMappingStatus defines the observed state of an EventSourceMapping.
type EventSourceMappingStatus struct {
	// ACKResourceMetadata contains ACK-specific metadata.
	ACKResourceMetadata *ACKResourceMetadata `json:"ackResourceMetadata,omitempty"`

	// Conditions represent the latest available observations.
	Conditions []*Condition `json:"conditions,omitempty"`

	// State is the current state of the mapping.
	State *string `json:"state,omitempty"`

	// UUID is the identifier assigned by Lambda.
	UUID *string `json:"uuid,omitempty"`
}
