// Package v1alpha1 contains ACK SQS resource types for Kubernetes-native AWS
// infrastructure management.
//
// These types enable managing the claud agent queues as Kubernetes CRDs via
// AWS Controllers for Kubernetes (ACK).
package v1alpha1
