// Package v1alpha1 contains ACK IAM resource types for Kubernetes-native AWS
// infrastructure management.
//
// These types enable managing the claud agent role and consumer policy as
// Kubernetes CRDs via AWS Controllers for Kubernetes (ACK).
package v1alpha1
