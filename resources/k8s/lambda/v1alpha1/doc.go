// Package v1alpha1 contains ACK Lambda resource types for Kubernetes-native
// AWS infrastructure management.
//
// These types enable managing the claud agent function as a Kubernetes CRD
// via AWS Controllers for Kubernetes (ACK).
package v1alpha1
