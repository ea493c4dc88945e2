// Package stack defines the claud agent topology: two S3 buckets, two SQS
// queues, a container-image Lambda function, and the derived consumer policy.
//
// Everything is wired once at synthesis time from environment-variable
// configuration; the resulting template is handed to CloudFormation.
package stack

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment variables understood by the stack.
const (
	EnvImageURI       = "IMAGE_URI"
	EnvMemorySize     = "MEMORY_SIZE"
	EnvTimeout        = "TIMEOUT"
	EnvNamePrefix     = "NAME_PREFIX"
	EnvStackName      = "STACK_NAME"
	EnvRetainOnDelete = "RETAIN_ON_DELETE"
)

// Defaults applied when the corresponding variable is unset.
const (
	DefaultMemorySize = 1024
	DefaultTimeout    = 300
	DefaultNamePrefix = "claud"
	DefaultStackName  = "claud-agent"
)

// ErrMissingImageURI is the single hard validation error: without a container
// image there is no stack to declare.
var ErrMissingImageURI = errors.New("image URI is required: set " + EnvImageURI + " to the agent container image")

// Config holds the stack parameters.
type Config struct {
	// ImageURI is the agent container image, as given.
	ImageURI string

	// Image is the parsed form of ImageURI.
	Image ImageRef

	// MemorySize is the function memory in MB.
	MemorySize int

	// Timeout is the function timeout in seconds. The input queue visibility
	// timeout is derived from it.
	Timeout int

	// NamePrefix prefixes every derived resource name.
	NamePrefix string

	// StackName identifies the deployment and suffixes every derived name.
	StackName string

	// RetainOnDelete keeps the buckets and queues when the stack is deleted.
	RetainOnDelete bool
}

// FromEnv builds a Config from the given environment. Missing values fall
// back to defaults; a missing image URI fails construction.
func FromEnv(env map[string]string) (*Config, error) {
	cfg := &Config{
		MemorySize: DefaultMemorySize,
		Timeout:    DefaultTimeout,
		NamePrefix: DefaultNamePrefix,
		StackName:  DefaultStackName,
	}

	cfg.ImageURI = strings.TrimSpace(env[EnvImageURI])
	if cfg.ImageURI == "" {
		return nil, ErrMissingImageURI
	}
	image, err := ParseImageRef(cfg.ImageURI)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", EnvImageURI, cfg.ImageURI, err)
	}
	cfg.Image = image

	if v := strings.TrimSpace(env[EnvMemorySize]); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid %s %q: expected a positive integer", EnvMemorySize, v)
		}
		cfg.MemorySize = n
	}

	if v := strings.TrimSpace(env[EnvTimeout]); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid %s %q: expected a positive integer", EnvTimeout, v)
		}
		cfg.Timeout = n
	}

	if v := strings.TrimSpace(env[EnvNamePrefix]); v != "" {
		cfg.NamePrefix = v
	}

	if v := strings.TrimSpace(env[EnvStackName]); v != "" {
		cfg.StackName = v
	}

	if v := strings.TrimSpace(env[EnvRetainOnDelete]); v != "" {
		retain, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: expected a boolean", EnvRetainOnDelete, v)
		}
		cfg.RetainOnDelete = retain
	}

	return cfg, nil
}

// Environ returns the process environment as a map.
func Environ() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if key, value, ok := strings.Cut(kv, "="); ok {
			env[key] = value
		}
	}
	return env
}

// ImageRef is a parsed container image reference.
type ImageRef struct {
	// Registry is the image registry host (e.g. an ECR registry).
	Registry string
	// Repository is the image repository path within the registry.
	Repository string
	// Tag is the image tag or digest; defaults to "latest".
	Tag string
}

// String reassembles the reference.
func (r ImageRef) String() string {
	return r.Registry + "/" + r.Repository + ":" + r.Tag
}

// ParseImageRef splits a container image URI into registry, repository, and
// tag components. The registry must look like a host (contain "." or ":");
// the tag defaults to "latest" when absent. Digest references
// (repo@sha256:...) keep the digest as the tag component.
func ParseImageRef(uri string) (ImageRef, error) {
	registry, remainder, ok := strings.Cut(uri, "/")
	if !ok || registry == "" || remainder == "" {
		return ImageRef{}, errors.New("expected registry/repository[:tag]")
	}
	if !strings.ContainsAny(registry, ".:") {
		return ImageRef{}, fmt.Errorf("registry %q must be a hostname", registry)
	}

	tag := "latest"
	if repo, digest, ok := strings.Cut(remainder, "@"); ok {
		if repo == "" || digest == "" {
			return ImageRef{}, errors.New("malformed digest reference")
		}
		return ImageRef{Registry: registry, Repository: repo, Tag: digest}, nil
	}
	if colon := strings.LastIndex(remainder, ":"); colon >= 0 {
		if strings.Contains(remainder[colon+1:], "/") {
			return ImageRef{}, fmt.Errorf("malformed reference %q", remainder)
		}
		tag = remainder[colon+1:]
		remainder = remainder[:colon]
	}
	if remainder == "" || tag == "" {
		return ImageRef{}, errors.New("expected registry/repository[:tag]")
	}

	return ImageRef{Registry: registry, Repository: remainder, Tag: tag}, nil
}
