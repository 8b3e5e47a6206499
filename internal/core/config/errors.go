package config

import (
	"errors"
	"fmt"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	// Tag set errors
	ErrUnsupportedProvider = errors.New("unsupported cloud provider")
	ErrUnsupportedStrategy = errors.New("unsupported deployment strategy")

	// Structural errors
	ErrMissingProjectName = errors.New("project name is required")
	ErrNilCredentials     = errors.New("cloud credentials are required")
	ErrProviderMismatch   = errors.New("credential variant does not match cloud provider")
	ErrRegionMismatch     = errors.New("cloud region does not match credential region")

	// Deployment errors
	ErrInvalidPort          = errors.New("port must be between 1 and 65535")
	ErrMissingLoadBalancer  = errors.New("load balancer URL is required when load balancing is enabled")
	ErrFixedCapacityBounds  = errors.New("instance bounds must both be 1 when auto-scaling is off")
	ErrInvalidScalingBounds = errors.New("min instances must be >= 1 and <= max instances")

	// Environment variable errors
	ErrDuplicateVariable = errors.New("duplicate environment variable key")
	ErrVariableDrift     = errors.New("deployment and pipeline environment variables diverge")
)

// ValidationError wraps a defect with the configuration field it was
// found on.
type ValidationError struct {
	Field   string // e.g. "cloud.deployment.port"
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: err}
}
