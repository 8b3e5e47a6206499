// Package compose emits the local multi-service docker-compose manifest
// for a project. This is part of the Functional Core - all functions
// are pure with no I/O.
package compose

import (
	"errors"
	"fmt"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	// ErrNoDockerfile is returned when compose generation is requested for
	// a project that declared no Dockerfile; the manifest only makes sense
	// around a buildable application container.
	ErrNoDockerfile = errors.New("project declares no Dockerfile")

	// ErrInvalidManifest is returned when the emitted manifest fails the
	// compose round-trip verification. This is a generator defect, never
	// expected for valid configuration.
	ErrInvalidManifest = errors.New("emitted manifest failed compose verification")

	// ErrDuplicateServiceName is returned when two declared services
	// derive to the same compose service name. Mapping keys are unique,
	// so the collision would silently collapse two services into one
	// manifest entry.
	ErrDuplicateServiceName = errors.New("duplicate derived service name")
)

// VerifyError wraps a round-trip verification failure with the loader's
// diagnostic.
type VerifyError struct {
	Detail string
	Err    error
}

func (e *VerifyError) Error() string {
	return fmt.Sprintf("compose verification: %s", e.Detail)
}

func (e *VerifyError) Unwrap() error {
	return e.Err
}
