// Package pipeline exposes the generated artifacts as independently
// insertable text blocks keyed by pipeline stage, and assembles them
// into one Jenkins pipeline definition. This is part of the Functional
// Core - all functions are pure with no I/O.
package pipeline

import (
	"errors"
	"fmt"
)

// =============================================================================
// Stage Keys
// =============================================================================

// Stage identifies one insertable pipeline block.
type Stage string

const (
	StageCheckout   Stage = "checkout"
	StageInstall    Stage = "install"
	StageTest       Stage = "test"
	StageBuild      Stage = "build"
	StageImageBuild Stage = "image-build"
	StageImagePush  Stage = "image-push"
	StageDeploy     Stage = "deploy"
	StageVerify     Stage = "verify"
	StageNotify     Stage = "notify"
)

// Stages returns every stage in pipeline order. Assembly composes
// fragments in exactly this order.
func Stages() []Stage {
	return []Stage{
		StageCheckout, StageInstall, StageTest, StageBuild,
		StageImageBuild, StageImagePush, StageDeploy, StageVerify, StageNotify,
	}
}

// Fragments maps stages to their shell blocks. Each entry is complete
// on its own: assembly composes them without re-parsing or re-deriving
// any configuration value.
type Fragments map[Stage]string

// =============================================================================
// Errors
// =============================================================================

// ErrMissingFragment is returned when assembly is asked to compose an
// incomplete fragment set.
var ErrMissingFragment = errors.New("missing pipeline fragment")

// MissingFragmentError names the absent stage.
type MissingFragmentError struct {
	Stage Stage
}

func (e *MissingFragmentError) Error() string {
	return fmt.Sprintf("missing pipeline fragment for stage %q", e.Stage)
}

func (e *MissingFragmentError) Unwrap() error {
	return ErrMissingFragment
}
