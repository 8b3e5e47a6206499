// Package validation provides pure validation functions for user input.
//
// This package contains the functional core logic for checking values
// collected by the interactive wizard before they enter the
// configuration aggregate. All functions are pure (no I/O, no side
// effects).
//
// # Functions
//
//   - ValidateGitURL: Check a repository URL is a fetchable git remote
//   - ValidateDockerfile: Check Dockerfile content has a base image
//   - ValidatePort: Check a TCP port is in the valid range
//   - ValidateInstanceType: Check an instance type exists in the provider catalog
//   - ValidateEmail: Check a notification address is plausible
//
// # Usage
//
// The wizard wires these as survey validators, so a bad value is
// rejected at the prompt instead of surfacing later as a generator
// defect:
//
//	if err := validation.ValidateGitURL(answer); err != nil {
//	    // re-prompt with err.Error()
//	}
package validation
