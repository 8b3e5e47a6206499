package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/artpar/pipeforge/internal/core/config"
	"github.com/artpar/pipeforge/internal/core/provider"
)

// =============================================================================
// Errors
// =============================================================================

var (
	// ErrInvalidGitURL is returned when a repository URL matches no known remote shape.
	ErrInvalidGitURL = errors.New("not a recognized git remote URL")

	// ErrNoBaseImage is returned when Dockerfile content has no FROM instruction.
	ErrNoBaseImage = errors.New("Dockerfile has no FROM instruction")

	// ErrPortOutOfRange is returned when a TCP port falls outside 1-65535.
	ErrPortOutOfRange = errors.New("port out of range")

	// ErrUnknownInstanceType is returned when an instance type is absent
	// from the provider catalog.
	ErrUnknownInstanceType = errors.New("unknown instance type for provider")

	// ErrInvalidEmail is returned when a notification address is not plausible.
	ErrInvalidEmail = errors.New("invalid email address")
)

// =============================================================================
// Git Remote Validation
// =============================================================================

var gitURLPatterns = []*regexp.Regexp{
	// hosted HTTPS remotes
	regexp.MustCompile(`^https://(www\.)?github\.com/[\w.-]+/[\w.-]+(\.git)?$`),
	regexp.MustCompile(`^https://(www\.)?gitlab\.com/[\w.-]+(/[\w.-]+)+(\.git)?$`),
	regexp.MustCompile(`^https://(www\.)?bitbucket\.org/[\w.-]+/[\w.-]+(\.git)?$`),
	// SSH remotes
	regexp.MustCompile(`^git@[\w.-]+:[\w.-]+(/[\w.-]+)+(\.git)?$`),
	regexp.MustCompile(`^ssh://git@[\w.-]+(/[\w.-]+)+(\.git)?$`),
	// self-hosted HTTPS remotes must end in .git to disambiguate from plain web URLs
	regexp.MustCompile(`^https?://[\w.-]+(:\d+)?(/[\w.-]+)+\.git$`),
}

// ValidateGitURL checks that a repository URL is a fetchable git
// remote: a hosted GitHub/GitLab/Bitbucket URL, an SSH remote, or any
// HTTPS URL ending in .git.
func ValidateGitURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fmt.Errorf("%w: empty URL", ErrInvalidGitURL)
	}
	for _, p := range gitURLPatterns {
		if p.MatchString(raw) {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrInvalidGitURL, raw)
}

// =============================================================================
// Dockerfile Validation
// =============================================================================

var fromInstruction = regexp.MustCompile(`(?im)^\s*FROM\s+\S+`)

// ValidateDockerfile checks that Dockerfile content declares at least
// one base image. Comments and blank lines before the first FROM are
// fine; an empty or FROM-less file is not buildable.
func ValidateDockerfile(content string) error {
	if !fromInstruction.MatchString(content) {
		return ErrNoBaseImage
	}
	return nil
}

// =============================================================================
// Scalar Validation
// =============================================================================

// ValidatePort checks a TCP port is in the valid range.
func ValidatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("%w: %d", ErrPortOutOfRange, port)
	}
	return nil
}

// ValidateInstanceType checks the instance type against the provider's
// size catalog. Unknown types are rejected at the prompt even though
// the generators would fall back to a default sizing for them.
func ValidateInstanceType(p config.Provider, instanceType string) error {
	if !provider.KnownInstanceType(p, instanceType) {
		return fmt.Errorf("%w: %q (%s)", ErrUnknownInstanceType, instanceType, p)
	}
	return nil
}

var emailShape = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateEmail checks a notification address has the minimal
// local@domain.tld shape. Full RFC 5322 parsing buys nothing here; the
// address is only ever interpolated into a mail command.
func ValidateEmail(address string) error {
	if !emailShape.MatchString(address) {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, address)
	}
	return nil
}
