package compose

import (
	"regexp"
	"strings"
)

// =============================================================================
// Service Naming
// =============================================================================

var whitespaceRuns = regexp.MustCompile(`\s+`)

// ServiceName derives the compose service name from a display name:
// lower-cased, with every whitespace run collapsed to a single hyphen.
// Every reference to a service (manifest key, depends_on entry) goes
// through this derivation so names can never diverge.
//
// Example:
//
//	ServiceName("My  Postgres DB") // returns "my-postgres-db"
func ServiceName(displayName string) string {
	name := strings.ToLower(strings.TrimSpace(displayName))
	return whitespaceRuns.ReplaceAllString(name, "-")
}
