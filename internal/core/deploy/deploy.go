// Package deploy emits provider-specific deployment script fragments.
// This is part of the Functional Core - all functions are pure with no
// I/O: the output is shell text executed later by the pipeline runner,
// never by this process.
//
// Every fragment has the same four sections, in order:
//
//	authentication  - exactly one of static credentials or OIDC exchange
//	provisioning    - idempotent create-if-absent for the target resource
//	deploy          - existence probe, then create-path or strategy-branched update-path
//	reachable URL   - static load balancer URL or runtime derivation,
//	                  persisted as KEY=value lines to the state file
//
// Azure and GCP fragments end with a readiness gate polling the
// health-check path: their create commands return before the
// application listens. ECS and App Platform hold the deploy themselves
// through the probe embedded in the task definition or app spec.
package deploy

import (
	"fmt"
	"strings"

	"github.com/artpar/pipeforge/internal/core/config"
)

// StateFile is the durable key-value line file the emitted scripts
// append resolved values to. The later health-verification stage reads
// APP_URL from it without re-deriving anything.
const StateFile = "deployment-state.env"

// =============================================================================
// Errors
// =============================================================================

// GenerateError wraps a configuration defect found while emitting a
// deployment script.
type GenerateError struct {
	Provider config.Provider
	Message  string
	Err      error
}

func (e *GenerateError) Error() string {
	return fmt.Sprintf("deploy generator (%s): %s", e.Provider, e.Message)
}

func (e *GenerateError) Unwrap() error {
	return e.Err
}

// =============================================================================
// Generator
// =============================================================================

// Generate emits the deployment script fragment for one provider.
// The aggregate is assumed validated; the provider tag is still
// re-checked so a caller bypassing validation fails loud instead of
// writing partial output.
func Generate(cloud config.CloudConfig, artifactName string) (string, error) {
	if cloud.Credentials == nil || cloud.Credentials.CredProvider() != cloud.Provider {
		return "", &GenerateError{
			Provider: cloud.Provider,
			Message:  "credential variant does not match provider",
			Err:      config.ErrProviderMismatch,
		}
	}

	switch creds := cloud.Credentials.(type) {
	case config.AWSCredentials:
		return generateAWS(cloud, creds, artifactName), nil
	case config.AzureCredentials:
		return generateAzure(cloud, creds, artifactName), nil
	case config.GCPCredentials:
		return generateGCP(cloud, creds, artifactName), nil
	case config.DigitalOceanCredentials:
		return generateDigitalOcean(cloud, creds, artifactName), nil
	default:
		return "", &GenerateError{
			Provider: cloud.Provider,
			Message:  fmt.Sprintf("unknown provider %q", cloud.Provider),
			Err:      config.ErrUnsupportedProvider,
		}
	}
}

// =============================================================================
// Shared Script Pieces
// =============================================================================

// scriptHeader opens every fragment. set -eu makes any failed cloud CLI
// call abort the emitted script; runtime failures are the script's
// concern, not the generator's.
func scriptHeader(b *strings.Builder, artifactName string, cloud config.CloudConfig) {
	fmt.Fprintf(b, "#!/bin/sh\n")
	fmt.Fprintf(b, "# Deployment of %s (%s, %s strategy)\n", artifactName, cloud.Provider, cloud.Deployment.Strategy)
	fmt.Fprintf(b, "set -eu\n\n")
}

// persistState appends one KEY=value line to the deployment state file.
func persistState(b *strings.Builder, key, valueExpr string) {
	fmt.Fprintf(b, "echo \"%s=%s\" >> %s\n", key, valueExpr, StateFile)
}

// baseMin returns the configured minimum capacity, floored at one.
func baseMin(d config.DeploymentConfig) int {
	if d.MinInstances < 1 {
		return 1
	}
	return d.MinInstances
}

// desiredCount returns the capacity the update path requests. Canary
// runs one instance above the configured minimum to shift a fraction of
// traffic; the split mechanics themselves stay with the platform.
func desiredCount(d config.DeploymentConfig) int {
	min := baseMin(d)
	if d.Strategy == config.StrategyCanary {
		return min + 1
	}
	return min
}

// readinessGate emits a poll loop against the deployed endpoint's
// health-check path. The stage fails when the service never answers,
// so the verify stage is never handed a dead URL.
func readinessGate(b *strings.Builder, d config.DeploymentConfig) {
	fmt.Fprintf(b, `
# readiness
for attempt in $(seq 1 30); do
  if curl -fsS -o /dev/null "${APP_URL}%s"; then
    break
  fi
  if [ "${attempt}" -eq 30 ]; then
    echo "service never answered on %s" >&2
    exit 1
  fi
  sleep 5
done
`, d.HealthCheckPath, d.HealthCheckPath)
}

// healthCheckURL builds the localhost probe URL used inside container
// health checks.
func healthCheckURL(d config.DeploymentConfig) string {
	return fmt.Sprintf("http://localhost:%d%s", d.Port, d.HealthCheckPath)
}
