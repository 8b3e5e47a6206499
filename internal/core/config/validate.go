package config

import (
	"fmt"
	"sort"
)

// =============================================================================
// Pre-Generation Validation
// =============================================================================

// Validate checks every invariant that must hold before generation
// starts. Generators assume a validated aggregate; a defect found here
// aborts the run before any artifact is written.
//
// Checked invariants:
//  1. Deployment and pipeline environment variable maps hold identical
//     key sets, and every external-service variable key appears exactly
//     once across all declared services.
//  2. CloudConfig.Region equals the region embedded in the credential
//     variant, and the variant belongs to the configured provider.
//  3. UseLoadBalancer implies a non-empty LoadBalancerURL.
//  4. AutoScaling off implies MinInstances == MaxInstances == 1.
func Validate(cfg CICDConfig) error {
	if cfg.Project.Name == "" {
		return NewValidationError("project.name", "name is required", ErrMissingProjectName)
	}

	if !validProvider(cfg.Cloud.Provider) {
		return NewValidationError("cloud.provider",
			fmt.Sprintf("unknown provider %q", cfg.Cloud.Provider), ErrUnsupportedProvider)
	}
	if cfg.Cloud.Credentials == nil {
		return NewValidationError("cloud.credentials", "credentials are required", ErrNilCredentials)
	}
	if cfg.Cloud.Credentials.CredProvider() != cfg.Cloud.Provider {
		return NewValidationError("cloud.credentials",
			fmt.Sprintf("credential variant is for %q, cloud provider is %q",
				cfg.Cloud.Credentials.CredProvider(), cfg.Cloud.Provider), ErrProviderMismatch)
	}
	if cfg.Cloud.Region != cfg.Cloud.Credentials.CredRegion() {
		return NewValidationError("cloud.region",
			fmt.Sprintf("region %q does not match credential region %q",
				cfg.Cloud.Region, cfg.Cloud.Credentials.CredRegion()), ErrRegionMismatch)
	}

	if err := validateDeployment(cfg.Cloud.Deployment); err != nil {
		return err
	}

	if err := validateVariables(cfg); err != nil {
		return err
	}

	return nil
}

func validProvider(p Provider) bool {
	switch p {
	case ProviderAWS, ProviderAzure, ProviderGCP, ProviderDigitalOcean:
		return true
	}
	return false
}

func validStrategy(s Strategy) bool {
	switch s {
	case StrategyRolling, StrategyBlueGreen, StrategyCanary:
		return true
	}
	return false
}

func validateDeployment(d DeploymentConfig) error {
	if d.Port < 1 || d.Port > 65535 {
		return NewValidationError("cloud.deployment.port",
			fmt.Sprintf("port %d out of range", d.Port), ErrInvalidPort)
	}
	if !validStrategy(d.Strategy) {
		return NewValidationError("cloud.deployment.strategy",
			fmt.Sprintf("unknown strategy %q", d.Strategy), ErrUnsupportedStrategy)
	}
	if d.UseLoadBalancer && d.LoadBalancerURL == "" {
		return NewValidationError("cloud.deployment.load_balancer_url",
			"load balancer enabled without a URL", ErrMissingLoadBalancer)
	}
	if !d.AutoScaling {
		if d.MinInstances != 1 || d.MaxInstances != 1 {
			return NewValidationError("cloud.deployment.min_instances",
				"fixed-capacity deployments run exactly one instance", ErrFixedCapacityBounds)
		}
	} else {
		if d.MinInstances < 1 || d.MinInstances > d.MaxInstances {
			return NewValidationError("cloud.deployment.min_instances",
				fmt.Sprintf("bounds min=%d max=%d", d.MinInstances, d.MaxInstances),
				ErrInvalidScalingBounds)
		}
	}
	return nil
}

// validateVariables enforces the consolidated environment variable
// invariant: service keys unique per service and globally, and the
// deployment/pipeline maps identical.
func validateVariables(cfg CICDConfig) error {
	seen := make(map[string]string) // key -> service name
	for _, svc := range cfg.Project.Services {
		local := make(map[string]bool)
		for _, v := range svc.Variables {
			if local[v.Key] {
				return NewValidationError(
					fmt.Sprintf("project.services.%s", svc.Name),
					fmt.Sprintf("variable %q declared twice", v.Key), ErrDuplicateVariable)
			}
			local[v.Key] = true
			if owner, ok := seen[v.Key]; ok {
				return NewValidationError(
					fmt.Sprintf("project.services.%s", svc.Name),
					fmt.Sprintf("variable %q already declared by service %q", v.Key, owner),
					ErrDuplicateVariable)
			}
			seen[v.Key] = svc.Name
		}
	}

	// Every service key must be present in the deployment map, and the
	// deployment and pipeline maps must be the same set.
	for key := range seen {
		if _, ok := cfg.Cloud.Deployment.EnvironmentVariables[key]; !ok {
			return NewValidationError("cloud.deployment.environment_variables",
				fmt.Sprintf("service variable %q missing from deployment map", key),
				ErrVariableDrift)
		}
	}
	if drift := keySetDiff(cfg.Cloud.Deployment.EnvironmentVariables,
		cfg.Jenkins.EnvironmentVariables); drift != "" {
		return NewValidationError("jenkins.environment_variables",
			fmt.Sprintf("variable %q present in only one map", drift), ErrVariableDrift)
	}

	return nil
}

// keySetDiff returns one key present in exactly one of the maps, or ""
// when the key sets are identical.
func keySetDiff(a, b map[string]string) string {
	var diff []string
	for k := range a {
		if _, ok := b[k]; !ok {
			diff = append(diff, k)
		}
	}
	for k := range b {
		if _, ok := a[k]; !ok {
			diff = append(diff, k)
		}
	}
	if len(diff) == 0 {
		return ""
	}
	sort.Strings(diff)
	return diff[0]
}
