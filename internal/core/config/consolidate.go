package config

import "sort"

// =============================================================================
// Environment Variable Consolidation
// =============================================================================

// ConsolidateVariables collects every external-service variable key into
// one map, seeding unset values with an empty placeholder. The result is
// what the wizard installs into both the deployment and the pipeline
// environment maps so the two can never drift.
//
// Example:
//
//	ConsolidateVariables(project) // {"DATABASE_URL": "", "REDIS_URL": ""}
func ConsolidateVariables(project ProjectConfig) map[string]string {
	vars := make(map[string]string)
	for _, svc := range project.Services {
		for _, v := range svc.Variables {
			vars[v.Key] = ""
		}
	}
	return vars
}

// SortedKeys returns the map's keys in lexical order. Generators iterate
// environment maps through this so output stays byte-identical between
// runs.
func SortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SecretKeys returns the set of variable keys flagged secret across all
// declared services. The backup writer redacts these before persisting.
func SecretKeys(project ProjectConfig) map[string]bool {
	secret := make(map[string]bool)
	for _, svc := range project.Services {
		for _, v := range svc.Variables {
			if v.Secret {
				secret[v.Key] = true
			}
		}
	}
	return secret
}
