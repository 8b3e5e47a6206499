package provider

import "github.com/artpar/pipeforge/internal/core/config"

// =============================================================================
// Sizing Derivation
// =============================================================================

// Sizing holds the compute shape derived from an instance-type tag.
// Both the deployment-script generator and the infrastructure-manifest
// generator resolve sizing through this function so the two artifacts
// can never disagree on cpu/memory values.
type Sizing struct {
	CPUUnits int // provider compute units (AWS: 1024 per vCPU, others: whole cores)
	MemoryMB int64
}

// defaultSizing is used when the instance type is not in the catalog,
// matching the smallest entry of each provider.
func defaultSizing(p config.Provider) Sizing {
	switch p {
	case config.ProviderAWS:
		return Sizing{CPUUnits: 256, MemoryMB: 512}
	default:
		return Sizing{CPUUnits: 1, MemoryMB: 1024}
	}
}

// Resolve derives the compute shape for an instance type.
//
// Example:
//
//	Resolve(config.ProviderAWS, "t3.small") // Sizing{CPUUnits: 512, MemoryMB: 1024}
func Resolve(p config.Provider, instanceType string) Sizing {
	for _, size := range Sizes(p) {
		if size.ID == instanceType {
			if p == config.ProviderAWS {
				return Sizing{CPUUnits: int(size.CPUCores * 1024), MemoryMB: size.MemoryMB}
			}
			return Sizing{CPUUnits: int(size.CPUCores), MemoryMB: size.MemoryMB}
		}
	}
	return defaultSizing(p)
}

// KnownInstanceType reports whether an instance type appears in the
// provider's catalog.
func KnownInstanceType(p config.Provider, instanceType string) bool {
	for _, size := range Sizes(p) {
		if size.ID == instanceType {
			return true
		}
	}
	return false
}
