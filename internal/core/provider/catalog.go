// Package provider contains pure functions for cloud provider catalogs
// and instance sizing. This is part of the Functional Core - all
// functions are pure with no I/O.
package provider

import "github.com/artpar/pipeforge/internal/core/config"

// Region represents a cloud provider region.
type Region struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// InstanceSize represents an instance type/tier option.
type InstanceSize struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	CPUCores float64 `json:"cpu_cores"`
	MemoryMB int64   `json:"memory_mb"`
}

// =============================================================================
// AWS Catalog
// =============================================================================

// AWSRegions returns the commonly used AWS regions.
func AWSRegions() []Region {
	return []Region{
		{ID: "us-east-1", Name: "US East (N. Virginia)"},
		{ID: "us-east-2", Name: "US East (Ohio)"},
		{ID: "us-west-2", Name: "US West (Oregon)"},
		{ID: "eu-west-1", Name: "EU (Ireland)"},
		{ID: "eu-central-1", Name: "EU (Frankfurt)"},
		{ID: "ap-southeast-1", Name: "Asia Pacific (Singapore)"},
		{ID: "ap-northeast-1", Name: "Asia Pacific (Tokyo)"},
	}
}

// AWSSizes returns common Fargate task sizings keyed by EC2-style tier names.
func AWSSizes() []InstanceSize {
	return []InstanceSize{
		{ID: "t3.micro", Name: "t3.micro (1 vCPU, 1 GB)", CPUCores: 0.25, MemoryMB: 512},
		{ID: "t3.small", Name: "t3.small (2 vCPU, 2 GB)", CPUCores: 0.5, MemoryMB: 1024},
		{ID: "t3.medium", Name: "t3.medium (2 vCPU, 4 GB)", CPUCores: 1, MemoryMB: 2048},
		{ID: "t3.large", Name: "t3.large (2 vCPU, 8 GB)", CPUCores: 2, MemoryMB: 4096},
	}
}

// =============================================================================
// Azure Catalog
// =============================================================================

// AzureRegions returns common Azure regions.
func AzureRegions() []Region {
	return []Region{
		{ID: "eastus", Name: "East US"},
		{ID: "westus2", Name: "West US 2"},
		{ID: "westeurope", Name: "West Europe"},
		{ID: "northeurope", Name: "North Europe"},
		{ID: "southeastasia", Name: "Southeast Asia"},
		{ID: "japaneast", Name: "Japan East"},
	}
}

// AzureSizes returns common container-instance sizings.
func AzureSizes() []InstanceSize {
	return []InstanceSize{
		{ID: "Standard_B1s", Name: "B1s (1 vCPU, 1 GB)", CPUCores: 1, MemoryMB: 1024},
		{ID: "Standard_B2s", Name: "B2s (2 vCPU, 4 GB)", CPUCores: 2, MemoryMB: 4096},
		{ID: "Standard_D2s_v3", Name: "D2s v3 (2 vCPU, 8 GB)", CPUCores: 2, MemoryMB: 8192},
	}
}

// =============================================================================
// GCP Catalog
// =============================================================================

// GCPRegions returns common GCP regions.
func GCPRegions() []Region {
	return []Region{
		{ID: "us-central1", Name: "Iowa"},
		{ID: "us-east1", Name: "South Carolina"},
		{ID: "europe-west1", Name: "Belgium"},
		{ID: "europe-west3", Name: "Frankfurt"},
		{ID: "asia-northeast1", Name: "Tokyo"},
		{ID: "asia-southeast1", Name: "Singapore"},
	}
}

// GCPSizes returns common Cloud Run sizings keyed by machine-type names.
func GCPSizes() []InstanceSize {
	return []InstanceSize{
		{ID: "e2-micro", Name: "e2-micro (1 vCPU, 1 GB)", CPUCores: 1, MemoryMB: 1024},
		{ID: "e2-small", Name: "e2-small (1 vCPU, 2 GB)", CPUCores: 1, MemoryMB: 2048},
		{ID: "e2-medium", Name: "e2-medium (2 vCPU, 4 GB)", CPUCores: 2, MemoryMB: 4096},
	}
}

// =============================================================================
// DigitalOcean Catalog
// =============================================================================

// DigitalOceanRegions returns common DO regions.
func DigitalOceanRegions() []Region {
	return []Region{
		{ID: "nyc1", Name: "New York 1"},
		{ID: "nyc3", Name: "New York 3"},
		{ID: "sfo3", Name: "San Francisco 3"},
		{ID: "ams3", Name: "Amsterdam 3"},
		{ID: "lon1", Name: "London 1"},
		{ID: "fra1", Name: "Frankfurt 1"},
		{ID: "sgp1", Name: "Singapore 1"},
	}
}

// DigitalOceanSizes returns common App Platform sizings.
func DigitalOceanSizes() []InstanceSize {
	return []InstanceSize{
		{ID: "basic-xxs", Name: "Basic XXS (1 vCPU, 512 MB)", CPUCores: 1, MemoryMB: 512},
		{ID: "basic-xs", Name: "Basic XS (1 vCPU, 1 GB)", CPUCores: 1, MemoryMB: 1024},
		{ID: "basic-s", Name: "Basic S (1 vCPU, 2 GB)", CPUCores: 1, MemoryMB: 2048},
		{ID: "professional-xs", Name: "Professional XS (2 vCPU, 4 GB)", CPUCores: 2, MemoryMB: 4096},
	}
}

// =============================================================================
// Catalog Lookup
// =============================================================================

// Regions returns the static region catalog for a provider.
func Regions(p config.Provider) []Region {
	switch p {
	case config.ProviderAWS:
		return AWSRegions()
	case config.ProviderAzure:
		return AzureRegions()
	case config.ProviderGCP:
		return GCPRegions()
	case config.ProviderDigitalOcean:
		return DigitalOceanRegions()
	}
	return nil
}

// Sizes returns the static instance-size catalog for a provider.
func Sizes(p config.Provider) []InstanceSize {
	switch p {
	case config.ProviderAWS:
		return AWSSizes()
	case config.ProviderAzure:
		return AzureSizes()
	case config.ProviderGCP:
		return GCPSizes()
	case config.ProviderDigitalOcean:
		return DigitalOceanSizes()
	}
	return nil
}
