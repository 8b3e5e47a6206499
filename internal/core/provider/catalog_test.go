package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/artpar/pipeforge/internal/core/config"
)

// =============================================================================
// Catalog Tests
// =============================================================================

func TestRegions_EveryProviderHasEntries(t *testing.T) {
	for _, p := range config.Providers() {
		assert.NotEmpty(t, Regions(p), "provider %s", p)
	}
}

func TestSizes_EveryProviderHasEntries(t *testing.T) {
	for _, p := range config.Providers() {
		assert.NotEmpty(t, Sizes(p), "provider %s", p)
	}
}

func TestRegions_UnknownProvider(t *testing.T) {
	assert.Nil(t, Regions(config.Provider("linode")))
}

// =============================================================================
// Sizing Tests
// =============================================================================

func TestResolve_AWSConvertsToCPUUnits(t *testing.T) {
	got := Resolve(config.ProviderAWS, "t3.small")
	assert.Equal(t, 512, got.CPUUnits)
	assert.Equal(t, int64(1024), got.MemoryMB)
}

func TestResolve_NonAWSKeepsWholeCores(t *testing.T) {
	got := Resolve(config.ProviderAzure, "Standard_B2s")
	assert.Equal(t, 2, got.CPUUnits)
	assert.Equal(t, int64(4096), got.MemoryMB)
}

func TestResolve_UnknownTypeFallsBackToSmallest(t *testing.T) {
	got := Resolve(config.ProviderAWS, "m5.24xlarge")
	assert.Equal(t, Sizing{CPUUnits: 256, MemoryMB: 512}, got)
}

func TestKnownInstanceType(t *testing.T) {
	tests := []struct {
		provider     config.Provider
		instanceType string
		want         bool
	}{
		{config.ProviderAWS, "t3.micro", true},
		{config.ProviderAWS, "basic-xxs", false},
		{config.ProviderDigitalOcean, "basic-xxs", true},
		{config.ProviderGCP, "e2-medium", true},
		{config.ProviderAzure, "Standard_B1s", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, KnownInstanceType(tt.provider, tt.instanceType),
			"%s/%s", tt.provider, tt.instanceType)
	}
}
