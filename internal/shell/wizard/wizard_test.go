package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/artpar/pipeforge/internal/core/config"
)

func TestAsValidator(t *testing.T) {
	v := asValidator(func(s string) error { return nil })
	assert.NoError(t, v("anything"))
	assert.Error(t, v(42), "non-string answers are rejected")
}

func TestPortValidator(t *testing.T) {
	assert.NoError(t, portValidator("8080"))
	assert.NoError(t, portValidator(" 443 "))
	assert.Error(t, portValidator("0"))
	assert.Error(t, portValidator("70000"))
	assert.Error(t, portValidator("eighty"))
}

func TestCountValidator(t *testing.T) {
	assert.NoError(t, countValidator("1"))
	assert.NoError(t, countValidator("30"))
	assert.Error(t, countValidator("0"))
	assert.Error(t, countValidator("-2"))
	assert.Error(t, countValidator("many"))
}

func TestSizeID_MapsDisplayNameToCatalogID(t *testing.T) {
	assert.Equal(t, "t3.small", sizeID(config.ProviderAWS, "t3.small (2 vCPU, 2 GB)"))
	assert.Equal(t, "basic-xxs", sizeID(config.ProviderDigitalOcean, "Basic XXS (1 vCPU, 512 MB)"))
	// unknown names pass through untouched
	assert.Equal(t, "custom-size", sizeID(config.ProviderAWS, "custom-size"))
}

func TestRegionAndSizeOptions_NonEmpty(t *testing.T) {
	for _, p := range config.Providers() {
		assert.NotEmpty(t, regionOptions(p), "provider %s", p)
		assert.NotEmpty(t, sizeOptions(p), "provider %s", p)
	}
}

func TestServiceNamePreview(t *testing.T) {
	assert.Equal(t, "order-service", ServiceNamePreview("Order   Service"))
}
