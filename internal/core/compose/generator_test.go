package compose

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artpar/pipeforge/internal/core/config"
)

func testConfig() config.CICDConfig {
	return config.CICDConfig{
		Project: config.ProjectConfig{
			Name:          "Order Service",
			Kind:          config.ProjectBackend,
			HasDockerfile: true,
			UsesEnvFile:   true,
			Services: []config.ExternalService{
				{
					Kind:    config.ServiceDatabase,
					Name:    "Main Postgres",
					Product: "postgresql",
					Variables: []config.EnvVariable{
						{Key: "DATABASE_URL", Secret: true},
					},
					RequiresInfrastructure: true,
				},
				{
					Kind:                   config.ServiceCache,
					Name:                   "Session Cache",
					Product:                "redis",
					RequiresInfrastructure: true,
				},
				{
					Kind:                   config.ServiceEmail,
					Name:                   "Mailer",
					Product:                "sendgrid",
					RequiresInfrastructure: false,
				},
			},
		},
		Cloud: config.CloudConfig{
			Provider: config.ProviderAWS,
			Deployment: config.DeploymentConfig{
				Port:                 8080,
				EnvironmentVariables: map[string]string{"DATABASE_URL": ""},
			},
		},
	}
}

// =============================================================================
// ServiceName Tests
// =============================================================================

func TestServiceName_TableDriven(t *testing.T) {
	tests := []struct {
		name    string
		display string
		want    string
	}{
		{"simple", "redis", "redis"},
		{"mixed-case", "Main Postgres", "main-postgres"},
		{"whitespace-run", "My  Postgres   DB", "my-postgres-db"},
		{"tab-and-space", "cache \t layer", "cache-layer"},
		{"surrounding-space", "  api  ", "api"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ServiceName(tt.display))
		})
	}
}

// =============================================================================
// Catalog Tests
// =============================================================================

func TestLookup_PostgresImagePrefix(t *testing.T) {
	def := Lookup("postgresql")
	assert.True(t, strings.HasPrefix(def.Image, "postgres"), "image %q", def.Image)
}

func TestLookup_UnknownProductFallsBack(t *testing.T) {
	def := Lookup("unknown-thing")
	assert.Equal(t, FallbackImage, def.Image)
	assert.Equal(t, []string{"sleep", "infinity"}, def.Command)
}

func TestLookup_KnownProducts(t *testing.T) {
	for _, product := range []string{"postgresql", "mongodb", "redis", "mysql", "mariadb", "rabbitmq"} {
		def := Lookup(product)
		assert.NotEqual(t, FallbackImage, def.Image, "product %s", product)
	}
}

// =============================================================================
// Generate Tests
// =============================================================================

func TestGenerate_NoDockerfile(t *testing.T) {
	cfg := testConfig()
	cfg.Project.HasDockerfile = false

	_, err := Generate(cfg)
	assert.ErrorIs(t, err, ErrNoDockerfile)
}

func TestGenerate_AppServiceBoundToPort(t *testing.T) {
	manifest, err := Generate(testConfig())
	require.NoError(t, err)

	assert.Contains(t, manifest, "order-service:")
	assert.Contains(t, manifest, `- "8080:8080"`)
}

func TestGenerate_DependsOnInfrastructureServicesOnly(t *testing.T) {
	manifest, err := Generate(testConfig())
	require.NoError(t, err)

	assert.Contains(t, manifest, `- "main-postgres"`)
	assert.Contains(t, manifest, `- "session-cache"`)
	// SDK-only external services never appear
	assert.NotContains(t, manifest, "mailer")
}

func TestGenerate_SameDerivationForKeyAndDependency(t *testing.T) {
	manifest, err := Generate(testConfig())
	require.NoError(t, err)

	// The depends_on entry and the manifest key both come from
	// ServiceName, so both spellings must be present.
	assert.Contains(t, manifest, "main-postgres:")
	assert.Contains(t, manifest, `- "main-postgres"`)
}

func TestGenerate_NamedVolumeDeclared(t *testing.T) {
	manifest, err := Generate(testConfig())
	require.NoError(t, err)

	assert.Contains(t, manifest, "volumes:")
	assert.Contains(t, manifest, "postgres-data:")
}

func TestGenerate_EnvFileWhenDeclared(t *testing.T) {
	manifest, err := Generate(testConfig())
	require.NoError(t, err)
	assert.Contains(t, manifest, `- ".env"`)

	cfg := testConfig()
	cfg.Project.UsesEnvFile = false
	manifest, err = Generate(cfg)
	require.NoError(t, err)
	assert.NotContains(t, manifest, ".env")
}

// The env_file entry names a file on the developer's machine; the
// generator and its round-trip verification must not expect one here.
func TestGenerate_EnvFileEntryNeedsNoLocalFile(t *testing.T) {
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(orig) })

	manifest, err := Generate(testConfig())
	require.NoError(t, err)
	assert.Contains(t, manifest, `- ".env"`)
}

func TestGenerate_RejectsCollidingServiceNames(t *testing.T) {
	cfg := testConfig()
	cfg.Project.Services = []config.ExternalService{
		{Kind: config.ServiceCache, Name: "Redis  Cache", Product: "redis", RequiresInfrastructure: true},
		{Kind: config.ServiceCache, Name: "redis cache", Product: "redis", RequiresInfrastructure: true},
	}
	cfg.Cloud.Deployment.EnvironmentVariables = nil

	manifest, err := Generate(cfg)
	assert.Empty(t, manifest)
	assert.ErrorIs(t, err, ErrDuplicateServiceName)
}

func TestGenerate_RejectsServiceShadowingApplication(t *testing.T) {
	cfg := testConfig()
	cfg.Project.Services = append(cfg.Project.Services, config.ExternalService{
		Kind: config.ServiceCustom, Name: "ORDER  SERVICE", Product: "redis", RequiresInfrastructure: true,
	})

	manifest, err := Generate(cfg)
	assert.Empty(t, manifest)
	assert.ErrorIs(t, err, ErrDuplicateServiceName)
}

func TestGenerate_UnknownProductGetsInertPlaceholder(t *testing.T) {
	cfg := testConfig()
	cfg.Project.Services = []config.ExternalService{
		{Kind: config.ServiceCustom, Name: "Mystery Box", Product: "unknown-thing", RequiresInfrastructure: true},
	}
	cfg.Cloud.Deployment.EnvironmentVariables = nil

	manifest, err := Generate(cfg)
	require.NoError(t, err)

	assert.Contains(t, manifest, "mystery-box:")
	assert.Contains(t, manifest, FallbackImage)
}

func TestGenerate_NoExternalServices(t *testing.T) {
	cfg := testConfig()
	cfg.Project.Services = nil
	cfg.Cloud.Deployment.EnvironmentVariables = nil

	manifest, err := Generate(cfg)
	require.NoError(t, err)

	assert.Contains(t, manifest, "order-service:")
	assert.NotContains(t, manifest, "depends_on")
}

func TestGenerate_Idempotent(t *testing.T) {
	first, err := Generate(testConfig())
	require.NoError(t, err)
	second, err := Generate(testConfig())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerate_PassesVerification(t *testing.T) {
	manifest, err := Generate(testConfig())
	require.NoError(t, err)
	assert.NoError(t, VerifyManifest(manifest))
}

// =============================================================================
// VerifyManifest Tests
// =============================================================================

func TestVerifyManifest_Empty(t *testing.T) {
	err := VerifyManifest("   \n")
	assert.ErrorIs(t, err, ErrInvalidManifest)
}

func TestVerifyManifest_NotYAML(t *testing.T) {
	err := VerifyManifest("services:\n  app:\n   broken: [unclosed")
	assert.ErrorIs(t, err, ErrInvalidManifest)
}
