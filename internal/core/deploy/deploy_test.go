package deploy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artpar/pipeforge/internal/core/config"
)

const artifactName = "order-service"

func testCloud(p config.Provider, oidc bool) config.CloudConfig {
	cloud := config.CloudConfig{
		Provider: p,
		Deployment: config.DeploymentConfig{
			Tier:            "standard",
			MinInstances:    1,
			MaxInstances:    1,
			HealthCheckPath: "/healthz",
			Port:            8080,
			Strategy:        config.StrategyRolling,
		},
	}
	switch p {
	case config.ProviderAWS:
		cloud.Region = "eu-west-1"
		cloud.InstanceType = "t3.small"
		cloud.Credentials = config.AWSCredentials{Region: "eu-west-1", UseOIDC: oidc, RoleARN: "arn:aws:iam::1:role/deploy"}
	case config.ProviderAzure:
		cloud.Region = "westeurope"
		cloud.InstanceType = "Standard_B2s"
		cloud.Credentials = config.AzureCredentials{Region: "westeurope", UseOIDC: oidc}
	case config.ProviderGCP:
		cloud.Region = "europe-west1"
		cloud.InstanceType = "e2-small"
		cloud.Credentials = config.GCPCredentials{ProjectID: "acme-prod", Region: "europe-west1", UseOIDC: oidc}
	case config.ProviderDigitalOcean:
		cloud.Region = "ams3"
		cloud.InstanceType = "basic-xs"
		cloud.Credentials = config.DigitalOceanCredentials{Region: "ams3", UseOIDC: oidc}
	}
	return cloud
}

// =============================================================================
// Authentication Block Tests
// =============================================================================

var authMarkers = map[config.Provider]struct{ static, oidc string }{
	config.ProviderAWS:          {"aws configure set aws_access_key_id", "assume-role-with-web-identity"},
	config.ProviderAzure:        {`--password "${AZURE_CLIENT_SECRET}"`, "--federated-token"},
	config.ProviderGCP:          {"activate-service-account", "--cred-file"},
	config.ProviderDigitalOcean: {`"${DIGITALOCEAN_ACCESS_TOKEN}"`, `"${DIGITALOCEAN_OIDC_TOKEN}"`},
}

// For every provider and both auth modes, the output carries exactly
// one of the static-credential lines or the OIDC lines, never both,
// never neither.
func TestGenerate_AuthModeExclusivity(t *testing.T) {
	for _, p := range config.Providers() {
		markers := authMarkers[p]

		t.Run(string(p)+"/static", func(t *testing.T) {
			script, err := Generate(testCloud(p, false), artifactName)
			require.NoError(t, err)
			assert.Contains(t, script, markers.static)
			assert.NotContains(t, script, markers.oidc)
		})

		t.Run(string(p)+"/oidc", func(t *testing.T) {
			script, err := Generate(testCloud(p, true), artifactName)
			require.NoError(t, err)
			assert.Contains(t, script, markers.oidc)
			assert.NotContains(t, script, markers.static)
		})
	}
}

// =============================================================================
// Strategy Tests
// =============================================================================

var strategyMarkers = map[config.Provider]map[config.Strategy]string{
	config.ProviderAWS: {
		config.StrategyRolling:   "--force-new-deployment",
		config.StrategyBlueGreen: "maximumPercent=200,minimumHealthyPercent=100",
		config.StrategyCanary:    "--desired-count 2",
	},
	config.ProviderAzure: {
		config.StrategyRolling:   "az container restart",
		config.StrategyBlueGreen: "az container delete",
		config.StrategyCanary:    `--name "` + artifactName + `-canary-1"`,
	},
	config.ProviderGCP: {
		config.StrategyRolling:   "--to-latest",
		config.StrategyBlueGreen: "--to-tags green=100",
		config.StrategyCanary:    "--tag canary",
	},
	config.ProviderDigitalOcean: {
		config.StrategyRolling:   "--force-rebuild",
		config.StrategyBlueGreen: "--wait",
		config.StrategyCanary:    "instance_count: 2",
	},
}

// Each strategy's distinguishing command appears exactly once in its
// own output and never in the other strategies' output.
func TestGenerate_StrategyDistinguishingCommand(t *testing.T) {
	for _, p := range config.Providers() {
		for _, s := range config.Strategies() {
			t.Run(string(p)+"/"+string(s), func(t *testing.T) {
				cloud := testCloud(p, false)
				cloud.Deployment.Strategy = s

				script, err := Generate(cloud, artifactName)
				require.NoError(t, err)

				marker := strategyMarkers[p][s]
				assert.Equal(t, 1, strings.Count(script, marker),
					"marker %q in:\n%s", marker, script)

				for _, other := range config.Strategies() {
					if other == s {
						continue
					}
					otherCloud := testCloud(p, false)
					otherCloud.Deployment.Strategy = other
					otherScript, err := Generate(otherCloud, artifactName)
					require.NoError(t, err)
					assert.NotContains(t, otherScript, marker,
						"marker %q for %s leaked into %s", marker, s, other)
				}
			})
		}
	}
}

// =============================================================================
// Existence Probe Tests
// =============================================================================

var probeMarkers = map[config.Provider]string{
	config.ProviderAWS:          "aws ecs describe-services",
	config.ProviderAzure:        "az container show",
	config.ProviderGCP:          "gcloud run services describe",
	config.ProviderDigitalOcean: "doctl apps list",
}

func TestGenerate_EmbedsRuntimeExistenceProbe(t *testing.T) {
	for _, p := range config.Providers() {
		script, err := Generate(testCloud(p, false), artifactName)
		require.NoError(t, err)
		assert.Contains(t, script, probeMarkers[p], "provider %s", p)
	}
}

// =============================================================================
// URL Resolution Tests
// =============================================================================

func TestGenerate_LoadBalancerURLTakesPrecedence(t *testing.T) {
	for _, p := range config.Providers() {
		cloud := testCloud(p, false)
		cloud.Deployment.UseLoadBalancer = true
		cloud.Deployment.LoadBalancerURL = "https://api.example.com"

		script, err := Generate(cloud, artifactName)
		require.NoError(t, err)

		assert.Contains(t, script, `APP_URL="https://api.example.com"`, "provider %s", p)
	}
}

var urlDerivationMarkers = map[config.Provider]string{
	config.ProviderAWS:          "describe-network-interfaces",
	config.ProviderAzure:        "ipAddress.fqdn",
	config.ProviderGCP:          "value(status.url)",
	config.ProviderDigitalOcean: "--format LiveURL",
}

func TestGenerate_RuntimeURLDerivationWithoutLoadBalancer(t *testing.T) {
	for _, p := range config.Providers() {
		cloud := testCloud(p, false)

		script, err := Generate(cloud, artifactName)
		require.NoError(t, err)

		assert.Contains(t, script, urlDerivationMarkers[p], "provider %s", p)
		assert.NotContains(t, script, "api.example.com")
	}
}

func TestGenerate_LoadBalancerSkipsDerivation(t *testing.T) {
	for _, p := range config.Providers() {
		cloud := testCloud(p, false)
		cloud.Deployment.UseLoadBalancer = true
		cloud.Deployment.LoadBalancerURL = "https://api.example.com"

		script, err := Generate(cloud, artifactName)
		require.NoError(t, err)

		assert.NotContains(t, script, urlDerivationMarkers[p], "provider %s", p)
	}
}

func TestGenerate_PersistsURLToStateFile(t *testing.T) {
	for _, p := range config.Providers() {
		script, err := Generate(testCloud(p, false), artifactName)
		require.NoError(t, err)
		assert.Contains(t, script, `echo "APP_URL=${APP_URL}" >> `+StateFile, "provider %s", p)
	}
}

// =============================================================================
// Purity and Defect Tests
// =============================================================================

func TestGenerate_Idempotent(t *testing.T) {
	for _, p := range config.Providers() {
		first, err := Generate(testCloud(p, false), artifactName)
		require.NoError(t, err)
		second, err := Generate(testCloud(p, false), artifactName)
		require.NoError(t, err)
		assert.Equal(t, first, second, "provider %s", p)
	}
}

func TestGenerate_NilCredentials(t *testing.T) {
	cloud := testCloud(config.ProviderAWS, false)
	cloud.Credentials = nil

	script, err := Generate(cloud, artifactName)
	assert.Empty(t, script, "no partial output on defect")
	assert.ErrorIs(t, err, config.ErrProviderMismatch)
}

func TestGenerate_CredentialProviderMismatch(t *testing.T) {
	cloud := testCloud(config.ProviderAWS, false)
	cloud.Provider = config.ProviderAzure

	script, err := Generate(cloud, artifactName)
	assert.Empty(t, script)
	assert.ErrorIs(t, err, config.ErrProviderMismatch)
}

func TestGenerate_ConfiguredPortEverywhere(t *testing.T) {
	for _, p := range config.Providers() {
		script, err := Generate(testCloud(p, false), artifactName)
		require.NoError(t, err)
		assert.Contains(t, script, "8080", "provider %s", p)
		// the generator must never invent its own port
		assert.NotContains(t, script, "3000", "provider %s", p)
	}
}

// AWS embeds the probe in the task definition, DigitalOcean in the app
// spec, Azure and GCP in the post-deploy readiness gate.
func TestGenerate_HealthCheckPathPresent(t *testing.T) {
	for _, p := range config.Providers() {
		script, err := Generate(testCloud(p, false), artifactName)
		require.NoError(t, err)
		assert.Contains(t, script, "/healthz", "provider %s", p)
	}
}

// az container create and gcloud run deploy return before the
// application accepts traffic, so those fragments hold the stage until
// the health endpoint answers.
func TestGenerate_ReadinessGatePollsHealthEndpoint(t *testing.T) {
	for _, p := range []config.Provider{config.ProviderAzure, config.ProviderGCP} {
		script, err := Generate(testCloud(p, false), artifactName)
		require.NoError(t, err)
		assert.Contains(t, script, `"${APP_URL}/healthz"`, "provider %s", p)
	}
}
