package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artpar/pipeforge/internal/core/config"
)

const sampleConfig = `
project:
  name: Order Service
  kind: backend
  language: go
  repo_url: https://github.com/acme/order-service.git
  branch: main
  has_dockerfile: true

cloud:
  provider: aws
  region: eu-west-1
  instance_type: t3.small
  credentials:
    access_key_id: AKIAEXAMPLE
    secret_access_key: shhh
    region: eu-west-1
    use_oidc: false
  deployment:
    tier: standard
    min_instances: 1
    max_instances: 1
    health_check_path: /healthz
    port: 8080
    strategy: rolling

notifications:
  email: ops@example.com

jenkins:
  agent_label: docker
  timeout_minutes: 30
  retry_count: 2
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pipeforge.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_FullAggregate(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "Order Service", cfg.Project.Name)
	assert.Equal(t, config.ProviderAWS, cfg.Cloud.Provider)
	assert.Equal(t, config.StrategyRolling, cfg.Cloud.Deployment.Strategy)
	assert.Equal(t, 8080, cfg.Cloud.Deployment.Port)

	creds, ok := cfg.Cloud.Credentials.(config.AWSCredentials)
	require.True(t, ok, "expected the AWS credential variant")
	assert.Equal(t, "AKIAEXAMPLE", creds.AccessKeyID)
	assert.Equal(t, "eu-west-1", creds.CredRegion())
	assert.False(t, creds.OIDC())

	assert.NoError(t, config.Validate(cfg))
}

func TestLoadConfig_DigitalOceanVariant(t *testing.T) {
	content := `
project:
  name: app
cloud:
  provider: digitalocean
  region: ams3
  credentials:
    api_token: dop_v1_example
    region: ams3
    use_oidc: true
`
	cfg, err := LoadConfig(writeConfig(t, content))
	require.NoError(t, err)

	creds, ok := cfg.Cloud.Credentials.(config.DigitalOceanCredentials)
	require.True(t, ok)
	assert.True(t, creds.UseOIDC)
}

func TestLoadConfig_UnknownProvider(t *testing.T) {
	content := `
cloud:
  provider: oracle
`
	_, err := LoadConfig(writeConfig(t, content))
	assert.ErrorIs(t, err, config.ErrUnsupportedProvider)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestSetupLogger_Levels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "bogus"} {
		assert.NotNil(t, SetupLogger(level, "text"))
	}
	assert.NotNil(t, SetupLogger("info", "json"))
}
