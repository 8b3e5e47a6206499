package pipeline

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artpar/pipeforge/internal/core/compose"
	"github.com/artpar/pipeforge/internal/core/deploy"
	"github.com/artpar/pipeforge/internal/core/terraform"
)

// The three emitted artifacts describe one service. The port, the
// health-check path and the derived service name must agree across all
// of them for the same input.
func TestArtifacts_ShareServiceIdentity(t *testing.T) {
	cfg := testConfig()
	name := compose.ServiceName(cfg.Project.Name)
	require.Equal(t, "order-service", name)

	script, err := deploy.Generate(cfg.Cloud, name)
	require.NoError(t, err)
	manifest, err := terraform.Generate(cfg.Cloud, name)
	require.NoError(t, err)
	composeFile, err := compose.Generate(cfg)
	require.NoError(t, err)

	for label, artifact := range map[string]string{
		"deploy":    script,
		"terraform": manifest,
		"compose":   composeFile,
	} {
		assert.Contains(t, artifact, name, "%s artifact", label)
		assert.Contains(t, artifact, fmt.Sprint(cfg.Cloud.Deployment.Port), "%s artifact", label)
	}

	// compose binds the host port but has no health-check stanza
	for label, artifact := range map[string]string{
		"deploy":    script,
		"terraform": manifest,
	} {
		assert.Contains(t, artifact, cfg.Cloud.Deployment.HealthCheckPath, "%s artifact", label)
	}
}

// Changing only the port must move every artifact in lockstep.
func TestArtifacts_PortChangesPropagate(t *testing.T) {
	cfg := testConfig()
	cfg.Cloud.Deployment.Port = 9191
	name := compose.ServiceName(cfg.Project.Name)

	script, err := deploy.Generate(cfg.Cloud, name)
	require.NoError(t, err)
	manifest, err := terraform.Generate(cfg.Cloud, name)
	require.NoError(t, err)
	composeFile, err := compose.Generate(cfg)
	require.NoError(t, err)

	assert.Contains(t, script, "9191")
	assert.Contains(t, manifest, "containerPort = 9191")
	assert.Contains(t, composeFile, `"9191:9191"`)
	assert.NotContains(t, manifest, "8080")
}
