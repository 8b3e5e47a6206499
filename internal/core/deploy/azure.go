package deploy

import (
	"fmt"
	"strings"

	"github.com/artpar/pipeforge/internal/core/config"
	"github.com/artpar/pipeforge/internal/core/provider"
)

// =============================================================================
// Azure (Container Instances)
// =============================================================================

func generateAzure(cloud config.CloudConfig, creds config.AzureCredentials, name string) string {
	var b strings.Builder
	d := cloud.Deployment
	group := name + "-rg"
	sizing := provider.Resolve(config.ProviderAzure, cloud.InstanceType)
	memoryGB := float64(sizing.MemoryMB) / 1024

	scriptHeader(&b, name, cloud)

	// --- authentication ---
	b.WriteString("# authentication\n")
	if creds.UseOIDC {
		b.WriteString(`az login --service-principal \
  --username "${AZURE_CLIENT_ID}" \
  --tenant "${AZURE_TENANT_ID}" \
  --federated-token "${AZURE_FEDERATED_TOKEN}"
`)
	} else {
		b.WriteString(`az login --service-principal \
  --username "${AZURE_CLIENT_ID}" \
  --password "${AZURE_CLIENT_SECRET}" \
  --tenant "${AZURE_TENANT_ID}"
`)
	}
	b.WriteString("az account set --subscription \"${AZURE_SUBSCRIPTION_ID}\"\n\n")

	// --- provisioning ---
	b.WriteString("# provisioning\n")
	fmt.Fprintf(&b, "az group create --name %q --location %q --output none\n\n", group, cloud.Region)

	// --- deploy ---
	b.WriteString("# deploy\n")
	fmt.Fprintf(&b, `CONTAINER_STATE="$(az container show --name %q --resource-group %q --query 'provisioningState' --output tsv 2>/dev/null || true)"
`, name, group)

	createContainer := func(containerName, extra string) string {
		return fmt.Sprintf(`az container create --name %q --resource-group %q \
  --image "${DOCKER_IMAGE}" \
  --ports %d \
  --cpu %d --memory %.1f \
  --dns-name-label %q \
  --restart-policy Always%s --output none`,
			containerName, group, d.Port, sizing.CPUUnits, memoryGB, containerName, extra)
	}

	fmt.Fprintf(&b, "if [ -z \"${CONTAINER_STATE}\" ]; then\n  %s\nelse\n", createContainer(name, ""))
	switch d.Strategy {
	case config.StrategyRolling:
		fmt.Fprintf(&b, "  %s\n", createContainer(name, ""))
		fmt.Fprintf(&b, "  az container restart --name %q --resource-group %q\n", name, group)
	case config.StrategyBlueGreen:
		fmt.Fprintf(&b, "  # blue-green: bring up the green instance, then retire the blue one\n")
		fmt.Fprintf(&b, "  %s\n", createContainer(name+"-green", ""))
		fmt.Fprintf(&b, "  az container delete --name %q --resource-group %q --yes\n", name, group)
	case config.StrategyCanary:
		fmt.Fprintf(&b, "  # canary: one instance above the configured minimum shifts a fraction of traffic;\n")
		fmt.Fprintf(&b, "  # the traffic split itself is handled outside this script\n")
		fmt.Fprintf(&b, "  %s\n", createContainer(name, ""))
		fmt.Fprintf(&b, "  %s\n", createContainer(name+"-canary-1", ""))
	}
	b.WriteString("fi\n\n")

	// --- reachable URL ---
	b.WriteString("# reachable URL\n")
	if d.UseLoadBalancer {
		fmt.Fprintf(&b, "APP_URL=%q\n", d.LoadBalancerURL)
	} else {
		fmt.Fprintf(&b, `APP_FQDN="$(az container show --name %q --resource-group %q --query 'ipAddress.fqdn' --output tsv)"
APP_URL="http://${APP_FQDN}:%d"
`, name, group, d.Port)
	}
	persistState(&b, "APP_URL", "${APP_URL}")

	// az container create returns once provisioning starts, not once the
	// application listens.
	readinessGate(&b, d)

	return b.String()
}
