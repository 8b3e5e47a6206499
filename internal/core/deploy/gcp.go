package deploy

import (
	"fmt"
	"strings"

	"github.com/artpar/pipeforge/internal/core/config"
)

// =============================================================================
// GCP (Cloud Run)
// =============================================================================

func generateGCP(cloud config.CloudConfig, creds config.GCPCredentials, name string) string {
	var b strings.Builder
	d := cloud.Deployment

	minInstances := d.MinInstances
	if minInstances < 1 {
		minInstances = 1
	}
	maxInstances := d.MaxInstances
	if maxInstances < minInstances {
		maxInstances = minInstances
	}
	if d.Strategy == config.StrategyCanary {
		// one instance above the configured minimum
		minInstances++
		if maxInstances < minInstances {
			maxInstances = minInstances
		}
	}

	scriptHeader(&b, name, cloud)

	// --- authentication ---
	b.WriteString("# authentication\n")
	if creds.UseOIDC {
		b.WriteString(`gcloud auth login --cred-file="${GOOGLE_WORKLOAD_IDENTITY_CONFIG}" --quiet
`)
	} else {
		b.WriteString(`gcloud auth activate-service-account --key-file="${GOOGLE_APPLICATION_CREDENTIALS}"
`)
	}
	fmt.Fprintf(&b, "gcloud config set project %q\ngcloud config set run/region %q\n\n", creds.ProjectID, cloud.Region)

	// --- provisioning + deploy ---
	// gcloud run deploy is create-or-update, so the existence probe only
	// decides whether a traffic migration is meaningful afterwards.
	b.WriteString("# deploy\n")
	fmt.Fprintf(&b, `SERVICE_EXISTS="$(gcloud run services describe %q --region %q --format 'value(metadata.name)' 2>/dev/null || true)"
`, name, cloud.Region)

	deployCmd := fmt.Sprintf(`gcloud run deploy %q \
  --image "${DOCKER_IMAGE}" \
  --platform managed \
  --region %q \
  --port %d \
  --min-instances=%d \
  --max-instances=%d \
  --allow-unauthenticated`,
		name, cloud.Region, d.Port, minInstances, maxInstances)

	switch d.Strategy {
	case config.StrategyRolling:
		fmt.Fprintf(&b, "%s\n", deployCmd)
		fmt.Fprintf(&b, `if [ -n "${SERVICE_EXISTS}" ]; then
  gcloud run services update-traffic %q --region %q --to-latest
fi
`, name, cloud.Region)
	case config.StrategyBlueGreen:
		fmt.Fprintf(&b, "# blue-green: stage the green revision without traffic, then cut over atomically\n")
		fmt.Fprintf(&b, "%s \\\n  --no-traffic --tag green\n", deployCmd)
		fmt.Fprintf(&b, "gcloud run services update-traffic %q --region %q --to-tags green=100\n", name, cloud.Region)
	case config.StrategyCanary:
		fmt.Fprintf(&b, "# canary: one instance above the configured minimum shifts a fraction of traffic;\n")
		fmt.Fprintf(&b, "# the traffic split itself is handled outside this script\n")
		fmt.Fprintf(&b, "%s \\\n  --tag canary\n", deployCmd)
	}
	b.WriteString("\n")

	// --- reachable URL ---
	b.WriteString("# reachable URL\n")
	if d.UseLoadBalancer {
		fmt.Fprintf(&b, "APP_URL=%q\n", d.LoadBalancerURL)
	} else {
		fmt.Fprintf(&b, "APP_URL=\"$(gcloud run services describe %q --region %q --format 'value(status.url)')\"\n", name, cloud.Region)
	}
	persistState(&b, "APP_URL", "${APP_URL}")

	// gcloud run deploy waits for the revision, not for traffic to reach
	// the configured endpoint.
	readinessGate(&b, d)

	return b.String()
}
