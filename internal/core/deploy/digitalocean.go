package deploy

import (
	"fmt"
	"strings"

	"github.com/artpar/pipeforge/internal/core/config"
)

// =============================================================================
// DigitalOcean (App Platform)
// =============================================================================

func generateDigitalOcean(cloud config.CloudConfig, creds config.DigitalOceanCredentials, name string) string {
	var b strings.Builder
	d := cloud.Deployment
	size := cloud.InstanceType
	if size == "" {
		size = "basic-xxs"
	}

	scriptHeader(&b, name, cloud)

	// --- authentication ---
	b.WriteString("# authentication\n")
	if creds.UseOIDC {
		b.WriteString(`# exchange the workload identity token for a short-lived access token
DO_TEMP_TOKEN="$(curl -fsS -X POST "https://cloud.digitalocean.com/v1/oauth/token" \
  -H "Content-Type: application/x-www-form-urlencoded" \
  --data-urlencode "grant_type=urn:ietf:params:oauth:grant-type:token-exchange" \
  --data-urlencode "subject_token=${DIGITALOCEAN_OIDC_TOKEN}" | jq -r '.access_token')"
doctl auth init --access-token "${DO_TEMP_TOKEN}"
`)
	} else {
		b.WriteString("doctl auth init --access-token \"${DIGITALOCEAN_ACCESS_TOKEN}\"\n")
	}
	b.WriteString("\n")

	// --- provisioning ---
	b.WriteString("# provisioning\n")
	fmt.Fprintf(&b, `cat > app-spec.yaml <<APPSPEC
name: %s
region: %s
services:
  - name: %s
    image:
      registry_type: DOCR
      repository: %s
      tag: ${DOCKER_IMAGE_TAG}
    http_port: %d
    instance_count: %d
    instance_size_slug: %s
    health_check:
      http_path: %s
APPSPEC

`, name, cloud.Region, name, name, d.Port, desiredCount(d), size, d.HealthCheckPath)

	// --- deploy ---
	b.WriteString("# deploy\n")
	fmt.Fprintf(&b, `APP_ID="$(doctl apps list --format ID,Spec.Name --no-header | awk '$2 == "%s" {print $1}')"
if [ -z "${APP_ID}" ]; then
  doctl apps create --spec app-spec.yaml
  APP_ID="$(doctl apps list --format ID,Spec.Name --no-header | awk '$2 == "%s" {print $1}')"
else
`, name, name)
	switch d.Strategy {
	case config.StrategyRolling:
		b.WriteString(`  doctl apps update "${APP_ID}" --spec app-spec.yaml
  doctl apps create-deployment "${APP_ID}" --force-rebuild
`)
	case config.StrategyBlueGreen:
		b.WriteString(`  # blue-green: App Platform builds the new version in full before swapping traffic
  doctl apps update "${APP_ID}" --spec app-spec.yaml --wait
`)
	case config.StrategyCanary:
		b.WriteString(`  # canary: one instance above the configured minimum shifts a fraction of traffic;
  # the traffic split itself is handled outside this script
  doctl apps update "${APP_ID}" --spec app-spec.yaml
`)
	}
	b.WriteString("fi\n\n")

	// --- reachable URL ---
	b.WriteString("# reachable URL\n")
	if d.UseLoadBalancer {
		fmt.Fprintf(&b, "APP_URL=%q\n", d.LoadBalancerURL)
	} else {
		b.WriteString(`APP_URL="$(doctl apps get "${APP_ID}" --format LiveURL --no-header)"
`)
	}
	persistState(&b, "APP_URL", "${APP_URL}")

	return b.String()
}
