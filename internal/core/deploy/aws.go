package deploy

import (
	"fmt"
	"strings"

	"github.com/artpar/pipeforge/internal/core/config"
	"github.com/artpar/pipeforge/internal/core/provider"
)

// =============================================================================
// AWS (ECS on Fargate)
// =============================================================================

func generateAWS(cloud config.CloudConfig, creds config.AWSCredentials, name string) string {
	var b strings.Builder
	d := cloud.Deployment
	cluster := name + "-cluster"
	service := name + "-service"
	family := name + "-task"
	sizing := provider.Resolve(config.ProviderAWS, cloud.InstanceType)

	scriptHeader(&b, name, cloud)

	// --- authentication ---
	b.WriteString("# authentication\n")
	if creds.UseOIDC {
		fmt.Fprintf(&b, `WEB_IDENTITY_CREDS="$(aws sts assume-role-with-web-identity \
  --role-arn "${AWS_ROLE_ARN}" \
  --role-session-name "%s-deploy" \
  --web-identity-token "$(cat "${AWS_WEB_IDENTITY_TOKEN_FILE}")" \
  --query 'Credentials' --output json)"
export AWS_ACCESS_KEY_ID="$(printf '%%s' "${WEB_IDENTITY_CREDS}" | jq -r '.AccessKeyId')"
export AWS_SECRET_ACCESS_KEY="$(printf '%%s' "${WEB_IDENTITY_CREDS}" | jq -r '.SecretAccessKey')"
export AWS_SESSION_TOKEN="$(printf '%%s' "${WEB_IDENTITY_CREDS}" | jq -r '.SessionToken')"
`, name)
	} else {
		b.WriteString(`aws configure set aws_access_key_id "${AWS_ACCESS_KEY_ID}"
aws configure set aws_secret_access_key "${AWS_SECRET_ACCESS_KEY}"
`)
	}
	fmt.Fprintf(&b, "export AWS_DEFAULT_REGION=%q\n\n", cloud.Region)

	// --- provisioning ---
	b.WriteString("# provisioning\n")
	fmt.Fprintf(&b, `CLUSTER_STATUS="$(aws ecs describe-clusters --clusters %q --query 'clusters[0].status' --output text 2>/dev/null || true)"
if [ "${CLUSTER_STATUS}" != "ACTIVE" ]; then
  aws ecs create-cluster --cluster-name %q
fi
`, cluster, cluster)
	fmt.Fprintf(&b, `cat > task-definition.json <<TASKDEF
{
  "family": %q,
  "networkMode": "awsvpc",
  "requiresCompatibilities": ["FARGATE"],
  "cpu": "%d",
  "memory": "%d",
  "executionRoleArn": "${AWS_EXECUTION_ROLE_ARN}",
  "containerDefinitions": [
    {
      "name": %q,
      "image": "${DOCKER_IMAGE}",
      "essential": true,
      "portMappings": [{"containerPort": %d, "protocol": "tcp"}],
      "healthCheck": {
        "command": ["CMD-SHELL", "curl -f %s || exit 1"],
        "interval": 30,
        "timeout": 5,
        "retries": 3
      }
    }
  ]
}
TASKDEF
aws ecs register-task-definition --cli-input-json file://task-definition.json

`, family, sizing.CPUUnits, sizing.MemoryMB, name, d.Port, healthCheckURL(d))

	// --- deploy ---
	b.WriteString("# deploy\n")
	fmt.Fprintf(&b, `SERVICE_COUNT="$(aws ecs describe-services --cluster %q --services %q --query 'length(services[?status==`+"`ACTIVE`"+`])' --output text 2>/dev/null || echo 0)"
if [ "${SERVICE_COUNT}" = "0" ]; then
  aws ecs create-service --cluster %q --service-name %q \
    --task-definition %q --desired-count %d --launch-type FARGATE \
    --network-configuration "awsvpcConfiguration={subnets=[${AWS_SUBNET_IDS}],assignPublicIp=ENABLED}"
else
`, cluster, service, cluster, service, family, baseMin(d))
	switch d.Strategy {
	case config.StrategyRolling:
		fmt.Fprintf(&b, "  aws ecs update-service --cluster %q --service %q \\\n    --task-definition %q --force-new-deployment\n", cluster, service, family)
	case config.StrategyBlueGreen:
		fmt.Fprintf(&b, "  # blue-green: the new task definition revision replaces the running version atomically\n")
		fmt.Fprintf(&b, "  aws ecs update-service --cluster %q --service %q \\\n    --task-definition %q \\\n    --deployment-configuration \"maximumPercent=200,minimumHealthyPercent=100\"\n", cluster, service, family)
	case config.StrategyCanary:
		fmt.Fprintf(&b, "  # canary: one instance above the configured minimum shifts a fraction of traffic;\n")
		fmt.Fprintf(&b, "  # the traffic split itself is handled outside this script\n")
		fmt.Fprintf(&b, "  aws ecs update-service --cluster %q --service %q \\\n    --task-definition %q --desired-count %d\n", cluster, service, family, desiredCount(d))
	}
	b.WriteString("fi\n\n")

	// --- reachable URL ---
	b.WriteString("# reachable URL\n")
	if d.UseLoadBalancer {
		fmt.Fprintf(&b, "APP_URL=%q\n", d.LoadBalancerURL)
	} else {
		fmt.Fprintf(&b, `TASK_ARN="$(aws ecs list-tasks --cluster %q --service-name %q --query 'taskArns[0]' --output text)"
ENI_ID="$(aws ecs describe-tasks --cluster %q --tasks "${TASK_ARN}" \
  --query "tasks[0].attachments[0].details[?name=='networkInterfaceId'].value" --output text)"
PUBLIC_IP="$(aws ec2 describe-network-interfaces --network-interface-ids "${ENI_ID}" \
  --query 'NetworkInterfaces[0].Association.PublicIp' --output text)"
APP_URL="http://${PUBLIC_IP}:%d"
`, cluster, service, cluster, d.Port)
	}
	persistState(&b, "APP_URL", "${APP_URL}")

	return b.String()
}
