// Package terraform emits the declarative infrastructure manifest for a
// deployment target. This is part of the Functional Core - all
// functions are pure with no I/O.
//
// The manifest uses the identical artifact name, region, port and
// health-check path as the deployment script generator; any divergence
// between the two for the same input is a correctness defect. Values
// supplied at apply time (secrets, image references) are emitted as
// variables, never literals.
package terraform

import (
	"fmt"
	"strings"

	"github.com/artpar/pipeforge/internal/core/config"
	"github.com/artpar/pipeforge/internal/core/provider"
)

// =============================================================================
// Errors
// =============================================================================

// GenerateError wraps a configuration defect found while emitting the
// infrastructure manifest.
type GenerateError struct {
	Provider config.Provider
	Message  string
	Err      error
}

func (e *GenerateError) Error() string {
	return fmt.Sprintf("terraform generator (%s): %s", e.Provider, e.Message)
}

func (e *GenerateError) Unwrap() error {
	return e.Err
}

// =============================================================================
// Generator
// =============================================================================

// Generate emits one resource tree per provider: ECS cluster/task/role,
// resource group + container group, Cloud Run service + public invoker
// grant, or an App Platform spec.
func Generate(cloud config.CloudConfig, artifactName string) (string, error) {
	switch cloud.Provider {
	case config.ProviderAWS:
		return generateAWS(cloud, artifactName), nil
	case config.ProviderAzure:
		return generateAzure(cloud, artifactName), nil
	case config.ProviderGCP:
		return generateGCP(cloud, artifactName), nil
	case config.ProviderDigitalOcean:
		return generateDigitalOcean(cloud, artifactName), nil
	default:
		return "", &GenerateError{
			Provider: cloud.Provider,
			Message:  fmt.Sprintf("unknown provider %q", cloud.Provider),
			Err:      config.ErrUnsupportedProvider,
		}
	}
}

// instanceBounds returns the min/max capacity the manifest declares.
// Fixed-capacity deployments pin both bounds to 1.
func instanceBounds(d config.DeploymentConfig) (min, max int) {
	if !d.AutoScaling {
		return 1, 1
	}
	min = d.MinInstances
	if min < 1 {
		min = 1
	}
	max = d.MaxInstances
	if max < min {
		max = min
	}
	return min, max
}

func header(b *strings.Builder, artifactName string, cloud config.CloudConfig) {
	fmt.Fprintf(b, "# Infrastructure for %s (%s)\n", artifactName, cloud.Provider)
	fmt.Fprintf(b, "# Generated by pipeforge; apply-time values are supplied as variables.\n\n")
}

func imageVariable(b *strings.Builder) {
	b.WriteString(`variable "docker_image" {
  description = "Container image reference pushed by the pipeline"
  type        = string
}

`)
}

// =============================================================================
// AWS
// =============================================================================

func generateAWS(cloud config.CloudConfig, name string) string {
	var b strings.Builder
	d := cloud.Deployment
	sizing := provider.Resolve(config.ProviderAWS, cloud.InstanceType)
	min, max := instanceBounds(d)

	header(&b, name, cloud)
	b.WriteString(`terraform {
  required_providers {
    aws = {
      source  = "hashicorp/aws"
      version = "~> 5.0"
    }
  }
}

`)
	imageVariable(&b)
	fmt.Fprintf(&b, "provider \"aws\" {\n  region = %q\n}\n\n", cloud.Region)

	fmt.Fprintf(&b, "resource \"aws_ecs_cluster\" \"main\" {\n  name = %q\n}\n\n", name+"-cluster")

	b.WriteString(`resource "aws_iam_role" "task_execution" {
  name = "`)
	b.WriteString(name)
	b.WriteString(`-task-execution"
  assume_role_policy = jsonencode({
    Version = "2012-10-17"
    Statement = [{
      Action    = "sts:AssumeRole"
      Effect    = "Allow"
      Principal = { Service = "ecs-tasks.amazonaws.com" }
    }]
  })
}

resource "aws_iam_role_policy_attachment" "task_execution" {
  role       = aws_iam_role.task_execution.name
  policy_arn = "arn:aws:iam::aws:policy/service-role/AmazonECSTaskExecutionRolePolicy"
}

`)

	fmt.Fprintf(&b, `resource "aws_ecs_task_definition" "app" {
  family                   = %q
  network_mode             = "awsvpc"
  requires_compatibilities = ["FARGATE"]
  cpu                      = %q
  memory                   = %q
  execution_role_arn       = aws_iam_role.task_execution.arn

  container_definitions = jsonencode([{
    name      = %q
    image     = var.docker_image
    essential = true
    portMappings = [{ containerPort = %d, protocol = "tcp" }]
    healthCheck = {
      command  = ["CMD-SHELL", "curl -f http://localhost:%d%s || exit 1"]
      interval = 30
      timeout  = 5
      retries  = 3
    }
  }])
}

`, name+"-task", fmt.Sprint(sizing.CPUUnits), fmt.Sprint(sizing.MemoryMB),
		name, d.Port, d.Port, d.HealthCheckPath)

	fmt.Fprintf(&b, `resource "aws_ecs_service" "app" {
  name            = %q
  cluster         = aws_ecs_cluster.main.id
  task_definition = aws_ecs_task_definition.app.arn
  desired_count   = %d
  launch_type     = "FARGATE"

  network_configuration {
    subnets          = var.subnet_ids
    assign_public_ip = true
  }
}

variable "subnet_ids" {
  description = "Subnets the service tasks run in"
  type        = list(string)
}
`, name+"-service", min)

	if d.AutoScaling {
		fmt.Fprintf(&b, `
resource "aws_appautoscaling_target" "app" {
  service_namespace  = "ecs"
  resource_id        = "service/%s/%s"
  scalable_dimension = "ecs:service:DesiredCount"
  min_capacity       = %d
  max_capacity       = %d
}
`, name+"-cluster", name+"-service", min, max)
	}

	return b.String()
}

// =============================================================================
// Azure
// =============================================================================

func generateAzure(cloud config.CloudConfig, name string) string {
	var b strings.Builder
	d := cloud.Deployment
	sizing := provider.Resolve(config.ProviderAzure, cloud.InstanceType)
	memoryGB := float64(sizing.MemoryMB) / 1024

	header(&b, name, cloud)
	b.WriteString(`terraform {
  required_providers {
    azurerm = {
      source  = "hashicorp/azurerm"
      version = "~> 3.0"
    }
  }
}

provider "azurerm" {
  features {}
}

`)
	imageVariable(&b)

	fmt.Fprintf(&b, "resource \"azurerm_resource_group\" \"main\" {\n  name     = %q\n  location = %q\n}\n\n",
		name+"-rg", cloud.Region)

	fmt.Fprintf(&b, `resource "azurerm_container_group" "app" {
  name                = %q
  location            = azurerm_resource_group.main.location
  resource_group_name = azurerm_resource_group.main.name
  ip_address_type     = "Public"
  dns_name_label      = %q
  os_type             = "Linux"
  restart_policy      = "Always"

  container {
    name   = %q
    image  = var.docker_image
    cpu    = %d
    memory = %.1f

    ports {
      port     = %d
      protocol = "TCP"
    }

    liveness_probe {
      http_get {
        path = %q
        port = %d
      }
      initial_delay_seconds = 10
      period_seconds        = 30
    }
  }
}
`, name, name, name, sizing.CPUUnits, memoryGB, d.Port, d.HealthCheckPath, d.Port)

	return b.String()
}

// =============================================================================
// GCP
// =============================================================================

func generateGCP(cloud config.CloudConfig, name string) string {
	var b strings.Builder
	d := cloud.Deployment
	min, max := instanceBounds(d)

	creds, _ := cloud.Credentials.(config.GCPCredentials)

	header(&b, name, cloud)
	b.WriteString(`terraform {
  required_providers {
    google = {
      source  = "hashicorp/google"
      version = "~> 5.0"
    }
  }
}

`)
	imageVariable(&b)
	fmt.Fprintf(&b, "provider \"google\" {\n  project = %q\n  region  = %q\n}\n\n", creds.ProjectID, cloud.Region)

	fmt.Fprintf(&b, `resource "google_cloud_run_service" "app" {
  name     = %q
  location = %q

  template {
    metadata {
      annotations = {
        "autoscaling.knative.dev/minScale" = "%d"
        "autoscaling.knative.dev/maxScale" = "%d"
      }
    }
    spec {
      containers {
        image = var.docker_image
        ports {
          container_port = %d
        }
        startup_probe {
          http_get {
            path = %q
            port = %d
          }
        }
      }
    }
  }

  traffic {
    percent         = 100
    latest_revision = true
  }
}

resource "google_cloud_run_service_iam_member" "public" {
  service  = google_cloud_run_service.app.name
  location = google_cloud_run_service.app.location
  role     = "roles/run.invoker"
  member   = "allUsers"
}
`, name, cloud.Region, min, max, d.Port, d.HealthCheckPath, d.Port)

	return b.String()
}

// =============================================================================
// DigitalOcean
// =============================================================================

func generateDigitalOcean(cloud config.CloudConfig, name string) string {
	var b strings.Builder
	d := cloud.Deployment
	min, _ := instanceBounds(d)
	size := cloud.InstanceType
	if size == "" {
		size = "basic-xxs"
	}

	header(&b, name, cloud)
	b.WriteString(`terraform {
  required_providers {
    digitalocean = {
      source  = "digitalocean/digitalocean"
      version = "~> 2.0"
    }
  }
}

variable "do_token" {
  description = "DigitalOcean API token"
  type        = string
  sensitive   = true
}

`)
	imageVariable(&b)
	b.WriteString("provider \"digitalocean\" {\n  token = var.do_token\n}\n\n")

	fmt.Fprintf(&b, `resource "digitalocean_app" "app" {
  spec {
    name   = %q
    region = %q

    service {
      name               = %q
      http_port          = %d
      instance_count     = %d
      instance_size_slug = %q

      image {
        registry_type = "DOCR"
        repository    = var.docker_image
      }

      health_check {
        http_path = %q
      }
    }
  }
}
`, name, cloud.Region, name, d.Port, min, size, d.HealthCheckPath)

	return b.String()
}
