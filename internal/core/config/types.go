// Package config defines the configuration aggregate consumed by every
// artifact generator. This is part of the Functional Core - pure data,
// no behavior beyond derivation and validation helpers.
//
// The aggregate is built once (by the wizard or the config loader),
// handed read-only to each generator, and discarded after the artifacts
// are written.
package config

// =============================================================================
// Closed Tag Sets
// =============================================================================

// Provider identifies one of the four supported cloud targets.
type Provider string

const (
	ProviderAWS          Provider = "aws"
	ProviderAzure        Provider = "azure"
	ProviderGCP          Provider = "gcp"
	ProviderDigitalOcean Provider = "digitalocean"
)

// Providers returns all supported providers in stable order.
func Providers() []Provider {
	return []Provider{ProviderAWS, ProviderAzure, ProviderGCP, ProviderDigitalOcean}
}

// Strategy identifies the traffic-cutover technique encoded into the
// emitted update logic.
type Strategy string

const (
	StrategyRolling   Strategy = "rolling"
	StrategyBlueGreen Strategy = "blue-green"
	StrategyCanary    Strategy = "canary"
)

// Strategies returns all supported deployment strategies in stable order.
func Strategies() []Strategy {
	return []Strategy{StrategyRolling, StrategyBlueGreen, StrategyCanary}
}

// ProjectKind classifies the application being deployed.
type ProjectKind string

const (
	ProjectFrontend  ProjectKind = "frontend"
	ProjectBackend   ProjectKind = "backend"
	ProjectFullstack ProjectKind = "fullstack"
)

// ServiceKind classifies a declared external runtime dependency.
type ServiceKind string

const (
	ServiceDatabase   ServiceKind = "database"
	ServiceCache      ServiceKind = "cache"
	ServiceQueue      ServiceKind = "queue"
	ServiceStorage    ServiceKind = "storage"
	ServiceEmail      ServiceKind = "email"
	ServiceMonitoring ServiceKind = "monitoring"
	ServiceCustom     ServiceKind = "custom"
)

// Channel identifies a notification channel.
type Channel string

const (
	ChannelSlack    Channel = "slack"
	ChannelDiscord  Channel = "discord"
	ChannelTeams    Channel = "teams"
	ChannelTelegram Channel = "telegram"
)

// =============================================================================
// Project Types
// =============================================================================

// EnvVariable describes one environment variable required by an
// external service. Keys are unique within one ExternalService; the
// Secret flag drives redaction in the configuration backup.
type EnvVariable struct {
	Key         string `yaml:"key" mapstructure:"key"`
	Secret      bool   `yaml:"secret" mapstructure:"secret"`
	Description string `yaml:"description,omitempty" mapstructure:"description"`
}

// ExternalService is a declared runtime dependency of the application.
// RequiresInfrastructure means the dependency must run as a local or
// managed service (it gets a compose entry), not just an SDK call.
type ExternalService struct {
	Kind                   ServiceKind   `yaml:"kind" mapstructure:"kind"`
	Name                   string        `yaml:"name" mapstructure:"name"`
	Product                string        `yaml:"product" mapstructure:"product"`
	Variables              []EnvVariable `yaml:"variables,omitempty" mapstructure:"variables"`
	RequiresInfrastructure bool          `yaml:"requires_infrastructure" mapstructure:"requires_infrastructure"`
}

// ProjectConfig describes the project being wired into CI/CD.
type ProjectConfig struct {
	Name           string            `yaml:"name" mapstructure:"name"`
	Kind           ProjectKind       `yaml:"kind" mapstructure:"kind"`
	Language       string            `yaml:"language" mapstructure:"language"`
	RepoURL        string            `yaml:"repo_url" mapstructure:"repo_url"`
	Branch         string            `yaml:"branch" mapstructure:"branch"`
	HasDockerfile  bool              `yaml:"has_dockerfile" mapstructure:"has_dockerfile"`
	DockerfilePath string            `yaml:"dockerfile_path,omitempty" mapstructure:"dockerfile_path"`
	TestCommand    string            `yaml:"test_command,omitempty" mapstructure:"test_command"`
	BuildCommand   string            `yaml:"build_command,omitempty" mapstructure:"build_command"`
	UsesEnvFile    bool              `yaml:"uses_env_file" mapstructure:"uses_env_file"`
	Services       []ExternalService `yaml:"services,omitempty" mapstructure:"services"`
}

// =============================================================================
// Cloud Types
// =============================================================================

// Credentials is the closed union of provider credential shapes.
// Exactly four implementations exist, one per Provider; the unexported
// marker method keeps the set closed so switches over it stay
// exhaustive at compile time.
type Credentials interface {
	// CredProvider reports which provider this credential shape belongs to.
	CredProvider() Provider
	// CredRegion reports the region the credentials were issued for.
	// It seeds CloudConfig.Region; the two must stay equal.
	CredRegion() string
	// OIDC reports whether the federated/OIDC auth mode is selected.
	// When true the emitted auth block carries only short-lived-token
	// logic; the static credential lines must be entirely absent.
	OIDC() bool

	isCredentials()
}

// AWSCredentials selects between static access keys and
// assume-role-with-web-identity. Captured values are persisted only in
// the encrypted backup; emitted scripts reference the provider's
// well-known environment variable names instead.
type AWSCredentials struct {
	AccessKeyID     string `yaml:"access_key_id,omitempty" mapstructure:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key,omitempty" mapstructure:"secret_access_key"`
	Region          string `yaml:"region" mapstructure:"region"`
	UseOIDC         bool   `yaml:"use_oidc" mapstructure:"use_oidc"`
	RoleARN         string `yaml:"role_arn,omitempty" mapstructure:"role_arn"`
}

func (c AWSCredentials) CredProvider() Provider { return ProviderAWS }
func (c AWSCredentials) CredRegion() string     { return c.Region }
func (c AWSCredentials) OIDC() bool             { return c.UseOIDC }
func (c AWSCredentials) isCredentials()         {}

// AzureCredentials selects between a service principal secret and a
// federated token.
type AzureCredentials struct {
	ClientID       string `yaml:"client_id,omitempty" mapstructure:"client_id"`
	ClientSecret   string `yaml:"client_secret,omitempty" mapstructure:"client_secret"`
	TenantID       string `yaml:"tenant_id,omitempty" mapstructure:"tenant_id"`
	SubscriptionID string `yaml:"subscription_id,omitempty" mapstructure:"subscription_id"`
	Region         string `yaml:"region" mapstructure:"region"`
	UseOIDC        bool   `yaml:"use_oidc" mapstructure:"use_oidc"`
}

func (c AzureCredentials) CredProvider() Provider { return ProviderAzure }
func (c AzureCredentials) CredRegion() string     { return c.Region }
func (c AzureCredentials) OIDC() bool             { return c.UseOIDC }
func (c AzureCredentials) isCredentials()         {}

// GCPCredentials selects between a service-account key file and
// workload identity federation.
type GCPCredentials struct {
	ProjectID      string `yaml:"project_id" mapstructure:"project_id"`
	KeyFilePath    string `yaml:"key_file_path,omitempty" mapstructure:"key_file_path"`
	Region         string `yaml:"region" mapstructure:"region"`
	UseOIDC        bool   `yaml:"use_oidc" mapstructure:"use_oidc"`
	WorkloadPool   string `yaml:"workload_pool,omitempty" mapstructure:"workload_pool"`
	ServiceAccount string `yaml:"service_account,omitempty" mapstructure:"service_account"`
}

func (c GCPCredentials) CredProvider() Provider { return ProviderGCP }
func (c GCPCredentials) CredRegion() string     { return c.Region }
func (c GCPCredentials) OIDC() bool             { return c.UseOIDC }
func (c GCPCredentials) isCredentials()         {}

// DigitalOceanCredentials selects between a long-lived API token and a
// short-lived token obtained through an OIDC exchange at run time.
type DigitalOceanCredentials struct {
	APIToken string `yaml:"api_token,omitempty" mapstructure:"api_token"`
	Region   string `yaml:"region" mapstructure:"region"`
	UseOIDC  bool   `yaml:"use_oidc" mapstructure:"use_oidc"`
}

func (c DigitalOceanCredentials) CredProvider() Provider { return ProviderDigitalOcean }
func (c DigitalOceanCredentials) CredRegion() string     { return c.Region }
func (c DigitalOceanCredentials) OIDC() bool             { return c.UseOIDC }
func (c DigitalOceanCredentials) isCredentials()         {}

// DeploymentConfig describes how the application runs in the cloud.
// When AutoScaling is false both instance bounds are fixed at 1.
type DeploymentConfig struct {
	Tier                 string            `yaml:"tier" mapstructure:"tier"`
	AutoScaling          bool              `yaml:"auto_scaling" mapstructure:"auto_scaling"`
	MinInstances         int               `yaml:"min_instances" mapstructure:"min_instances"`
	MaxInstances         int               `yaml:"max_instances" mapstructure:"max_instances"`
	HealthCheckPath      string            `yaml:"health_check_path" mapstructure:"health_check_path"`
	Port                 int               `yaml:"port" mapstructure:"port"`
	UseLoadBalancer      bool              `yaml:"use_load_balancer" mapstructure:"use_load_balancer"`
	LoadBalancerURL      string            `yaml:"load_balancer_url,omitempty" mapstructure:"load_balancer_url"`
	Strategy             Strategy          `yaml:"strategy" mapstructure:"strategy"`
	EnvironmentVariables map[string]string `yaml:"environment_variables,omitempty" mapstructure:"environment_variables"`
}

// CloudConfig describes the deployment target.
type CloudConfig struct {
	Provider        Provider         `yaml:"provider" mapstructure:"provider"`
	Credentials     Credentials      `yaml:"-" mapstructure:"-"`
	Region          string           `yaml:"region" mapstructure:"region"`
	InstanceType    string           `yaml:"instance_type" mapstructure:"instance_type"`
	Deployment      DeploymentConfig `yaml:"deployment" mapstructure:"deployment"`
	ManagedServices []string         `yaml:"managed_services,omitempty" mapstructure:"managed_services"`
}

// =============================================================================
// Notification Types
// =============================================================================

// NotificationPlatform is one configured channel endpoint.
type NotificationPlatform struct {
	Channel Channel `yaml:"channel" mapstructure:"channel"`
	Webhook string  `yaml:"webhook,omitempty" mapstructure:"webhook"`
	APIKey  string  `yaml:"api_key,omitempty" mapstructure:"api_key"`
}

// NotificationConfig describes who gets told about pipeline outcomes.
type NotificationConfig struct {
	Email     string                 `yaml:"email" mapstructure:"email"`
	Platforms []NotificationPlatform `yaml:"platforms,omitempty" mapstructure:"platforms"`
	Webhooks  map[Channel]string     `yaml:"webhooks,omitempty" mapstructure:"webhooks"`
}

// WebhookFor returns the webhook for a channel, preferring the explicit
// per-channel override map over the platform entry.
func (n NotificationConfig) WebhookFor(ch Channel) string {
	if url, ok := n.Webhooks[ch]; ok && url != "" {
		return url
	}
	for _, p := range n.Platforms {
		if p.Channel == ch {
			return p.Webhook
		}
	}
	return ""
}

// =============================================================================
// Pipeline Runner Types
// =============================================================================

// JenkinsConfig holds pipeline-runner settings.
type JenkinsConfig struct {
	AgentLabel           string            `yaml:"agent_label" mapstructure:"agent_label"`
	TimeoutMinutes       int               `yaml:"timeout_minutes" mapstructure:"timeout_minutes"`
	RetryCount           int               `yaml:"retry_count" mapstructure:"retry_count"`
	EnvironmentVariables map[string]string `yaml:"environment_variables,omitempty" mapstructure:"environment_variables"`
}

// =============================================================================
// Aggregate
// =============================================================================

// CICDConfig is the single input to every generator.
type CICDConfig struct {
	Project       ProjectConfig      `yaml:"project" mapstructure:"project"`
	Cloud         CloudConfig        `yaml:"cloud" mapstructure:"cloud"`
	Notifications NotificationConfig `yaml:"notifications" mapstructure:"notifications"`
	Jenkins       JenkinsConfig      `yaml:"jenkins" mapstructure:"jenkins"`
}
