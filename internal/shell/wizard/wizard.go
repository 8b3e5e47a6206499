// Package wizard collects the configuration aggregate interactively.
// This is part of the Imperative Shell - the only package that talks to
// the terminal with prompts.
//
// Every free-form answer is validated at the prompt through the pure
// validators in internal/core/validation, so the aggregate handed to
// the generators is already well-formed. Closed choices (provider,
// strategy, instance type) are selects fed from the provider catalogs
// and never free-form.
package wizard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"github.com/artpar/pipeforge/internal/core/compose"
	"github.com/artpar/pipeforge/internal/core/config"
	"github.com/artpar/pipeforge/internal/core/provider"
	"github.com/artpar/pipeforge/internal/core/validation"
)

// Run walks the user through every section and returns a validated
// aggregate.
func Run() (config.CICDConfig, error) {
	var cfg config.CICDConfig

	project, err := askProject()
	if err != nil {
		return cfg, err
	}
	cfg.Project = project

	cloud, err := askCloud()
	if err != nil {
		return cfg, err
	}
	cfg.Cloud = cloud

	// one variable map feeds both the deployment and the pipeline so
	// the two can never drift
	vars := config.ConsolidateVariables(cfg.Project)
	cfg.Cloud.Deployment.EnvironmentVariables = vars

	notifications, err := askNotifications()
	if err != nil {
		return cfg, err
	}
	cfg.Notifications = notifications

	jenkins, err := askJenkins()
	if err != nil {
		return cfg, err
	}
	jenkins.EnvironmentVariables = vars
	cfg.Jenkins = jenkins

	if err := config.Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// =============================================================================
// Project Section
// =============================================================================

func askProject() (config.ProjectConfig, error) {
	var p config.ProjectConfig

	qs := []*survey.Question{
		{
			Name:     "name",
			Prompt:   &survey.Input{Message: "Project name:"},
			Validate: survey.Required,
		},
		{
			Name: "kind",
			Prompt: &survey.Select{
				Message: "Project kind:",
				Options: []string{string(config.ProjectBackend), string(config.ProjectFrontend), string(config.ProjectFullstack)},
				Default: string(config.ProjectBackend),
			},
		},
		{
			Name: "language",
			Prompt: &survey.Select{
				Message: "Primary language:",
				Options: []string{"go", "javascript", "typescript", "python", "java", "ruby", "other"},
			},
		},
		{
			Name:     "repoURL",
			Prompt:   &survey.Input{Message: "Git repository URL:"},
			Validate: asValidator(validation.ValidateGitURL),
		},
		{
			Name:   "branch",
			Prompt: &survey.Input{Message: "Branch to build:", Default: "main"},
		},
	}

	answers := struct {
		Name     string
		Kind     string
		Language string
		RepoURL  string
		Branch   string
	}{}
	if err := survey.Ask(qs, &answers); err != nil {
		return p, err
	}
	p.Name = answers.Name
	p.Kind = config.ProjectKind(answers.Kind)
	p.Language = answers.Language
	p.RepoURL = answers.RepoURL
	p.Branch = answers.Branch

	if err := survey.AskOne(&survey.Confirm{Message: "Does the project have a Dockerfile?", Default: true}, &p.HasDockerfile); err != nil {
		return p, err
	}
	if p.HasDockerfile {
		if err := survey.AskOne(&survey.Input{Message: "Dockerfile path:", Default: "Dockerfile"}, &p.DockerfilePath); err != nil {
			return p, err
		}
		if err := survey.AskOne(&survey.Confirm{Message: "Load a .env file in the compose manifest?", Default: false}, &p.UsesEnvFile); err != nil {
			return p, err
		}
	}

	if err := survey.AskOne(&survey.Input{Message: "Test command (empty to skip):"}, &p.TestCommand); err != nil {
		return p, err
	}
	if err := survey.AskOne(&survey.Input{Message: "Build command (empty to skip):"}, &p.BuildCommand); err != nil {
		return p, err
	}

	services, err := askServices()
	if err != nil {
		return p, err
	}
	p.Services = services

	return p, nil
}

func askServices() ([]config.ExternalService, error) {
	var services []config.ExternalService
	for {
		var more bool
		if err := survey.AskOne(&survey.Confirm{Message: "Add an external service (database, cache, queue, ...)?", Default: false}, &more); err != nil {
			return nil, err
		}
		if !more {
			return services, nil
		}

		var svc config.ExternalService
		var kind string
		if err := survey.AskOne(&survey.Select{
			Message: "Service kind:",
			Options: []string{
				string(config.ServiceDatabase), string(config.ServiceCache),
				string(config.ServiceQueue), string(config.ServiceStorage),
				string(config.ServiceEmail), string(config.ServiceMonitoring),
				string(config.ServiceCustom),
			},
		}, &kind); err != nil {
			return nil, err
		}
		svc.Kind = config.ServiceKind(kind)

		if err := survey.AskOne(&survey.Input{Message: "Service name:"}, &svc.Name, survey.WithValidator(survey.Required)); err != nil {
			return nil, err
		}
		if err := survey.AskOne(&survey.Input{Message: "Product (postgresql, redis, rabbitmq, ...):"}, &svc.Product); err != nil {
			return nil, err
		}
		if err := survey.AskOne(&survey.Confirm{
			Message: "Does it need local infrastructure (a compose entry)?",
			Default: svc.Kind == config.ServiceDatabase || svc.Kind == config.ServiceCache || svc.Kind == config.ServiceQueue,
		}, &svc.RequiresInfrastructure); err != nil {
			return nil, err
		}

		vars, err := askServiceVariables(svc.Name)
		if err != nil {
			return nil, err
		}
		svc.Variables = vars
		services = append(services, svc)
	}
}

func askServiceVariables(serviceName string) ([]config.EnvVariable, error) {
	var vars []config.EnvVariable
	for {
		var key string
		if err := survey.AskOne(&survey.Input{
			Message: fmt.Sprintf("Environment variable for %s (empty to finish):", serviceName),
		}, &key); err != nil {
			return nil, err
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return vars, nil
		}

		v := config.EnvVariable{Key: key}
		if err := survey.AskOne(&survey.Confirm{Message: "Is the value secret?", Default: true}, &v.Secret); err != nil {
			return nil, err
		}
		vars = append(vars, v)
	}
}

// =============================================================================
// Cloud Section
// =============================================================================

func askCloud() (config.CloudConfig, error) {
	var c config.CloudConfig

	var providerTag string
	options := make([]string, 0, 4)
	for _, p := range config.Providers() {
		options = append(options, string(p))
	}
	if err := survey.AskOne(&survey.Select{Message: "Cloud provider:", Options: options}, &providerTag); err != nil {
		return c, err
	}
	c.Provider = config.Provider(providerTag)

	if err := survey.AskOne(&survey.Select{
		Message: "Region:",
		Options: regionOptions(c.Provider),
	}, &c.Region); err != nil {
		return c, err
	}

	var sizeChoice string
	if err := survey.AskOne(&survey.Select{
		Message: "Instance type:",
		Options: sizeOptions(c.Provider),
	}, &sizeChoice); err != nil {
		return c, err
	}
	c.InstanceType = sizeID(c.Provider, sizeChoice)

	creds, err := askCredentials(c.Provider, c.Region)
	if err != nil {
		return c, err
	}
	c.Credentials = creds

	deployment, err := askDeployment()
	if err != nil {
		return c, err
	}
	c.Deployment = deployment

	return c, nil
}

func regionOptions(p config.Provider) []string {
	regions := provider.Regions(p)
	options := make([]string, 0, len(regions))
	for _, r := range regions {
		options = append(options, r.ID)
	}
	return options
}

// sizeOptions shows the human-readable names; sizeID maps the chosen
// name back to the catalog ID.
func sizeOptions(p config.Provider) []string {
	sizes := provider.Sizes(p)
	options := make([]string, 0, len(sizes))
	for _, s := range sizes {
		options = append(options, s.Name)
	}
	return options
}

func sizeID(p config.Provider, chosenName string) string {
	for _, s := range provider.Sizes(p) {
		if s.Name == chosenName {
			return s.ID
		}
	}
	return chosenName
}

func askCredentials(p config.Provider, region string) (config.Credentials, error) {
	var useOIDC bool
	if err := survey.AskOne(&survey.Confirm{
		Message: "Authenticate with OIDC / workload identity instead of static credentials?",
		Default: false,
	}, &useOIDC); err != nil {
		return nil, err
	}

	switch p {
	case config.ProviderAWS:
		creds := config.AWSCredentials{Region: region, UseOIDC: useOIDC}
		if useOIDC {
			err := survey.AskOne(&survey.Input{Message: "IAM role ARN to assume:"}, &creds.RoleARN, survey.WithValidator(survey.Required))
			return creds, err
		}
		if err := survey.AskOne(&survey.Input{Message: "Access key ID:"}, &creds.AccessKeyID, survey.WithValidator(survey.Required)); err != nil {
			return nil, err
		}
		err := survey.AskOne(&survey.Password{Message: "Secret access key:"}, &creds.SecretAccessKey, survey.WithValidator(survey.Required))
		return creds, err

	case config.ProviderAzure:
		creds := config.AzureCredentials{Region: region, UseOIDC: useOIDC}
		if err := survey.AskOne(&survey.Input{Message: "Client ID:"}, &creds.ClientID, survey.WithValidator(survey.Required)); err != nil {
			return nil, err
		}
		if err := survey.AskOne(&survey.Input{Message: "Tenant ID:"}, &creds.TenantID, survey.WithValidator(survey.Required)); err != nil {
			return nil, err
		}
		if err := survey.AskOne(&survey.Input{Message: "Subscription ID:"}, &creds.SubscriptionID, survey.WithValidator(survey.Required)); err != nil {
			return nil, err
		}
		if !useOIDC {
			if err := survey.AskOne(&survey.Password{Message: "Client secret:"}, &creds.ClientSecret, survey.WithValidator(survey.Required)); err != nil {
				return nil, err
			}
		}
		return creds, nil

	case config.ProviderGCP:
		creds := config.GCPCredentials{Region: region, UseOIDC: useOIDC}
		if err := survey.AskOne(&survey.Input{Message: "GCP project ID:"}, &creds.ProjectID, survey.WithValidator(survey.Required)); err != nil {
			return nil, err
		}
		if useOIDC {
			if err := survey.AskOne(&survey.Input{Message: "Workload identity pool:"}, &creds.WorkloadPool); err != nil {
				return nil, err
			}
			if err := survey.AskOne(&survey.Input{Message: "Service account email:"}, &creds.ServiceAccount); err != nil {
				return nil, err
			}
			return creds, nil
		}
		err := survey.AskOne(&survey.Input{Message: "Service account key file path:"}, &creds.KeyFilePath, survey.WithValidator(survey.Required))
		return creds, err

	case config.ProviderDigitalOcean:
		creds := config.DigitalOceanCredentials{Region: region, UseOIDC: useOIDC}
		if !useOIDC {
			if err := survey.AskOne(&survey.Password{Message: "API token:"}, &creds.APIToken, survey.WithValidator(survey.Required)); err != nil {
				return nil, err
			}
		}
		return creds, nil
	}
	return nil, fmt.Errorf("no credential prompt for provider %q", p)
}

func askDeployment() (config.DeploymentConfig, error) {
	d := config.DeploymentConfig{Tier: "standard", MinInstances: 1, MaxInstances: 1}

	var port string
	if err := survey.AskOne(&survey.Input{Message: "Application port:", Default: "8080"}, &port,
		survey.WithValidator(portValidator)); err != nil {
		return d, err
	}
	d.Port, _ = strconv.Atoi(strings.TrimSpace(port))

	if err := survey.AskOne(&survey.Input{Message: "Health check path:", Default: "/health"}, &d.HealthCheckPath); err != nil {
		return d, err
	}

	var strategy string
	strategies := make([]string, 0, 3)
	for _, s := range config.Strategies() {
		strategies = append(strategies, string(s))
	}
	if err := survey.AskOne(&survey.Select{Message: "Deployment strategy:", Options: strategies}, &strategy); err != nil {
		return d, err
	}
	d.Strategy = config.Strategy(strategy)

	if err := survey.AskOne(&survey.Confirm{Message: "Enable auto-scaling?", Default: false}, &d.AutoScaling); err != nil {
		return d, err
	}
	if d.AutoScaling {
		var bounds struct {
			Min string
			Max string
		}
		if err := survey.Ask([]*survey.Question{
			{Name: "min", Prompt: &survey.Input{Message: "Minimum instances:", Default: "1"}, Validate: countValidator},
			{Name: "max", Prompt: &survey.Input{Message: "Maximum instances:", Default: "3"}, Validate: countValidator},
		}, &bounds); err != nil {
			return d, err
		}
		d.MinInstances, _ = strconv.Atoi(strings.TrimSpace(bounds.Min))
		d.MaxInstances, _ = strconv.Atoi(strings.TrimSpace(bounds.Max))
	}

	if err := survey.AskOne(&survey.Confirm{Message: "Route traffic through an existing load balancer?", Default: false}, &d.UseLoadBalancer); err != nil {
		return d, err
	}
	if d.UseLoadBalancer {
		if err := survey.AskOne(&survey.Input{Message: "Load balancer URL:"}, &d.LoadBalancerURL, survey.WithValidator(survey.Required)); err != nil {
			return d, err
		}
	}

	return d, nil
}

// =============================================================================
// Notification Section
// =============================================================================

func askNotifications() (config.NotificationConfig, error) {
	var n config.NotificationConfig

	if err := survey.AskOne(&survey.Input{Message: "Notification email:"}, &n.Email,
		survey.WithValidator(asValidator(validation.ValidateEmail))); err != nil {
		return n, err
	}

	var channels []string
	if err := survey.AskOne(&survey.MultiSelect{
		Message: "Additional notification channels:",
		Options: []string{string(config.ChannelSlack), string(config.ChannelDiscord), string(config.ChannelTeams), string(config.ChannelTelegram)},
	}, &channels); err != nil {
		return n, err
	}

	for _, ch := range channels {
		var webhook string
		if err := survey.AskOne(&survey.Input{
			Message: fmt.Sprintf("%s webhook URL:", ch),
		}, &webhook, survey.WithValidator(survey.Required)); err != nil {
			return n, err
		}
		n.Platforms = append(n.Platforms, config.NotificationPlatform{
			Channel: config.Channel(ch),
			Webhook: webhook,
		})
	}
	return n, nil
}

// =============================================================================
// Pipeline Runner Section
// =============================================================================

func askJenkins() (config.JenkinsConfig, error) {
	j := config.JenkinsConfig{}

	if err := survey.AskOne(&survey.Input{Message: "Jenkins agent label:", Default: "docker"}, &j.AgentLabel); err != nil {
		return j, err
	}

	var timeout, retries string
	if err := survey.AskOne(&survey.Input{Message: "Pipeline timeout (minutes):", Default: "30"}, &timeout, survey.WithValidator(countValidator)); err != nil {
		return j, err
	}
	j.TimeoutMinutes, _ = strconv.Atoi(strings.TrimSpace(timeout))

	if err := survey.AskOne(&survey.Input{Message: "Retry count:", Default: "1"}, &retries, survey.WithValidator(countValidator)); err != nil {
		return j, err
	}
	j.RetryCount, _ = strconv.Atoi(strings.TrimSpace(retries))

	return j, nil
}

// =============================================================================
// Validator Plumbing
// =============================================================================

// asValidator adapts a pure string validator to survey's signature.
func asValidator(check func(string) error) survey.Validator {
	return func(ans interface{}) error {
		s, ok := ans.(string)
		if !ok {
			return fmt.Errorf("expected a string answer")
		}
		return check(s)
	}
}

var portValidator = asValidator(func(s string) error {
	port, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("not a number: %q", s)
	}
	return validation.ValidatePort(port)
})

var countValidator = asValidator(func(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("not a number: %q", s)
	}
	if n < 1 {
		return fmt.Errorf("must be at least 1")
	}
	return nil
})

// ServiceNamePreview returns the derived artifact name shown to the
// user before generation starts.
func ServiceNamePreview(projectName string) string {
	return compose.ServiceName(projectName)
}
