package compose

import (
	"fmt"

	"github.com/artpar/pipeforge/internal/core/config"
	"github.com/artpar/pipeforge/internal/core/docwriter"
)

// =============================================================================
// Manifest Generation
// =============================================================================

// Generate emits the local docker-compose manifest: the application
// service bound to the configured port, plus one catalog entry per
// declared external service that must run as real infrastructure.
// The emitted text is round-tripped through the compose loader before
// being returned, so a syntactically broken manifest surfaces as a
// generation defect instead of a runtime surprise.
func Generate(cfg config.CICDConfig) (string, error) {
	if !cfg.Project.HasDockerfile {
		return "", ErrNoDockerfile
	}

	appName := ServiceName(cfg.Project.Name)
	services := docwriter.Map()
	volumes := docwriter.Map()

	// Application service first, depending on every infrastructure-backed
	// external service.
	app := docwriter.Map()
	build := docwriter.Map().Set("context", docwriter.String("."))
	if cfg.Project.DockerfilePath != "" && cfg.Project.DockerfilePath != "Dockerfile" {
		build.Set("dockerfile", docwriter.String(cfg.Project.DockerfilePath))
	}
	app.Set("build", build)
	port := cfg.Cloud.Deployment.Port
	app.Set("ports", docwriter.Strings(fmt.Sprintf("%d:%d", port, port)))
	if cfg.Project.UsesEnvFile {
		app.Set("env_file", docwriter.Strings(".env"))
	}
	if env := appEnvironment(cfg); env.Len() > 0 {
		app.Set("environment", env)
	}

	// Derived names must be unique, the application's included: a
	// collision would overwrite a manifest entry while depends_on still
	// lists the name twice.
	names := map[string]string{appName: cfg.Project.Name}
	var deps []string
	for _, svc := range cfg.Project.Services {
		if !svc.RequiresInfrastructure {
			continue
		}
		derived := ServiceName(svc.Name)
		if owner, ok := names[derived]; ok {
			return "", fmt.Errorf("services %q and %q both derive to compose name %q: %w",
				owner, svc.Name, derived, ErrDuplicateServiceName)
		}
		names[derived] = svc.Name
		deps = append(deps, derived)
	}
	if len(deps) > 0 {
		app.Set("depends_on", docwriter.Strings(deps...))
	}
	services.Set(appName, app)

	// One entry per infrastructure-backed external service, chosen by
	// exact product lookup with an inert fallback.
	for _, svc := range cfg.Project.Services {
		if !svc.RequiresInfrastructure {
			continue
		}
		def := Lookup(svc.Product)
		services.Set(ServiceName(svc.Name), def.node())
		if def.Volume != "" {
			volumes.Set(def.Volume, docwriter.Null)
		}
	}

	doc := docwriter.Map().Set("services", services)
	if volumes.Len() > 0 {
		doc.Set("volumes", volumes)
	}

	manifest := docwriter.Render(doc)
	if err := VerifyManifest(manifest); err != nil {
		return "", err
	}
	return manifest, nil
}

// appEnvironment maps every consolidated variable key to a host-side
// placeholder (KEY: "${KEY}"), keeping the compose file aligned with the
// pipeline environment block without embedding values.
func appEnvironment(cfg config.CICDConfig) *docwriter.Mapping {
	env := docwriter.Map()
	for _, key := range config.SortedKeys(cfg.Cloud.Deployment.EnvironmentVariables) {
		env.Set(key, docwriter.String("${"+key+"}"))
	}
	return env
}
