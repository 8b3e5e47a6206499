package pipeline

import (
	"fmt"
	"strings"

	"github.com/artpar/pipeforge/internal/core/compose"
	"github.com/artpar/pipeforge/internal/core/config"
	"github.com/artpar/pipeforge/internal/core/deploy"
	"github.com/artpar/pipeforge/internal/core/notify"
)

// =============================================================================
// Fragment Generation
// =============================================================================

// BuildFragments produces one shell block per stage from the validated
// aggregate. The deploy and notify blocks come from their dedicated
// generators; the rest are derived here from the same configuration
// values, never re-invented.
func BuildFragments(cfg config.CICDConfig) (Fragments, error) {
	artifactName := compose.ServiceName(cfg.Project.Name)

	deployScript, err := deploy.Generate(cfg.Cloud, artifactName)
	if err != nil {
		return nil, err
	}
	notifyScript, err := notify.Generate(cfg.Notifications)
	if err != nil {
		return nil, err
	}

	frags := Fragments{
		StageCheckout:   checkoutFragment(cfg.Project),
		StageInstall:    installFragment(cfg.Project),
		StageTest:       commandFragment(cfg.Project.TestCommand, "no test command configured"),
		StageBuild:      commandFragment(cfg.Project.BuildCommand, "no build command configured"),
		StageImageBuild: imageBuildFragment(cfg.Project),
		StageImagePush:  "docker push \"${DOCKER_IMAGE}\"",
		StageDeploy:     deployScript,
		StageVerify:     verifyFragment(cfg.Cloud.Deployment),
		StageNotify:     notifyScript,
	}
	return frags, nil
}

func checkoutFragment(p config.ProjectConfig) string {
	return fmt.Sprintf("git clone --branch %q --single-branch %q .", p.Branch, p.RepoURL)
}

// installFragment picks the conventional dependency install for the
// project language; unknown languages get a no-op so the stage still
// reports cleanly.
func installFragment(p config.ProjectConfig) string {
	switch strings.ToLower(p.Language) {
	case "javascript", "typescript", "node", "nodejs":
		return "npm ci"
	case "python":
		return "pip install -r requirements.txt"
	case "go", "golang":
		return "go mod download"
	case "java":
		return "./mvnw -q dependency:resolve"
	case "ruby":
		return "bundle install"
	default:
		return "echo \"no dependency install for " + p.Language + "\""
	}
}

func commandFragment(command, fallback string) string {
	if command == "" {
		return "echo \"" + fallback + "\""
	}
	return command
}

func imageBuildFragment(p config.ProjectConfig) string {
	dockerfile := p.DockerfilePath
	if dockerfile == "" {
		dockerfile = "Dockerfile"
	}
	return fmt.Sprintf("docker build -t \"${DOCKER_IMAGE}\" -f %q .", dockerfile)
}

// verifyFragment reads the reachable URL persisted by the deploy block
// from the state file; it never re-derives it.
func verifyFragment(d config.DeploymentConfig) string {
	return fmt.Sprintf(`. ./%s
curl -fsS --retry 5 --retry-delay 10 "${APP_URL}%s"`, deploy.StateFile, d.HealthCheckPath)
}
