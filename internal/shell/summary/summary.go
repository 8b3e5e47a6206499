// Package summary renders the end-of-run report. This is part of the
// Imperative Shell - it writes human-facing text to the terminal after
// the artifacts are on disk.
package summary

import (
	"fmt"
	"io"

	"github.com/artpar/pipeforge/internal/core/compose"
	"github.com/artpar/pipeforge/internal/core/config"
	"github.com/artpar/pipeforge/internal/shell/artifacts"
)

// Render writes the run report: what was generated, where it points,
// and the follow-up steps the pipeline needs before its first run.
func Render(w io.Writer, cfg config.CICDConfig, set []artifacts.Artifact, outputDir string) {
	name := compose.ServiceName(cfg.Project.Name)

	fmt.Fprintf(w, "\nGenerated CI/CD configuration for %s\n", cfg.Project.Name)
	fmt.Fprintf(w, "  service name:  %s\n", name)
	fmt.Fprintf(w, "  target:        %s (%s)\n", cfg.Cloud.Provider, cfg.Cloud.Region)
	fmt.Fprintf(w, "  strategy:      %s\n", cfg.Cloud.Deployment.Strategy)
	if cfg.Cloud.Credentials != nil && cfg.Cloud.Credentials.OIDC() {
		fmt.Fprintf(w, "  auth:          OIDC (short-lived tokens)\n")
	} else {
		fmt.Fprintf(w, "  auth:          static credentials\n")
	}

	fmt.Fprintf(w, "\nArtifacts written to %s:\n", outputDir)
	for _, art := range set {
		fmt.Fprintf(w, "  %s\n", art.Path)
	}

	fmt.Fprintf(w, "\nNext steps:\n")
	fmt.Fprintf(w, "  1. Review the generated files and commit them to %s\n", cfg.Project.RepoURL)
	fmt.Fprintf(w, "  2. Create the Jenkins credentials referenced in the Jenkinsfile\n")
	fmt.Fprintf(w, "  3. Point a Jenkins pipeline job at branch %q\n", cfg.Project.Branch)
	if envCount := len(cfg.Cloud.Deployment.EnvironmentVariables); envCount > 0 {
		fmt.Fprintf(w, "  4. Fill in the %d environment variable value(s) in Jenkins\n", envCount)
	}
}
