// Package artifacts assembles and writes the generated pipeline files.
// This is part of the Imperative Shell - the only place generated
// artifact text touches the filesystem.
//
// Assembly and writing are split: Build runs every generator against
// the validated aggregate and returns the full artifact set in memory,
// Write persists a set that already assembled cleanly. A generator
// defect therefore never leaves a partial artifact tree behind.
package artifacts

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/artpar/pipeforge/internal/core/compose"
	"github.com/artpar/pipeforge/internal/core/config"
	"github.com/artpar/pipeforge/internal/core/pipeline"
	"github.com/artpar/pipeforge/internal/core/terraform"
)

// Well-known output paths, relative to the output directory.
const (
	JenkinsfilePath = "Jenkinsfile"
	TerraformPath   = "terraform/main.tf"
	ComposePath     = "docker-compose.yml"
	ReadmePath      = "PIPELINE.md"
)

// Artifact is one generated file ready to be written.
type Artifact struct {
	Path    string
	Content string
}

// WriteError wraps a filesystem failure during artifact persistence.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write artifact %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// =============================================================================
// Assembly
// =============================================================================

// Build runs every generator and returns the complete artifact set.
// The compose manifest is only emitted for dockerized projects; the
// Jenkinsfile and infrastructure manifest are always present.
func Build(cfg config.CICDConfig) ([]Artifact, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	artifactName := compose.ServiceName(cfg.Project.Name)

	frags, err := pipeline.BuildFragments(cfg)
	if err != nil {
		return nil, err
	}
	jenkinsfile, err := pipeline.Assemble(cfg, frags)
	if err != nil {
		return nil, err
	}

	manifest, err := terraform.Generate(cfg.Cloud, artifactName)
	if err != nil {
		return nil, err
	}

	set := []Artifact{
		{Path: JenkinsfilePath, Content: jenkinsfile},
		{Path: TerraformPath, Content: manifest},
	}

	if cfg.Project.HasDockerfile {
		composeFile, err := compose.Generate(cfg)
		if err != nil {
			return nil, err
		}
		set = append(set, Artifact{Path: ComposePath, Content: composeFile})
	}

	set = append(set, Artifact{Path: ReadmePath, Content: readmeSnippet(cfg, artifactName)})

	return set, nil
}

// readmeSnippet documents the generated files for whoever reviews the
// commit that adds them.
func readmeSnippet(cfg config.CICDConfig, artifactName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# CI/CD pipeline for %s\n\n", cfg.Project.Name)
	fmt.Fprintf(&b, "Generated by pipeforge. Service name: `%s`.\n\n", artifactName)
	fmt.Fprintf(&b, "- `Jenkinsfile` deploys to %s (%s) with the %s strategy.\n",
		cfg.Cloud.Provider, cfg.Cloud.Region, cfg.Cloud.Deployment.Strategy)
	fmt.Fprintf(&b, "- `terraform/main.tf` declares the target infrastructure; apply-time\n")
	fmt.Fprintf(&b, "  values (image reference, tokens) are supplied as variables.\n")
	if cfg.Project.HasDockerfile {
		fmt.Fprintf(&b, "- `docker-compose.yml` runs the service and its dependencies locally.\n")
	}
	fmt.Fprintf(&b, "\nThe deploy stage writes resolved values to `deployment-state.env`;\n")
	fmt.Fprintf(&b, "the verify stage reads `APP_URL` from it and probes `%s`.\n",
		cfg.Cloud.Deployment.HealthCheckPath)
	return b.String()
}

// =============================================================================
// Persistence
// =============================================================================

// Write persists an artifact set under dir, creating parent
// directories as needed. On any failure the files written so far are
// removed, so the output directory is never left half-populated.
func Write(dir string, set []Artifact, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	var written []string
	for _, art := range set {
		path := filepath.Join(dir, art.Path)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			rollback(written, logger)
			return &WriteError{Path: art.Path, Err: err}
		}
		if err := os.WriteFile(path, []byte(art.Content), 0o644); err != nil {
			rollback(written, logger)
			return &WriteError{Path: art.Path, Err: err}
		}
		written = append(written, path)
		logger.Info("wrote artifact", "path", path, "bytes", len(art.Content))
	}
	return nil
}

func rollback(paths []string, logger *slog.Logger) {
	for _, path := range paths {
		if err := os.Remove(path); err != nil {
			logger.Warn("rollback failed", "path", path, "error", err)
		}
	}
}
