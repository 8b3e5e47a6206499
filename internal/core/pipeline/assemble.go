package pipeline

import (
	"fmt"
	"strings"

	"github.com/artpar/pipeforge/internal/core/compose"
	"github.com/artpar/pipeforge/internal/core/config"
)

// =============================================================================
// Jenkinsfile Assembly
// =============================================================================

// stageTitles maps stage keys to their Jenkinsfile display names.
var stageTitles = map[Stage]string{
	StageCheckout:   "Checkout",
	StageInstall:    "Install",
	StageTest:       "Test",
	StageBuild:      "Build",
	StageImageBuild: "Docker Build",
	StageImagePush:  "Docker Push",
	StageDeploy:     "Deploy",
	StageVerify:     "Verify",
}

// Assemble stitches the stage fragments into one Jenkins pipeline
// definition. The notify fragment lands in the post section, invoked on
// success, failure and unstable outcomes; every other fragment becomes
// one stage in fixed order.
func Assemble(cfg config.CICDConfig, frags Fragments) (string, error) {
	for _, stage := range Stages() {
		if _, ok := frags[stage]; !ok {
			return "", &MissingFragmentError{Stage: stage}
		}
	}

	artifactName := compose.ServiceName(cfg.Project.Name)
	var b strings.Builder

	b.WriteString("pipeline {\n")
	fmt.Fprintf(&b, "  agent { label '%s' }\n\n", cfg.Jenkins.AgentLabel)

	b.WriteString("  options {\n")
	fmt.Fprintf(&b, "    timeout(time: %d, unit: 'MINUTES')\n", cfg.Jenkins.TimeoutMinutes)
	fmt.Fprintf(&b, "    retry(%d)\n", cfg.Jenkins.RetryCount)
	b.WriteString("    disableConcurrentBuilds()\n")
	b.WriteString("  }\n\n")

	b.WriteString("  environment {\n")
	fmt.Fprintf(&b, "    DOCKER_IMAGE = \"%s:${env.BUILD_NUMBER}\"\n", artifactName)
	for _, key := range config.SortedKeys(cfg.Jenkins.EnvironmentVariables) {
		fmt.Fprintf(&b, "    %s = credentials('%s')\n", key, credentialID(artifactName, key))
	}
	b.WriteString("  }\n\n")

	b.WriteString("  stages {\n")
	for _, stage := range Stages() {
		if stage == StageNotify {
			continue
		}
		writeStage(&b, stageTitles[stage], frags[stage])
	}
	b.WriteString("  }\n\n")

	b.WriteString("  post {\n")
	for _, outcome := range []string{"success", "failure", "unstable"} {
		fmt.Fprintf(&b, "    %s {\n", outcome)
		writeShell(&b, "      ", frags[StageNotify]+"\nnotify_all \""+strings.ToUpper(outcome)+"\"")
		b.WriteString("    }\n")
	}
	b.WriteString("  }\n")
	b.WriteString("}\n")

	return b.String(), nil
}

// credentialID derives the Jenkins credential identifier for an
// environment variable key. Same derivation everywhere: artifact name
// plus the key lower-cased with underscores as hyphens.
func credentialID(artifactName, key string) string {
	return artifactName + "-" + strings.ReplaceAll(strings.ToLower(key), "_", "-")
}

func writeStage(b *strings.Builder, title, fragment string) {
	fmt.Fprintf(b, "    stage('%s') {\n      steps {\n", title)
	writeShell(b, "        ", fragment)
	b.WriteString("      }\n    }\n")
}

// writeShell embeds a fragment as a triple-quoted sh step, indenting
// each line so the Jenkinsfile stays readable.
func writeShell(b *strings.Builder, indent, fragment string) {
	b.WriteString(indent)
	b.WriteString("sh '''\n")
	for _, line := range strings.Split(strings.TrimRight(fragment, "\n"), "\n") {
		if line == "" {
			b.WriteByte('\n')
			continue
		}
		b.WriteString(indent)
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString(indent)
	b.WriteString("'''\n")
}
