package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/artpar/pipeforge/internal/core/config"
	"github.com/artpar/pipeforge/internal/shell/artifacts"
	"github.com/artpar/pipeforge/internal/shell/backup"
	"github.com/artpar/pipeforge/internal/shell/summary"
	"github.com/artpar/pipeforge/internal/shell/wizard"
)

// commandError carries the process exit code alongside the cause.
type commandError struct {
	ExitCode int
	Err      error
}

func (e *commandError) Error() string {
	return e.Err.Error()
}

func (e *commandError) Unwrap() error {
	return e.Err
}

// =============================================================================
// Root Command
// =============================================================================

func newRootCommand() *cobra.Command {
	var logLevel, logFormat string

	root := &cobra.Command{
		Use:           "pipeforge",
		Short:         "Generate CI/CD pipelines for cloud deployments",
		Long:          "pipeforge collects a project description and emits a Jenkins pipeline,\nan infrastructure manifest and a compose manifest wired for one of the\nsupported cloud providers.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")

	root.AddCommand(newGenerateCommand(&logLevel, &logFormat))
	root.AddCommand(newValidateCommand())
	root.AddCommand(newVersionCommand())

	return root
}

// =============================================================================
// generate
// =============================================================================

func newGenerateCommand(logLevel, logFormat *string) *cobra.Command {
	var (
		configPath string
		outputDir  string
		backupPath string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate pipeline artifacts",
		Long:  "Collects the configuration interactively (or from --config) and writes\nthe Jenkinsfile, terraform/main.tf and docker-compose.yml to the output\ndirectory. Nothing is written unless every artifact assembles cleanly.",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := SetupLogger(*logLevel, *logFormat)

			var cfg config.CICDConfig
			var err error
			if configPath != "" {
				cfg, err = LoadConfig(configPath)
				if err == nil {
					err = config.Validate(cfg)
				}
			} else {
				cfg, err = wizard.Run()
			}
			if err != nil {
				return &commandError{ExitCode: ExitConfigError, Err: err}
			}

			logger.Info("configuration collected",
				"project", cfg.Project.Name,
				"provider", cfg.Cloud.Provider,
				"strategy", cfg.Cloud.Deployment.Strategy,
			)

			set, err := artifacts.Build(cfg)
			if err != nil {
				return &commandError{ExitCode: ExitGenerateError, Err: err}
			}
			if err := artifacts.Write(outputDir, set, logger); err != nil {
				return &commandError{ExitCode: ExitWriteError, Err: err}
			}

			if backupPath != "" {
				if err := saveBackup(backupPath, cfg, logger); err != nil {
					return &commandError{ExitCode: ExitWriteError, Err: err}
				}
			}

			summary.Render(os.Stdout, cfg, set, outputDir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "load configuration from a YAML file instead of prompting")
	cmd.Flags().StringVarP(&outputDir, "output", "o", ".", "directory the artifacts are written to")
	cmd.Flags().StringVar(&backupPath, "backup", "", "also write an encrypted configuration backup to this path")

	return cmd
}

func saveBackup(path string, cfg config.CICDConfig, logger *slog.Logger) error {
	var passphrase string
	if err := survey.AskOne(&survey.Password{Message: "Backup passphrase:"}, &passphrase,
		survey.WithValidator(survey.MinLength(8))); err != nil {
		return err
	}

	runID, err := backup.Save(path, cfg, passphrase)
	if err != nil {
		return err
	}
	logger.Info("backup written", "path", path, "run_id", runID)
	return nil
}

// =============================================================================
// validate
// =============================================================================

func newValidateCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a configuration file without generating anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(configPath)
			if err != nil {
				return &commandError{ExitCode: ExitConfigError, Err: err}
			}
			if err := config.Validate(cfg); err != nil {
				return &commandError{ExitCode: ExitConfigError, Err: err}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: configuration is valid\n", configPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to the configuration file")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

// =============================================================================
// version
// =============================================================================

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pipeforge %s (built %s)\n", Version, BuildTime)
		},
	}
}
