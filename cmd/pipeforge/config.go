package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/artpar/pipeforge/internal/core/config"
)

// =============================================================================
// Config Loading
// =============================================================================

// LoadConfig loads a configuration aggregate from a YAML file, with
// PIPEFORGE_* environment variable overrides. The credential variant is
// decoded separately because the closed union cannot be unmarshaled
// into an interface field directly; the cloud.provider tag selects the
// concrete shape.
func LoadConfig(configPath string) (config.CICDConfig, error) {
	var cfg config.CICDConfig

	v := viper.New()
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}

	v.SetEnvPrefix("PIPEFORGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal config: %w", err)
	}

	creds, err := decodeCredentials(v, cfg.Cloud.Provider)
	if err != nil {
		return cfg, err
	}
	cfg.Cloud.Credentials = creds

	return cfg, nil
}

// decodeCredentials unmarshals cloud.credentials into the concrete
// variant for the configured provider.
func decodeCredentials(v *viper.Viper, p config.Provider) (config.Credentials, error) {
	switch p {
	case config.ProviderAWS:
		var creds config.AWSCredentials
		if err := v.UnmarshalKey("cloud.credentials", &creds); err != nil {
			return nil, fmt.Errorf("decode aws credentials: %w", err)
		}
		return creds, nil
	case config.ProviderAzure:
		var creds config.AzureCredentials
		if err := v.UnmarshalKey("cloud.credentials", &creds); err != nil {
			return nil, fmt.Errorf("decode azure credentials: %w", err)
		}
		return creds, nil
	case config.ProviderGCP:
		var creds config.GCPCredentials
		if err := v.UnmarshalKey("cloud.credentials", &creds); err != nil {
			return nil, fmt.Errorf("decode gcp credentials: %w", err)
		}
		return creds, nil
	case config.ProviderDigitalOcean:
		var creds config.DigitalOceanCredentials
		if err := v.UnmarshalKey("cloud.credentials", &creds); err != nil {
			return nil, fmt.Errorf("decode digitalocean credentials: %w", err)
		}
		return creds, nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnsupportedProvider, p)
	}
}

// =============================================================================
// Logger Setup
// =============================================================================

// SetupLogger creates a logger with the given level and format.
func SetupLogger(levelName, format string) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(levelName) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}
