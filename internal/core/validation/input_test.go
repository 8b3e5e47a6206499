package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/artpar/pipeforge/internal/core/config"
)

// =============================================================================
// Git Remote Tests
// =============================================================================

func TestValidateGitURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		ok   bool
	}{
		{"github https", "https://github.com/acme/order-service.git", true},
		{"github https no suffix", "https://github.com/acme/order-service", true},
		{"gitlab subgroup", "https://gitlab.com/acme/platform/order-service.git", true},
		{"bitbucket", "https://bitbucket.org/acme/order-service", true},
		{"ssh scp style", "git@github.com:acme/order-service.git", true},
		{"ssh url style", "ssh://git@git.internal.acme.io/platform/order-service.git", true},
		{"self-hosted https", "https://git.internal.acme.io/platform/order-service.git", true},
		{"self-hosted with port", "https://git.internal.acme.io:8443/platform/order-service.git", true},
		{"self-hosted without suffix", "https://git.internal.acme.io/platform/order-service", false},
		{"plain web page", "https://example.com/about", false},
		{"not a url", "order-service", false},
		{"empty", "", false},
		{"whitespace only", "   ", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGitURL(tt.url)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidGitURL)
			}
		})
	}
}

// =============================================================================
// Dockerfile Tests
// =============================================================================

func TestValidateDockerfile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		ok      bool
	}{
		{"simple", "FROM golang:1.24\nCOPY . .\n", true},
		{"comment before from", "# build stage\nFROM node:22-alpine AS build\n", true},
		{"lowercase from", "from python:3.12\n", true},
		{"indented from", "  FROM alpine:3.20\n", true},
		{"empty", "", false},
		{"no from", "RUN echo hello\n", false},
		{"from in run argument", "RUN echo FROM\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDockerfile(tt.content)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrNoBaseImage)
			}
		})
	}
}

// =============================================================================
// Scalar Tests
// =============================================================================

func TestValidatePort(t *testing.T) {
	assert.NoError(t, ValidatePort(1))
	assert.NoError(t, ValidatePort(8080))
	assert.NoError(t, ValidatePort(65535))
	assert.ErrorIs(t, ValidatePort(0), ErrPortOutOfRange)
	assert.ErrorIs(t, ValidatePort(65536), ErrPortOutOfRange)
	assert.ErrorIs(t, ValidatePort(-1), ErrPortOutOfRange)
}

func TestValidateInstanceType(t *testing.T) {
	assert.NoError(t, ValidateInstanceType(config.ProviderAWS, "t3.small"))
	assert.NoError(t, ValidateInstanceType(config.ProviderDigitalOcean, "basic-xs"))
	assert.ErrorIs(t, ValidateInstanceType(config.ProviderAWS, "m5.24xlarge"), ErrUnknownInstanceType)
	assert.ErrorIs(t, ValidateInstanceType(config.ProviderGCP, "t3.small"), ErrUnknownInstanceType)
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("ops@example.com"))
	assert.NoError(t, ValidateEmail("on-call+pager@sub.example.io"))
	assert.ErrorIs(t, ValidateEmail("ops"), ErrInvalidEmail)
	assert.ErrorIs(t, ValidateEmail("ops@localhost"), ErrInvalidEmail)
	assert.ErrorIs(t, ValidateEmail("a b@example.com"), ErrInvalidEmail)
}
