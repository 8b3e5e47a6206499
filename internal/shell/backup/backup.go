// Package backup persists an encrypted snapshot of the configuration
// aggregate so a later run can be replayed without re-answering the
// wizard. This is part of the Imperative Shell.
//
// Secret material is redacted before the snapshot is marshaled:
// credential secrets are never persisted at all, and environment
// variable values flagged secret are replaced with a placeholder. The
// snapshot is then encrypted with AES-256-GCM under a key derived from
// the user's passphrase, so even the redacted document never sits on
// disk in the clear.
package backup

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/artpar/pipeforge/internal/core/config"
	"github.com/artpar/pipeforge/internal/core/crypto"
)

// RedactedValue replaces secret environment variable values in the
// persisted snapshot.
const RedactedValue = "<redacted>"

// ErrCorruptBackup is returned when a backup file is too short to hold
// a salt and ciphertext.
var ErrCorruptBackup = errors.New("backup file corrupt or truncated")

// =============================================================================
// Snapshot Shape
// =============================================================================

// CredentialRecord is the non-secret subset of a credential variant.
// Key material stays out of the snapshot entirely; replaying a backup
// re-prompts for secrets.
type CredentialRecord struct {
	Provider config.Provider `yaml:"provider"`
	Region   string          `yaml:"region"`
	UseOIDC  bool            `yaml:"use_oidc"`
}

// Snapshot is the persisted document.
type Snapshot struct {
	RunID      string           `yaml:"run_id"`
	CreatedAt  time.Time        `yaml:"created_at"`
	Config     config.CICDConfig `yaml:"config"`
	Credential CredentialRecord `yaml:"credential"`
}

// =============================================================================
// Redaction
// =============================================================================

// Redact returns a copy of the aggregate safe to persist: secret
// environment variable values are replaced and the credential variant
// is reduced to its non-secret record.
func Redact(cfg config.CICDConfig) (config.CICDConfig, CredentialRecord) {
	record := CredentialRecord{}
	if creds := cfg.Cloud.Credentials; creds != nil {
		record = CredentialRecord{
			Provider: creds.CredProvider(),
			Region:   creds.CredRegion(),
			UseOIDC:  creds.OIDC(),
		}
	}
	cfg.Cloud.Credentials = nil

	secret := config.SecretKeys(cfg.Project)
	cfg.Cloud.Deployment.EnvironmentVariables = redactMap(cfg.Cloud.Deployment.EnvironmentVariables, secret)
	cfg.Jenkins.EnvironmentVariables = redactMap(cfg.Jenkins.EnvironmentVariables, secret)

	return cfg, record
}

func redactMap(m map[string]string, secret map[string]bool) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		if secret[k] && v != "" {
			out[k] = RedactedValue
		} else {
			out[k] = v
		}
	}
	return out
}

// =============================================================================
// Save / Load
// =============================================================================

// Save writes an encrypted snapshot of the aggregate to path and
// returns the generated run ID.
func Save(path string, cfg config.CICDConfig, passphrase string) (string, error) {
	redacted, record := Redact(cfg)
	snap := Snapshot{
		RunID:      uuid.NewString(),
		CreatedAt:  time.Now().UTC(),
		Config:     redacted,
		Credential: record,
	}

	plaintext, err := yaml.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	salt, err := crypto.NewSalt()
	if err != nil {
		return "", err
	}
	key, err := crypto.DeriveKey(passphrase, salt)
	if err != nil {
		return "", err
	}
	ciphertext, err := crypto.Encrypt(plaintext, key)
	if err != nil {
		return "", err
	}

	// file layout: salt || ciphertext
	payload := append(salt, ciphertext...)
	if err := os.WriteFile(path, payload, 0o600); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}

	return snap.RunID, nil
}

// Load reads and decrypts a snapshot written by Save.
func Load(path string, passphrase string) (*Snapshot, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read backup: %w", err)
	}
	if len(payload) <= crypto.SaltSize {
		return nil, ErrCorruptBackup
	}

	salt, ciphertext := payload[:crypto.SaltSize], payload[crypto.SaltSize:]
	key, err := crypto.DeriveKey(passphrase, salt)
	if err != nil {
		return nil, err
	}
	plaintext, err := crypto.Decrypt(ciphertext, key)
	if err != nil {
		return nil, err
	}

	var snap Snapshot
	if err := yaml.Unmarshal(plaintext, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return &snap, nil
}
