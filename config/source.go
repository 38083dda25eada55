package config

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"gopkg.in/yaml.v3"
)

// Source provides configuration from an arbitrary backend.
// Implementations must be safe for concurrent use.
type Source interface {
	// Load retrieves the current configuration.
	Load(ctx context.Context) (*Config, error)

	// Hash returns a content-addressable hash of the current config.
	// Used for change detection without full deserialization.
	Hash(ctx context.Context) (string, error)

	// Name returns a human-readable identifier for this source.
	Name() string
}

// PathSource is a Source backed by a file, so it can be watched on disk.
type PathSource interface {
	Source
	Path() string
}

// ChangeEvent is emitted when a Source detects a change.
type ChangeEvent struct {
	Source  string
	OldHash string
	NewHash string
	Config  *Config
	Time    time.Time
}

// HashConfig returns the SHA256 hex digest of the YAML-serialized config.
func HashConfig(cfg *Config) (string, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
