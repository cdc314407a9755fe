// Package secrets resolves credentials for the remote store and blob storage
// from the environment or Azure Key Vault.
package secrets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
)

// SecretSource defines where secrets are loaded from
type SecretSource string

const (
	SourceEnvironment SecretSource = "environment"
	SourceVault       SecretSource = "vault"
	// SourceAuto uses the environment for development builds and the vault
	// everywhere else
	SourceAuto SecretSource = "auto"
)

// ErrSecretNotFound is returned when a secret has no value in its source
var ErrSecretNotFound = errors.New("secret not found")

// Getter fetches one secret by name
type Getter interface {
	GetSecret(ctx context.Context, name string) (string, error)
}

// ProviderConfig holds configuration for the secrets provider
type ProviderConfig struct {
	Source       SecretSource
	VaultName    string
	Environment  string
	CacheEnabled bool
	CacheTTL     time.Duration
}

// Provider reads secrets from the configured source. Environment variables
// always win so a single value can be overridden on one machine.
type Provider struct {
	source SecretSource
	vault  Getter
	lookup func(string) (string, bool)
	logger *zap.Logger
}

// ResolveSource turns SourceAuto into a concrete source for environment
func ResolveSource(source SecretSource, environment string) SecretSource {
	if source != SourceAuto && source != "" {
		return source
	}
	switch environment {
	case "development", "local", "":
		return SourceEnvironment
	}
	return SourceVault
}

// NewProvider creates a new secrets provider
func NewProvider(cfg *ProviderConfig, logger *zap.Logger) (*Provider, error) {
	source := ResolveSource(cfg.Source, cfg.Environment)
	p := &Provider{source: source, lookup: os.LookupEnv, logger: logger}

	if source == SourceVault {
		if cfg.VaultName == "" {
			return nil, fmt.Errorf("vault name required when using vault secret source")
		}
		vault, err := NewVaultClient(&VaultConfig{
			VaultName:    cfg.VaultName,
			CacheEnabled: cfg.CacheEnabled,
			CacheTTL:     cfg.CacheTTL,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize vault client: %w", err)
		}
		p.vault = vault
	}

	logger.Info("secrets provider initialized",
		zap.String("source", string(source)),
		zap.String("environment", cfg.Environment))
	return p, nil
}

// NewProviderWith builds a provider over an explicit vault and environment
// lookup. A nil vault means environment only.
func NewProviderWith(vault Getter, lookup func(string) (string, bool), logger *zap.Logger) *Provider {
	source := SourceEnvironment
	if vault != nil {
		source = SourceVault
	}
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return &Provider{source: source, vault: vault, lookup: lookup, logger: logger}
}

// GetSecret retrieves a secret. In environment mode name is the variable
// name; in vault mode it is the Key Vault secret name.
func (p *Provider) GetSecret(ctx context.Context, name string) (string, error) {
	if p.source == SourceVault {
		return p.vault.GetSecret(ctx, name)
	}
	if value, ok := p.lookup(name); ok && value != "" {
		return value, nil
	}
	return "", fmt.Errorf("%w: environment variable %s not set", ErrSecretNotFound, name)
}

// GetSecretOrEnv prefers the environment variable envName and falls back to
// secretName in the configured source
func (p *Provider) GetSecretOrEnv(ctx context.Context, secretName, envName string) (string, error) {
	if value, ok := p.lookup(envName); ok && value != "" {
		p.logger.Debug("using environment override", zap.String("env_name", envName))
		return value, nil
	}
	return p.GetSecret(ctx, secretName)
}

// Source returns the resolved secret source
func (p *Provider) Source() SecretSource {
	return p.source
}
