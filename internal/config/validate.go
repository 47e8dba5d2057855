package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Storage backends.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Gemini client implementations.
const (
	GeminiClientREST = "rest"
	GeminiClientSDK  = "sdk"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if len(c.Auth.EncryptionKey) < 32 {
		return fmt.Errorf("auth.encryption_key must be at least 32 characters (got %d)", len(c.Auth.EncryptionKey))
	}
	if c.Auth.ActionTokenTTL <= 0 {
		return fmt.Errorf("auth.action_token_ttl must be > 0 (got %s)", c.Auth.ActionTokenTTL)
	}

	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	switch c.Storage.Backend {
	case StoragePostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for storage backend %q", StoragePostgres)
		}
	case StorageMemory:
	default:
		return fmt.Errorf("storage.backend must be %q or %q (got %q)", StoragePostgres, StorageMemory, c.Storage.Backend)
	}

	if err := c.Gemini.validate(); err != nil {
		return fmt.Errorf("gemini: %w", err)
	}

	if c.RateLimit.Enabled && c.RateLimit.RequestsPerMinute <= 0 {
		return fmt.Errorf("rate_limit.requests_per_minute must be > 0 (got %d)", c.RateLimit.RequestsPerMinute)
	}

	return nil
}

func (g *GeminiConfig) validate() error {
	u, err := url.Parse(g.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("base_url must be an absolute URL (got %q)", g.BaseURL)
	}
	g.BaseURL = strings.TrimRight(g.BaseURL, "/")

	if strings.TrimSpace(g.Model) == "" {
		return fmt.Errorf("model is required")
	}
	if g.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %s)", g.Timeout)
	}
	if g.MaxOutputTokens <= 0 {
		return fmt.Errorf("max_output_tokens must be > 0 (got %d)", g.MaxOutputTokens)
	}

	g.Client = strings.ToLower(strings.TrimSpace(g.Client))
	if g.Client != GeminiClientREST && g.Client != GeminiClientSDK {
		return fmt.Errorf("client must be %q or %q (got %q)", GeminiClientREST, GeminiClientSDK, g.Client)
	}

	return nil
}
