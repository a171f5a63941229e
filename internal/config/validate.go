package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Storage.validate(); err != nil {
		return fmt.Errorf("storage: %w", err)
	}

	if c.Storage.Driver == StoragePostgres && strings.TrimSpace(c.Database.DSN) == "" {
		return fmt.Errorf("database.dsn is required for the postgres storage driver")
	}

	if c.Auth.JWTSecret != "" && len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if c.LLM.MaxTokens <= 0 {
		return fmt.Errorf("llm.max_tokens must be > 0 (got %d)", c.LLM.MaxTokens)
	}
	if c.LLM.MaxRetries < 0 {
		return fmt.Errorf("llm.max_retries must be >= 0 (got %d)", c.LLM.MaxRetries)
	}

	if c.RateLimit.LLMPerMinute < 0 {
		return fmt.Errorf("rate_limit.llm_per_minute must be >= 0 (got %d)", c.RateLimit.LLMPerMinute)
	}
	if c.RateLimit.CleanupInterval <= 0 {
		return fmt.Errorf("rate_limit.cleanup_interval must be > 0 (got %s)", c.RateLimit.CleanupInterval)
	}

	return nil
}

func (s *StorageConfig) validate() error {
	s.Driver = strings.ToLower(strings.TrimSpace(s.Driver))

	switch s.Driver {
	case StorageMemory, StoragePostgres:
		return nil
	case StorageSQLite:
		if strings.TrimSpace(s.SQLitePath) == "" {
			return fmt.Errorf("sqlite_path is required for the sqlite driver")
		}
		return nil
	default:
		return fmt.Errorf("unknown driver %q (want memory, sqlite or postgres)", s.Driver)
	}
}

// RequireServing checks the settings the HTTP server cannot run without.
func (c *Config) RequireServing() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required to serve")
	}
	if c.LLM.APIKey == "" {
		return fmt.Errorf("llm.api_key is required to serve")
	}
	return nil
}
