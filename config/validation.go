package config

import (
	"fmt"
	"strconv"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the loaded configuration is usable
func ValidateConfig(cfg *Config) error {
	if cfg.ServerPort == "" {
		return ValidationError{Field: "PORT", Message: "server port is required"}
	}
	if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port < 1 || port > 65535 {
		return ValidationError{Field: "PORT", Message: fmt.Sprintf("invalid port %q", cfg.ServerPort)}
	}
	if cfg.DatabaseURL == "" {
		if cfg.DBHost == "" {
			return ValidationError{Field: "DB_HOST", Message: "database host is required"}
		}
		if cfg.DBName == "" {
			return ValidationError{Field: "DB_NAME", Message: "database name is required"}
		}
	}
	return nil
}
