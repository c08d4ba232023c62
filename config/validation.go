package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the loaded configuration is internally consistent.
func ValidateConfig(cfg *Config) error {
	var errs []string

	if cfg.ServerPort == "" {
		errs = append(errs, ValidationError{"SERVER_PORT", "must not be empty"}.Error())
	}
	if cfg.DBHost == "" {
		errs = append(errs, ValidationError{"DB_HOST", "must not be empty"}.Error())
	}
	if cfg.DBName == "" {
		errs = append(errs, ValidationError{"DB_NAME", "must not be empty"}.Error())
	}
	switch cfg.DBSSLMode {
	case "disable", "require", "verify-ca", "verify-full", "prefer", "allow":
	default:
		errs = append(errs, ValidationError{"DB_SSL_MODE", fmt.Sprintf("unknown mode %q", cfg.DBSSLMode)}.Error())
	}
	if cfg.RedisDB < 0 || cfg.RedisDB > 15 {
		errs = append(errs, ValidationError{"REDIS_DB", "must be between 0 and 15"}.Error())
	}
	if cfg.ClassifierCacheTTL <= 0 {
		errs = append(errs, ValidationError{"CLASSIFIER_CACHE_TTL", "must be a positive duration"}.Error())
	}
	if cfg.APIKey == "" {
		errs = append(errs, ValidationError{"API_KEY", "must be set"}.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return nil
}
