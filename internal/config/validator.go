package config

import (
	"fmt"
	"os"
	"strings"
)

// postgresEnvVars must be set when the postgres backend is selected
var postgresEnvVars = []string{
	"DB_USER",
	"DB_PASSWORD",
	"DB_HOST",
	"DB_PORT",
	"DB_NAME",
}

// RequiredEnvVars lists the variables the selected backends need
func RequiredEnvVars() []string {
	var required []string
	if strings.ToLower(getEnv("STORAGE_BACKEND", StorageBackendPostgres)) == StorageBackendPostgres {
		required = append(required, postgresEnvVars...)
	}
	if strings.ToLower(getEnv("STATE_BACKEND", StateBackendMemory)) == StateBackendRedis {
		required = append(required, "REDIS_ADDR")
	}
	return required
}

// ValidateEnv checks that every variable the selected backends need is set
func ValidateEnv() error {
	var missing []string
	for _, envVar := range RequiredEnvVars() {
		if os.Getenv(envVar) == "" {
			missing = append(missing, envVar)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf(ErrMsgMissingEnvVarsFmt, strings.Join(missing, ", "))
	}
	return nil
}

// ValidateEnvWithWarnings runs ValidateEnv and reports settings that work but look wrong
func ValidateEnvWithWarnings() ([]string, error) {
	if err := ValidateEnv(); err != nil {
		return nil, err
	}

	var warnings []string
	if os.Getenv("DB_PASSWORD") == "change_this_secure_password" {
		warnings = append(warnings, "DB_PASSWORD appears to be using the example value - please use a secure password")
	}
	if key := os.Getenv("API_KEY"); key == "" {
		warnings = append(warnings, "API_KEY is not set - admin routes are disabled")
	} else if key == "generate_with_openssl_rand_hex_32" {
		warnings = append(warnings, "API_KEY appears to be using the example value - generate a secure key with: openssl rand -hex 32")
	}
	return warnings, nil
}
