package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultESIBaseURL is the public ESI root used when ESI_BASE_URL is unset
const DefaultESIBaseURL = "https://esi.evetech.net/latest"

// ESIConfig holds the process-wide settings for talking to ESI
type ESIConfig struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// GetEnv returns the value of an environment variable or a default value if not set
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetBoolEnv returns the boolean value of an environment variable or a default value if not set
func GetBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// GetIntEnv returns the integer value of an environment variable or a default value if not set
func GetIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// GetESIConfig reads the ESI connection settings from the environment
func GetESIConfig() ESIConfig {
	timeout := GetIntEnv("ESI_TIMEOUT_SECONDS", 30)
	if timeout <= 0 {
		timeout = 30
	}

	return ESIConfig{
		BaseURL:   strings.TrimRight(GetEnv("ESI_BASE_URL", DefaultESIBaseURL), "/"),
		UserAgent: GetEnv("ESI_USER_AGENT", "go-waypoint/1.0.0 contact@example.com"),
		Timeout:   time.Duration(timeout) * time.Second,
	}
}

// GetHost returns the interface the HTTP server binds to
func GetHost() string {
	return GetEnv("HOST", "0.0.0.0")
}

// GetAPIPrefix returns the path prefix for all API routes, normalized to "/x" or ""
func GetAPIPrefix() string {
	prefix := strings.TrimSpace(GetEnv("API_PREFIX", ""))
	prefix = strings.TrimRight(prefix, "/")
	if prefix == "" {
		return ""
	}
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	return prefix
}
