package cliconfig

import (
	"os"
	"strconv"
)

// Environment variable names
const (
	EnvServer    = "RELAYCTL_SERVER"
	EnvToken     = "RELAYCTL_TOKEN"
	EnvTimeout   = "RELAYCTL_TIMEOUT"
	EnvContext   = "RELAYCTL_CONTEXT"
	EnvLogLevel  = "RELAYCTL_LOG_LEVEL"
	EnvLogFormat = "RELAYCTL_LOG_FORMAT"
	EnvJSON      = "RELAYCTL_JSON"
)

// LoadEnvConfig loads configuration from environment variables.
// It only sets values that are present in the environment.
func LoadEnvConfig(cfg *CLIConfig) {
	if cfg.Sources == nil {
		cfg.Sources = make(map[string]string)
	}

	if v := os.Getenv(EnvServer); v != "" {
		cfg.Server = v
		cfg.Sources["server"] = SourceEnv
	}

	if v := os.Getenv(EnvTimeout); v != "" {
		if timeout, err := strconv.Atoi(v); err == nil && timeout > 0 {
			cfg.Timeout = timeout
			cfg.Sources["timeout"] = SourceEnv
		}
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
		cfg.Sources["logLevel"] = SourceEnv
	}

	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.LogFormat = v
		cfg.Sources["logFormat"] = SourceEnv
	}

	if v := os.Getenv(EnvJSON); v != "" {
		cfg.JSON = v == "true" || v == "1" || v == "yes"
		cfg.Sources["json"] = SourceEnv
	}
}

// GetTokenFromEnv returns the bearer token from the environment.
func GetTokenFromEnv() string {
	return os.Getenv(EnvToken)
}

// GetContextFromEnv returns the context name from the environment.
func GetContextFromEnv() string {
	return os.Getenv(EnvContext)
}
