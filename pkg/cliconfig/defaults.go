package cliconfig

import (
	"errors"
	"fmt"
)

// DefaultServer is the backend a fresh install talks to.
const DefaultServer = "http://localhost:8080"

// DefaultTimeout is the default request timeout in seconds.
const DefaultTimeout = 30

// DefaultLogLevel keeps the CLI quiet unless something goes wrong.
const DefaultLogLevel = "warn"

// DefaultLogFormat is human-readable output.
const DefaultLogFormat = "text"

// NewDefault creates a new CLIConfig with default values.
func NewDefault() *CLIConfig {
	cfg := &CLIConfig{
		Server:    DefaultServer,
		Timeout:   DefaultTimeout,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
		Sources:   make(map[string]string),
	}

	for _, key := range []string{"server", "timeout", "logLevel", "logFormat", "json"} {
		cfg.Sources[key] = SourceDefault
	}

	return cfg
}

// Validate checks value ranges. Zero values mean "unset" and are accepted.
func (c *CLIConfig) Validate() error {
	var errs []error
	if c.Timeout < 0 || c.Timeout > 600 {
		errs = append(errs, fmt.Errorf("timeout %d is out of range (0-600)", c.Timeout))
	}
	if c.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("rateLimit %g must not be negative", c.RateLimit))
	}
	if c.BreakerFailures < 0 {
		errs = append(errs, fmt.Errorf("breakerFailures %d must not be negative", c.BreakerFailures))
	}
	switch c.LogFormat {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("logFormat %q must be text or json", c.LogFormat))
	}
	return errors.Join(errs...)
}
