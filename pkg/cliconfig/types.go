// Package cliconfig provides configuration types and loading for the relayctl CLI.
package cliconfig

// CLIConfig represents the complete configuration for the relayctl CLI.
// Configuration values can come from multiple sources with the following precedence:
// 1. Command-line flags (highest priority)
// 2. Environment variables
// 3. Local config file (.relayctlrc.yaml in current directory)
// 4. Global config file ($XDG_CONFIG_HOME/relayctl/config.yaml)
// 5. Default values (lowest priority)
//
// Contexts (contexts.json) select a server and token; see ResolveClientConfig.
type CLIConfig struct {
	// Backend settings
	Server  string `yaml:"server" json:"server"`
	Timeout int    `yaml:"timeout" json:"timeout"` // seconds

	// Client resilience, both off when zero
	RateLimit       float64 `yaml:"rateLimit,omitempty" json:"rateLimit,omitempty"` // requests per second
	BreakerFailures int     `yaml:"breakerFailures,omitempty" json:"breakerFailures,omitempty"`

	// Logging settings
	LogLevel  string `yaml:"logLevel" json:"logLevel"`
	LogFormat string `yaml:"logFormat" json:"logFormat"`
	LogFile   string `yaml:"logFile,omitempty" json:"logFile,omitempty"`

	// Output settings
	JSON bool `yaml:"json" json:"json"`

	// Source tracks where each value came from (for `relayctl config`)
	Sources map[string]string `yaml:"-" json:"-"`

	// SetFields records which keys were present in a loaded file, so an
	// explicit false can override a true from a lower layer.
	SetFields map[string]bool `yaml:"-" json:"-"`
}

// ConfigSource identifies where a config value originated.
const (
	SourceDefault = "default"
	SourceEnv     = "env"
	SourceGlobal  = "global"
	SourceLocal   = "local"
	SourceContext = "context"
	SourceFlag    = "flag"
)
