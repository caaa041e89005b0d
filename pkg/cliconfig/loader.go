package cliconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// GlobalConfigDir is the directory for global config under the user config dir.
	GlobalConfigDir = "relayctl"
)

// LocalConfigFileNames are the names to search for local config (in order).
var LocalConfigFileNames = []string{".relayctlrc.yaml", ".relayctlrc.yml"}

// GlobalConfigFileNames are the names to search for global config (in order).
var GlobalConfigFileNames = []string{"config.yaml", "config.yml"}

// ConfigDir returns $XDG_CONFIG_HOME/relayctl (or the platform equivalent).
func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine config directory: %w", err)
	}
	return filepath.Join(base, GlobalConfigDir), nil
}

// FindLocalConfig searches for .relayctlrc.yaml or .relayctlrc.yml in the
// current directory. Returns an empty path if none exists.
func FindLocalConfig() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return firstExisting(cwd, LocalConfigFileNames), nil
}

// FindGlobalConfig returns the path to the global config file.
// Returns an empty path if not found.
func FindGlobalConfig() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		//nolint:nilerr // no config dir means no global config
		return "", nil
	}
	return firstExisting(dir, GlobalConfigFileNames), nil
}

func firstExisting(dir string, names []string) string {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// LoadConfigFile loads a CLIConfig from a YAML file.
func LoadConfigFile(path string) (*CLIConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg CLIConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, newConfigError(path, err)
	}

	var keys map[string]any
	if err := yaml.Unmarshal(data, &keys); err != nil {
		return nil, newConfigError(path, err)
	}
	cfg.SetFields = make(map[string]bool, len(keys))
	for k := range keys {
		cfg.SetFields[k] = true
	}
	cfg.Sources = make(map[string]string)

	if err := cfg.Validate(); err != nil {
		return nil, &ConfigError{Path: path, Message: err.Error()}
	}
	return &cfg, nil
}

// ConfigError represents a configuration file error with location info.
type ConfigError struct {
	Path    string
	Line    int
	Message string
}

func (e *ConfigError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s (line %d): %s", e.Path, e.Line, e.Message)
	}
	return e.Path + ": " + e.Message
}

func newConfigError(path string, err error) *ConfigError {
	ce := &ConfigError{Path: path, Message: err.Error()}
	var te *yaml.TypeError
	if errors.As(err, &te) && len(te.Errors) > 0 {
		ce.Message = te.Errors[0]
	}
	var line int
	if _, scanErr := fmt.Sscanf(ce.Message, "yaml: line %d:", &line); scanErr == nil {
		ce.Line = line
	} else if _, scanErr := fmt.Sscanf(ce.Message, "line %d:", &line); scanErr == nil {
		ce.Line = line
	}
	return ce
}

// LoadAll loads configuration from all file and environment sources and
// merges them. Flags are applied afterwards by the caller via MergeConfig.
// Precedence: env > local config > global config > defaults
func LoadAll() (*CLIConfig, error) {
	cfg := NewDefault()

	if globalPath, err := FindGlobalConfig(); err == nil && globalPath != "" {
		globalCfg, err := LoadConfigFile(globalPath)
		if err != nil {
			return nil, err
		}
		MergeConfig(cfg, globalCfg, SourceGlobal)
	}

	if localPath, err := FindLocalConfig(); err == nil && localPath != "" {
		localCfg, err := LoadConfigFile(localPath)
		if err != nil {
			return nil, err
		}
		MergeConfig(cfg, localCfg, SourceLocal)
	}

	LoadEnvConfig(cfg)

	return cfg, nil
}
