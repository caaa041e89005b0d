package cliconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
)

// ContextConfigFileName is the name of the context configuration file.
const ContextConfigFileName = "contexts.json"

// ContextConfigVersion is the current version of the context config schema.
const ContextConfigVersion = 1

// DefaultContextName is the name of the default context.
const DefaultContextName = "local"

// ContextConfig holds the named backends the user can switch between.
// It is stored apart from CLIConfig because it carries session tokens and
// is rewritten by login/logout.
type ContextConfig struct {
	// Version is the config schema version for future migrations
	Version int `json:"version"`

	// CurrentContext is the name of the currently active context
	CurrentContext string `json:"currentContext"`

	// Contexts maps context names to their configuration
	Contexts map[string]*Context `json:"contexts"`

	path string
}

// Context is a named backend plus the session signed in to it.
type Context struct {
	// Server is the backend root URL (e.g., "https://relay.example.com")
	Server string `json:"server"`

	// Description is an optional human-readable description
	Description string `json:"description,omitempty"`

	// Token is the session token from the last login; empty when signed out
	Token string `json:"token,omitempty"`

	// Username is who the token belongs to, for display only
	Username string `json:"username,omitempty"`
}

// NewDefaultContextConfig creates a new ContextConfig with a single local context.
func NewDefaultContextConfig() *ContextConfig {
	return &ContextConfig{
		Version:        ContextConfigVersion,
		CurrentContext: DefaultContextName,
		Contexts: map[string]*Context{
			DefaultContextName: {
				Server:      DefaultServer,
				Description: "Local relay backend",
			},
		},
	}
}

// GetContextConfigPath returns the path to the context config file.
func GetContextConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ContextConfigFileName), nil
}

// LoadContextConfig loads the context configuration from its default path.
// If the file doesn't exist, returns a default configuration.
func LoadContextConfig() (*ContextConfig, error) {
	path, err := GetContextConfigPath()
	if err != nil {
		return NewDefaultContextConfig(), nil
	}
	return LoadContextConfigFrom(path)
}

// LoadContextConfigFrom loads the context configuration from path.
func LoadContextConfigFrom(path string) (*ContextConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := NewDefaultContextConfig()
			cfg.path = path
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read context config: %w", err)
	}

	var cfg ContextConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, &ConfigError{
			Path:    path,
			Message: "invalid JSON: " + err.Error(),
		}
	}
	cfg.path = path

	if cfg.Contexts == nil {
		cfg.Contexts = make(map[string]*Context)
	}
	if len(cfg.Contexts) == 0 {
		cfg.Contexts[DefaultContextName] = &Context{
			Server:      DefaultServer,
			Description: "Local relay backend",
		}
		cfg.CurrentContext = DefaultContextName
	}

	return &cfg, nil
}

// Save writes the configuration back to the file it was loaded from, or
// the default path. The file holds tokens and is created 0600.
func (c *ContextConfig) Save() error {
	path := c.path
	if path == "" {
		p, err := GetContextConfigPath()
		if err != nil {
			return err
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode context config: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write context config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write context config: %w", err)
	}
	c.path = path
	return nil
}

// GetCurrentContext returns the currently active context.
// Returns nil if no context is set or the context doesn't exist.
func (c *ContextConfig) GetCurrentContext() *Context {
	if c.CurrentContext == "" {
		return nil
	}
	return c.Contexts[c.CurrentContext]
}

// SetCurrentContext switches to the named context.
func (c *ContextConfig) SetCurrentContext(name string) error {
	if _, exists := c.Contexts[name]; !exists {
		return fmt.Errorf("context not found: %s", name)
	}
	c.CurrentContext = name
	return nil
}

// AddContext adds a new context with the given name.
func (c *ContextConfig) AddContext(name string, ctx *Context) error {
	if name == "" {
		return errors.New("context name is required")
	}
	if ctx == nil || ctx.Server == "" {
		return errors.New("context server is required")
	}
	if _, exists := c.Contexts[name]; exists {
		return fmt.Errorf("context already exists: %s", name)
	}
	if c.Contexts == nil {
		c.Contexts = make(map[string]*Context)
	}
	c.Contexts[name] = ctx
	return nil
}

// RemoveContext removes a context by name. The current context cannot be removed.
func (c *ContextConfig) RemoveContext(name string) error {
	if _, exists := c.Contexts[name]; !exists {
		return fmt.Errorf("context not found: %s", name)
	}
	if c.CurrentContext == name {
		return errors.New("cannot remove current context; switch to another context first")
	}
	delete(c.Contexts, name)
	return nil
}

// SetSession stores (or, with an empty token, clears) the session of the
// named context.
func (c *ContextConfig) SetSession(name, username, token string) error {
	ctx, exists := c.Contexts[name]
	if !exists {
		return fmt.Errorf("context not found: %s", name)
	}
	ctx.Token = token
	if token == "" {
		ctx.Username = ""
	} else {
		ctx.Username = username
	}
	return nil
}
