package cliconfig

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestCLIConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  CLIConfig
		wantErr string
	}{
		{
			name:   "valid defaults",
			config: *NewDefault(),
		},
		{
			name:   "zero values allowed (unset)",
			config: CLIConfig{},
		},
		{
			name:    "timeout too high",
			config:  CLIConfig{Timeout: 9999},
			wantErr: "timeout 9999 is out of range",
		},
		{
			name:    "negative rate limit",
			config:  CLIConfig{RateLimit: -1},
			wantErr: "rateLimit -1 must not be negative",
		},
		{
			name:    "unknown log format",
			config:  CLIConfig{LogFormat: "yaml"},
			wantErr: `logFormat "yaml" must be text or json`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestMergeConfig(t *testing.T) {
	t.Run("merges non-zero values", func(t *testing.T) {
		target := NewDefault()
		MergeConfig(target, &CLIConfig{Server: "http://relay:9000", Timeout: 5}, SourceLocal)

		if target.Server != "http://relay:9000" {
			t.Errorf("Server = %q", target.Server)
		}
		if target.Timeout != 5 {
			t.Errorf("Timeout = %d, want 5", target.Timeout)
		}
		if target.Sources["server"] != SourceLocal {
			t.Errorf("source = %q, want local", target.Sources["server"])
		}
		if target.Sources["logLevel"] != SourceDefault {
			t.Errorf("logLevel source = %q, want default", target.Sources["logLevel"])
		}
	})

	t.Run("does not overwrite with zero values", func(t *testing.T) {
		target := NewDefault()
		MergeConfig(target, &CLIConfig{}, SourceLocal)
		if target.Server != DefaultServer || target.Timeout != DefaultTimeout {
			t.Errorf("defaults overwritten: %+v", target)
		}
	})

	t.Run("explicit false with SetFields", func(t *testing.T) {
		target := NewDefault()
		target.JSON = true
		MergeConfig(target, &CLIConfig{SetFields: map[string]bool{"json": true}}, SourceLocal)
		if target.JSON {
			t.Error("expected json to be false after merge")
		}
	})

	t.Run("false without SetFields is ignored", func(t *testing.T) {
		target := NewDefault()
		target.JSON = true
		MergeConfig(target, &CLIConfig{}, SourceLocal)
		if !target.JSON {
			t.Error("expected json to remain true")
		}
	})

	t.Run("nil source is no-op", func(t *testing.T) {
		target := NewDefault()
		MergeConfig(target, nil, SourceLocal)
		if target.Server != DefaultServer {
			t.Errorf("Server = %q", target.Server)
		}
	})
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := "server: https://relay.example.com\ntimeout: 10\njson: false\nlogFormat: json\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile() error = %v", err)
	}
	if cfg.Server != "https://relay.example.com" || cfg.Timeout != 10 || cfg.LogFormat != "json" {
		t.Errorf("cfg = %+v", cfg)
	}
	if !cfg.SetFields["json"] || cfg.SetFields["logLevel"] {
		t.Errorf("SetFields = %v", cfg.SetFields)
	}
}

func TestLoadConfigFile_Invalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server: ok\ntimeout: soon\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := LoadConfigFile(path)
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error = %v, want *ConfigError", err)
	}
	if cfgErr.Path != path || cfgErr.Line != 2 {
		t.Errorf("ConfigError = %+v, want line 2", cfgErr)
	}
}

func TestLoadAll_Precedence(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("HOME", configHome)
	t.Setenv(EnvServer, "")
	t.Setenv(EnvTimeout, "")
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvLogFormat, "")
	t.Setenv(EnvJSON, "")

	globalDir := filepath.Join(configHome, GlobalConfigDir)
	if err := os.MkdirAll(globalDir, 0o700); err != nil {
		t.Fatal(err)
	}
	global := "server: http://global:8080\ntimeout: 12\nlogLevel: info\n"
	if err := os.WriteFile(filepath.Join(globalDir, "config.yaml"), []byte(global), 0o600); err != nil {
		t.Fatal(err)
	}

	work := t.TempDir()
	t.Chdir(work)
	if err := os.WriteFile(filepath.Join(work, ".relayctlrc.yaml"), []byte("server: http://local:8080\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvLogLevel, "debug")

	cfg, err := LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if cfg.Server != "http://local:8080" || cfg.Sources["server"] != SourceLocal {
		t.Errorf("server = %q from %q, want local", cfg.Server, cfg.Sources["server"])
	}
	if cfg.Timeout != 12 || cfg.Sources["timeout"] != SourceGlobal {
		t.Errorf("timeout = %d from %q, want global", cfg.Timeout, cfg.Sources["timeout"])
	}
	if cfg.LogLevel != "debug" || cfg.Sources["logLevel"] != SourceEnv {
		t.Errorf("logLevel = %q from %q, want env", cfg.LogLevel, cfg.Sources["logLevel"])
	}
	if cfg.LogFormat != DefaultLogFormat || cfg.Sources["logFormat"] != SourceDefault {
		t.Errorf("logFormat = %q from %q, want default", cfg.LogFormat, cfg.Sources["logFormat"])
	}
}

func TestResolveClientConfig(t *testing.T) {
	t.Setenv(EnvToken, "")
	t.Setenv(EnvContext, "")

	contexts := &ContextConfig{
		CurrentContext: "prod",
		Contexts: map[string]*Context{
			"prod":    {Server: "https://prod", Token: "prod-token"},
			"staging": {Server: "https://staging", Token: "staging-token"},
		},
	}

	t.Run("context overrides file config", func(t *testing.T) {
		cfg := NewDefault()
		MergeConfig(cfg, &CLIConfig{Server: "http://file"}, SourceGlobal)
		got := ResolveClientConfig(cfg, contexts, "", "")
		if got.Server != "https://prod" || got.Token != "prod-token" || got.ContextName != "prod" {
			t.Errorf("got %+v", got)
		}
		if got.Timeout != DefaultTimeout*time.Second {
			t.Errorf("Timeout = %v", got.Timeout)
		}
	})

	t.Run("context flag", func(t *testing.T) {
		got := ResolveClientConfig(NewDefault(), contexts, "", "staging")
		if got.Server != "https://staging" || got.Token != "staging-token" {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("server flag wins", func(t *testing.T) {
		got := ResolveClientConfig(NewDefault(), contexts, "http://flag", "")
		if got.Server != "http://flag" {
			t.Errorf("Server = %q", got.Server)
		}
	})

	t.Run("env server beats context", func(t *testing.T) {
		cfg := NewDefault()
		cfg.Server = "http://env"
		cfg.Sources["server"] = SourceEnv
		got := ResolveClientConfig(cfg, contexts, "", "")
		if got.Server != "http://env" {
			t.Errorf("Server = %q", got.Server)
		}
	})

	t.Run("env token and context", func(t *testing.T) {
		t.Setenv(EnvToken, "env-token")
		t.Setenv(EnvContext, "staging")
		got := ResolveClientConfig(NewDefault(), contexts, "", "")
		if got.Token != "env-token" || got.ContextName != "staging" {
			t.Errorf("got %+v", got)
		}
	})
}
