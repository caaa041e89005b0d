package cliconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultContextConfig(t *testing.T) {
	cfg := NewDefaultContextConfig()

	assert.Equal(t, ContextConfigVersion, cfg.Version)
	assert.Equal(t, DefaultContextName, cfg.CurrentContext)
	require.Contains(t, cfg.Contexts, DefaultContextName)
	assert.Equal(t, DefaultServer, cfg.Contexts[DefaultContextName].Server)
}

func TestContextConfig_SwitchAddRemove(t *testing.T) {
	cfg := NewDefaultContextConfig()

	require.NoError(t, cfg.AddContext("prod", &Context{Server: "https://prod"}))
	assert.Error(t, cfg.AddContext("prod", &Context{Server: "https://other"}), "duplicate name")
	assert.Error(t, cfg.AddContext("empty", &Context{}), "missing server")

	require.NoError(t, cfg.SetCurrentContext("prod"))
	assert.Equal(t, "https://prod", cfg.GetCurrentContext().Server)
	assert.Error(t, cfg.SetCurrentContext("nope"))

	assert.Error(t, cfg.RemoveContext("prod"), "cannot remove current context")
	require.NoError(t, cfg.RemoveContext(DefaultContextName))
	assert.NotContains(t, cfg.Contexts, DefaultContextName)

	cfg.CurrentContext = "gone"
	assert.Nil(t, cfg.GetCurrentContext())
}

func TestContextConfig_SetSession(t *testing.T) {
	cfg := NewDefaultContextConfig()

	require.NoError(t, cfg.SetSession(DefaultContextName, "root", "tok"))
	ctx := cfg.GetCurrentContext()
	assert.Equal(t, "tok", ctx.Token)
	assert.Equal(t, "root", ctx.Username)

	require.NoError(t, cfg.SetSession(DefaultContextName, "root", ""))
	assert.Empty(t, ctx.Token)
	assert.Empty(t, ctx.Username)

	assert.Error(t, cfg.SetSession("missing", "root", "tok"))
}

func TestContextConfig_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", ContextConfigFileName)

	cfg, err := LoadContextConfigFrom(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultContextName, cfg.CurrentContext, "missing file yields defaults")

	require.NoError(t, cfg.AddContext("staging", &Context{Server: "https://staging", Description: "staging"}))
	require.NoError(t, cfg.SetSession(DefaultContextName, "root", "secret"))
	require.NoError(t, cfg.Save())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := LoadContextConfigFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "https://staging", loaded.Contexts["staging"].Server)
	assert.Equal(t, "secret", loaded.Contexts[DefaultContextName].Token)
}

func TestLoadContextConfigFrom_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), ContextConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := LoadContextConfigFrom(path)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, path, cfgErr.Path)
}

func TestLoadContextConfigFrom_EmptyContexts(t *testing.T) {
	path := filepath.Join(t.TempDir(), ContextConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(`{"version":1,"contexts":{}}`), 0o600))

	cfg, err := LoadContextConfigFrom(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultContextName, cfg.CurrentContext)
	assert.NotNil(t, cfg.GetCurrentContext())
}
