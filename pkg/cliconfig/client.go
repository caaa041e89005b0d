package cliconfig

import (
	"time"
)

// ClientConfig holds resolved settings for creating an API client.
// This is the single source of truth for CLI commands needing to connect.
type ClientConfig struct {
	// Server is the resolved backend root URL
	Server string

	// Token is the resolved session token (may be empty when signed out)
	Token string

	// Timeout bounds each request
	Timeout time.Duration

	// ContextName is the context the server and token came from
	ContextName string

	// RateLimit and BreakerFailures enable optional client resilience
	RateLimit       float64
	BreakerFailures int
}

// ResolveContext resolves which context to use.
// Priority: explicit flag > env var > current context
func ResolveContext(flagValue string, contexts *ContextConfig) string {
	if flagValue != "" {
		return flagValue
	}
	if envCtx := GetContextFromEnv(); envCtx != "" {
		return envCtx
	}
	if contexts == nil || contexts.CurrentContext == "" {
		return DefaultContextName
	}
	return contexts.CurrentContext
}

// ResolveClientConfig resolves client settings from the merged CLI config
// and the context file. Pass an empty string for a flag that wasn't given.
//
// Server priority: flag > env > context > local > global > default.
// Token priority: env > context.
func ResolveClientConfig(cfg *CLIConfig, contexts *ContextConfig, flagServer, flagContext string) *ClientConfig {
	if cfg == nil {
		cfg = NewDefault()
	}
	name := ResolveContext(flagContext, contexts)
	var ctx *Context
	if contexts != nil {
		ctx = contexts.Contexts[name]
	}

	out := &ClientConfig{
		Server:          cfg.Server,
		Timeout:         time.Duration(cfg.Timeout) * time.Second,
		ContextName:     name,
		RateLimit:       cfg.RateLimit,
		BreakerFailures: cfg.BreakerFailures,
	}
	if out.Timeout <= 0 {
		out.Timeout = DefaultTimeout * time.Second
	}

	src := cfg.Sources["server"]
	switch {
	case flagServer != "":
		out.Server = flagServer
	case src == SourceEnv || src == SourceFlag:
	case ctx != nil && ctx.Server != "":
		out.Server = ctx.Server
	}

	if token := GetTokenFromEnv(); token != "" {
		out.Token = token
	} else if ctx != nil {
		out.Token = ctx.Token
	}

	return out
}
