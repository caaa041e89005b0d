// Package logging configures the structured logger shared by relayctl
// components.
//
// It wraps log/slog. Components take a *slog.Logger in their constructor;
// when none is given they fall back to Nop().
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.ParseLevel("debug"),
//	    Format: logging.FormatJSON,
//	})
//	logger.Debug("request", "op", "list_groups", "status", 200)
//
// Attributes that carry credentials (tokens, passwords, secret keys) are
// masked by every logger built with New.
package logging
