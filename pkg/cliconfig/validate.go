package cliconfig

import (
	"fmt"
	"strings"

	"github.com/getmockd/typedstore/internal/matching"
)

// Validate checks the configuration for values the CLI cannot use.
func (c *CLIConfig) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logLevel %q is not one of debug, info, warn, error", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("logFormat %q is not one of text, json", c.LogFormat)
	}
	if err := matching.ValidateKeyPattern(c.KeyPattern); err != nil {
		return fmt.Errorf("keyPattern: %w", err)
	}
	return nil
}
