package cliconfig

import (
	"os"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix prefixes every environment variable read by the CLI.
const EnvPrefix = "TYPEDSTORE_"

// Environment variable names
const (
	EnvLogLevel   = EnvPrefix + "LOG_LEVEL"
	EnvLogFormat  = EnvPrefix + "LOG_FORMAT"
	EnvEnvPrefix  = EnvPrefix + "ENV_PREFIX"
	EnvKeyPattern = EnvPrefix + "KEY_PATTERN"
	EnvConfig     = EnvPrefix + "CONFIG"
	EnvJSON       = EnvPrefix + "JSON"
)

type envConfig struct {
	LogLevel   string `env:"LOG_LEVEL"`
	LogFormat  string `env:"LOG_FORMAT"`
	EnvPrefix  string `env:"ENV_PREFIX"`
	KeyPattern string `env:"KEY_PATTERN"`
	ConfigFile string `env:"CONFIG"`
	JSON       bool   `env:"JSON"`
}

var envKeys = map[string]string{
	EnvLogLevel:   KeyLogLevel,
	EnvLogFormat:  KeyLogFormat,
	EnvEnvPrefix:  KeyEnvPrefix,
	EnvKeyPattern: KeyKeyPattern,
	EnvConfig:     KeyConfigFile,
	EnvJSON:       KeyJSON,
}

// ReadEnvConfig reads the TYPEDSTORE_* variables into a config whose
// SetFields lists the variables that are present.
func ReadEnvConfig() (*CLIConfig, error) {
	var ec envConfig
	if err := env.ParseWithOptions(&ec, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, &ConfigError{Path: "environment", Message: err.Error()}
	}

	cfg := &CLIConfig{
		LogLevel:   ec.LogLevel,
		LogFormat:  ec.LogFormat,
		EnvPrefix:  ec.EnvPrefix,
		KeyPattern: ec.KeyPattern,
		ConfigFile: ec.ConfigFile,
		JSON:       ec.JSON,
		Sources:    make(map[string]string),
		SetFields:  make(map[string]bool),
	}
	for name, key := range envKeys {
		if _, ok := os.LookupEnv(name); ok {
			cfg.SetFields[key] = true
		}
	}
	return cfg, nil
}

// LoadEnvConfig applies the TYPEDSTORE_* variables to cfg.
func LoadEnvConfig(cfg *CLIConfig) error {
	envCfg, err := ReadEnvConfig()
	if err != nil {
		return err
	}
	MergeConfig(cfg, envCfg, SourceEnv)
	return nil
}
