// Package cliconfig provides configuration types and loading for the typedstore CLI.
package cliconfig

// CLIConfig represents the complete configuration for the typedstore CLI.
// Configuration values can come from multiple sources with the following precedence:
// 1. Command-line flags (highest priority)
// 2. Environment variables (TYPEDSTORE_*)
// 3. Config file named by --config or TYPEDSTORE_CONFIG
// 4. Local config file (.typedstorerc.yaml in current directory)
// 5. Global config file (~/.config/typedstore/config.yaml)
// 6. Default values (lowest priority)
type CLIConfig struct {
	// Logging settings
	LogLevel  string `yaml:"logLevel" json:"logLevel"`
	LogFormat string `yaml:"logFormat" json:"logFormat"`

	// EnvPrefix is prepended to every variable name read by `env get`.
	EnvPrefix string `yaml:"envPrefix" json:"envPrefix"`

	// KeyPattern is the default --key filter of `cookie decode`.
	KeyPattern string `yaml:"keyPattern" json:"keyPattern"`

	// ConfigFile is an explicit config file to load.
	ConfigFile string `yaml:"-" json:"configFile,omitempty"`

	// Output settings
	JSON bool `yaml:"json" json:"json"`

	// Sources tracks where each value came from (for debugging)
	Sources map[string]string `yaml:"-" json:"-"`

	// SetFields records which keys were explicitly present in the source
	// this config was loaded from.
	SetFields map[string]bool `yaml:"-" json:"-"`
}

// ConfigSource identifies where a config value originated.
const (
	SourceDefault = "default"
	SourceGlobal  = "global"
	SourceLocal   = "local"
	SourceFile    = "file"
	SourceEnv     = "env"
	SourceFlag    = "flag"
)

// Config keys, as used in YAML files and Sources.
const (
	KeyLogLevel   = "logLevel"
	KeyLogFormat  = "logFormat"
	KeyEnvPrefix  = "envPrefix"
	KeyKeyPattern = "keyPattern"
	KeyConfigFile = "configFile"
	KeyJSON       = "json"
)
