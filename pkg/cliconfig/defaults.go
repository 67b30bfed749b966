package cliconfig

// DefaultLogLevel is the default minimum log level.
const DefaultLogLevel = "warn"

// DefaultLogFormat is the default log output format.
const DefaultLogFormat = "text"

// NewDefault creates a new CLIConfig with default values.
func NewDefault() *CLIConfig {
	cfg := &CLIConfig{
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
		Sources:   make(map[string]string),
	}

	cfg.Sources[KeyLogLevel] = SourceDefault
	cfg.Sources[KeyLogFormat] = SourceDefault
	cfg.Sources[KeyEnvPrefix] = SourceDefault
	cfg.Sources[KeyKeyPattern] = SourceDefault
	cfg.Sources[KeyJSON] = SourceDefault

	return cfg
}
