package cliconfig

// MergeConfig merges source config into target, updating sources tracking.
// When source.SetFields is set, exactly the listed keys are applied, so an
// explicit false or empty string overrides. Otherwise only non-zero values
// are applied.
func MergeConfig(target, source *CLIConfig, sourceType string) {
	if source == nil {
		return
	}
	if target.Sources == nil {
		target.Sources = make(map[string]string)
	}

	apply := func(key string, nonZero bool, set func()) {
		if source.SetFields != nil {
			if !source.SetFields[key] {
				return
			}
		} else if !nonZero {
			return
		}
		set()
		target.Sources[key] = sourceType
	}

	apply(KeyLogLevel, source.LogLevel != "", func() { target.LogLevel = source.LogLevel })
	apply(KeyLogFormat, source.LogFormat != "", func() { target.LogFormat = source.LogFormat })
	apply(KeyEnvPrefix, source.EnvPrefix != "", func() { target.EnvPrefix = source.EnvPrefix })
	apply(KeyKeyPattern, source.KeyPattern != "", func() { target.KeyPattern = source.KeyPattern })
	apply(KeyConfigFile, source.ConfigFile != "", func() { target.ConfigFile = source.ConfigFile })
	apply(KeyJSON, source.JSON, func() { target.JSON = source.JSON })
}
