package cliconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// GlobalConfigDir is the directory for global config
	GlobalConfigDir = "typedstore"
)

// LocalConfigFileNames are the names to search for local config (in order).
var LocalConfigFileNames = []string{".typedstorerc.yaml", ".typedstorerc.yml"}

// GlobalConfigFileNames are the names to search for global config (in order).
var GlobalConfigFileNames = []string{"config.yaml", "config.yml"}

// FindLocalConfig searches for .typedstorerc.yaml or .typedstorerc.yml in the current directory.
func FindLocalConfig() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for _, name := range LocalConfigFileNames {
		path := filepath.Join(cwd, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", nil
}

// FindGlobalConfig returns the path to the global config file.
// Returns empty string if not found.
func FindGlobalConfig() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		//nolint:nilerr // no config dir means no global config
		return "", nil
	}
	for _, name := range GlobalConfigFileNames {
		path := filepath.Join(configDir, GlobalConfigDir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", nil
}

// LoadConfigFile loads a CLIConfig from a YAML file. SetFields lists the
// top-level keys present in the file.
func LoadConfigFile(path string) (*CLIConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg CLIConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, newConfigError(path, err)
	}

	var present map[string]any
	if err := yaml.Unmarshal(data, &present); err != nil {
		return nil, newConfigError(path, err)
	}

	cfg.Sources = make(map[string]string)
	cfg.SetFields = make(map[string]bool, len(present))
	for key := range present {
		if key == KeyConfigFile {
			// a config file cannot redirect to another one
			continue
		}
		cfg.SetFields[key] = true
	}
	return &cfg, nil
}

// ConfigError represents a configuration file error with location info.
type ConfigError struct {
	Path    string
	Line    int
	Message string
}

func (e *ConfigError) Error() string {
	if e.Line > 0 {
		return e.Path + " (line " + strconv.Itoa(e.Line) + "): " + e.Message
	}
	return e.Path + ": " + e.Message
}

// newConfigError converts a yaml.v3 error, which reports positions as
// "yaml: line N: ...", into a ConfigError.
func newConfigError(path string, err error) *ConfigError {
	msg := err.Error()
	var typeErr *yaml.TypeError
	if errors.As(err, &typeErr) && len(typeErr.Errors) > 0 {
		msg = typeErr.Errors[0]
	}
	msg = strings.TrimPrefix(msg, "yaml: ")

	line := 0
	if rest, ok := strings.CutPrefix(msg, "line "); ok {
		if n, after, ok := strings.Cut(rest, ":"); ok {
			if parsed, err := strconv.Atoi(n); err == nil {
				line = parsed
				msg = strings.TrimSpace(after)
			}
		}
	}
	return &ConfigError{Path: path, Line: line, Message: msg}
}

// LoadAll loads configuration from all sources and merges them.
// Precedence: env > explicit file > local config > global config > defaults.
// explicitPath, typically the --config flag, may be empty; TYPEDSTORE_CONFIG
// is used when it is. Flags are applied by the caller.
func LoadAll(explicitPath string) (*CLIConfig, error) {
	cfg := NewDefault()

	if globalPath, err := FindGlobalConfig(); err == nil && globalPath != "" {
		globalCfg, err := LoadConfigFile(globalPath)
		if err != nil {
			return nil, err
		}
		MergeConfig(cfg, globalCfg, SourceGlobal)
	}

	localPath, err := FindLocalConfig()
	if err != nil {
		return nil, fmt.Errorf("find local config: %w", err)
	}
	if localPath != "" {
		localCfg, err := LoadConfigFile(localPath)
		if err != nil {
			return nil, err
		}
		MergeConfig(cfg, localCfg, SourceLocal)
	}

	envCfg, err := ReadEnvConfig()
	if err != nil {
		return nil, err
	}

	if explicitPath == "" {
		explicitPath = envCfg.ConfigFile
	}
	if explicitPath != "" {
		fileCfg, err := LoadConfigFile(explicitPath)
		if err != nil {
			return nil, err
		}
		MergeConfig(cfg, fileCfg, SourceFile)
		cfg.ConfigFile = explicitPath
	}

	MergeConfig(cfg, envCfg, SourceEnv)
	return cfg, nil
}
