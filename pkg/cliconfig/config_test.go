package cliconfig

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupConfigTest isolates the test from the user's real config: the global
// config dir and the working directory are both temporary.
func setupConfigTest(t *testing.T) (globalDir, workDir string) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("HOME", home)
	for name := range envKeys {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}

	globalDir = filepath.Join(home, GlobalConfigDir)
	require.NoError(t, os.MkdirAll(globalDir, 0o755))

	workDir = t.TempDir()
	chdirForTest(t, workDir)
	return globalDir, workDir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestCLIConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  CLIConfig
		wantErr string
	}{
		{
			name:    "valid defaults",
			config:  *NewDefault(),
			wantErr: "",
		},
		{
			name:    "valid custom",
			config:  CLIConfig{LogLevel: "DEBUG", LogFormat: "json", KeyPattern: "ui.*"},
			wantErr: "",
		},
		{
			name:    "unknown level",
			config:  CLIConfig{LogLevel: "trace"},
			wantErr: `logLevel "trace"`,
		},
		{
			name:    "unknown format",
			config:  CLIConfig{LogFormat: "yaml"},
			wantErr: `logFormat "yaml"`,
		},
		{
			name:    "bad key pattern",
			config:  CLIConfig{KeyPattern: "["},
			wantErr: "keyPattern",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeConfig(t *testing.T) {
	t.Run("merges non-zero values", func(t *testing.T) {
		target := NewDefault()
		MergeConfig(target, &CLIConfig{LogLevel: "debug", EnvPrefix: "APP_"}, SourceLocal)

		assert.Equal(t, "debug", target.LogLevel)
		assert.Equal(t, "APP_", target.EnvPrefix)
		assert.Equal(t, SourceLocal, target.Sources[KeyLogLevel])
		assert.Equal(t, SourceDefault, target.Sources[KeyLogFormat])
	})

	t.Run("does not overwrite with zero values", func(t *testing.T) {
		target := NewDefault()
		MergeConfig(target, &CLIConfig{}, SourceLocal)
		assert.Equal(t, DefaultLogLevel, target.LogLevel)
	})

	t.Run("applies explicit false with SetFields", func(t *testing.T) {
		target := NewDefault()
		target.JSON = true
		MergeConfig(target, &CLIConfig{SetFields: map[string]bool{KeyJSON: true}}, SourceLocal)

		assert.False(t, target.JSON)
		assert.Equal(t, SourceLocal, target.Sources[KeyJSON])
	})

	t.Run("does not merge false without SetFields", func(t *testing.T) {
		target := NewDefault()
		target.JSON = true
		MergeConfig(target, &CLIConfig{}, SourceLocal)
		assert.True(t, target.JSON)
	})

	t.Run("nil source is no-op", func(t *testing.T) {
		target := NewDefault()
		MergeConfig(target, nil, SourceLocal)
		assert.Equal(t, NewDefault(), target)
	})
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("records present keys", func(t *testing.T) {
		path := filepath.Join(dir, "ok.yaml")
		writeFile(t, path, "logLevel: debug\njson: false\nconfigFile: elsewhere.yaml\n")

		cfg, err := LoadConfigFile(path)
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, map[string]bool{KeyLogLevel: true, KeyJSON: true}, cfg.SetFields)
		assert.Empty(t, cfg.ConfigFile)
	})

	t.Run("syntax error has a line", func(t *testing.T) {
		path := filepath.Join(dir, "syntax.yaml")
		writeFile(t, path, "logLevel: debug\n  bad: indent\n")

		_, err := LoadConfigFile(path)
		var cfgErr *ConfigError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, path, cfgErr.Path)
		assert.Positive(t, cfgErr.Line)
		assert.True(t, strings.HasPrefix(err.Error(), path+" (line "))
	})

	t.Run("type error has a line", func(t *testing.T) {
		path := filepath.Join(dir, "type.yaml")
		writeFile(t, path, "logLevel: debug\njson: sometimes\n")

		_, err := LoadConfigFile(path)
		var cfgErr *ConfigError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, 2, cfgErr.Line)
		assert.Contains(t, cfgErr.Message, "cannot unmarshal")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfigFile(filepath.Join(dir, "missing.yaml"))
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})
}

func TestLoadAll_Precedence(t *testing.T) {
	globalDir, workDir := setupConfigTest(t)

	writeFile(t, filepath.Join(globalDir, "config.yaml"), "logLevel: info\nlogFormat: json\nenvPrefix: GLOBAL_\njson: true\n")
	writeFile(t, filepath.Join(workDir, ".typedstorerc.yaml"), "logLevel: debug\njson: false\n")
	t.Setenv(EnvEnvPrefix, "ENV_")

	cfg, err := LoadAll("")
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, SourceLocal, cfg.Sources[KeyLogLevel])

	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, SourceGlobal, cfg.Sources[KeyLogFormat])

	assert.False(t, cfg.JSON)
	assert.Equal(t, SourceLocal, cfg.Sources[KeyJSON])

	assert.Equal(t, "ENV_", cfg.EnvPrefix)
	assert.Equal(t, SourceEnv, cfg.Sources[KeyEnvPrefix])

	assert.Equal(t, SourceDefault, cfg.Sources[KeyKeyPattern])
}

func TestLoadAll_ExplicitFile(t *testing.T) {
	_, workDir := setupConfigTest(t)
	writeFile(t, filepath.Join(workDir, ".typedstorerc.yaml"), "logLevel: debug\n")

	explicit := filepath.Join(t.TempDir(), "ci.yaml")
	writeFile(t, explicit, "logLevel: error\nkeyPattern: \"ui.*\"\n")

	cfg, err := LoadAll(explicit)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, SourceFile, cfg.Sources[KeyLogLevel])
	assert.Equal(t, "ui.*", cfg.KeyPattern)
	assert.Equal(t, explicit, cfg.ConfigFile)

	t.Setenv(EnvConfig, explicit)
	cfg, err = LoadAll("")
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, SourceEnv, cfg.Sources[KeyConfigFile])

	_, err = LoadAll(filepath.Join(workDir, "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadAll_MalformedLocal(t *testing.T) {
	_, workDir := setupConfigTest(t)
	writeFile(t, filepath.Join(workDir, ".typedstorerc.yaml"), "logLevel: [\n")

	_, err := LoadAll("")
	var cfgErr *ConfigError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestReadEnvConfig(t *testing.T) {
	setupConfigTest(t)
	t.Setenv(EnvJSON, "false")
	t.Setenv(EnvLogFormat, "json")

	cfg, err := ReadEnvConfig()
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{KeyJSON: true, KeyLogFormat: true}, cfg.SetFields)
	assert.Equal(t, "json", cfg.LogFormat)

	t.Setenv(EnvJSON, "maybe")
	_, err = ReadEnvConfig()
	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "environment", cfgErr.Path)
}

func TestLoadEnvConfig(t *testing.T) {
	setupConfigTest(t)
	t.Setenv(EnvJSON, "true")

	cfg := NewDefault()
	require.NoError(t, LoadEnvConfig(cfg))
	assert.True(t, cfg.JSON)
	assert.Equal(t, SourceEnv, cfg.Sources[KeyJSON])
}

// chdirForTest mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	oldwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldwd); err != nil {
			t.Fatal(err)
		}
	})
}
