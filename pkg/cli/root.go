package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/getmockd/typedstore/pkg/cliconfig"
	"github.com/getmockd/typedstore/pkg/logging"
)

var (
	// Persistent flags available to all subcommands
	configPath string
	logLevel   string
	logFormat  string
	jsonOutput bool

	// Resolved by the root command before any subcommand runs.
	cfg    *cliconfig.CLIConfig
	logger = logging.Nop()

	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "typedstore",
	Short: "typedstore inspects typed values in environment variables and cookies",
	Long: `typedstore reads and writes the {"value": ...} envelopes used by the
typedstore Web Storage and cookie adapters, and coerces environment
variables to numbers, booleans and strings.

Configuration can be provided via flags, TYPEDSTORE_* environment variables,
a local .typedstorerc.yaml or ~/.config/typedstore/config.yaml.`,
	SilenceUsage:      true,
	SilenceErrors:     true, // We handle errors in Execute()
	PersistentPreRunE: loadConfig,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: .typedstorerc.yaml, then ~/.config/typedstore/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", cliconfig.DefaultLogLevel, "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", cliconfig.DefaultLogFormat, "Log format: text, json")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output command results in JSON format")
}

// loadConfig resolves the layered configuration, applies explicitly set
// flags on top and builds the logger.
func loadConfig(cmd *cobra.Command, _ []string) error {
	loaded, err := cliconfig.LoadAll(configPath)
	if err != nil {
		return err
	}

	flagCfg := &cliconfig.CLIConfig{SetFields: make(map[string]bool)}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		flagCfg.LogLevel = logLevel
		flagCfg.SetFields[cliconfig.KeyLogLevel] = true
	}
	if flags.Changed("log-format") {
		flagCfg.LogFormat = logFormat
		flagCfg.SetFields[cliconfig.KeyLogFormat] = true
	}
	if flags.Changed("json") {
		flagCfg.JSON = jsonOutput
		flagCfg.SetFields[cliconfig.KeyJSON] = true
	}
	if flags.Changed("config") {
		flagCfg.ConfigFile = configPath
		flagCfg.SetFields[cliconfig.KeyConfigFile] = true
	}
	cliconfig.MergeConfig(loaded, flagCfg, cliconfig.SourceFlag)

	if err := loaded.Validate(); err != nil {
		return err
	}

	cfg = loaded
	jsonOutput = loaded.JSON
	logger = logging.New(logging.Config{
		Level:  logging.ParseLevel(loaded.LogLevel),
		Format: logging.ParseFormat(loaded.LogFormat),
		Output: cmd.ErrOrStderr(),
	})
	logger.Debug("configuration loaded", "sources", slog.AnyValue(loaded.Sources))
	return nil
}
