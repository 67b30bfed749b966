package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/getmockd/typedstore/pkg/cli/internal/output"
	"github.com/getmockd/typedstore/pkg/cliconfig"
)

// ConfigOutput is the JSON form of `config`.
type ConfigOutput struct {
	Config  *cliconfig.CLIConfig `json:"config"`
	Sources map[string]string    `json:"sources"`
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration and where each value came from",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		if jsonOutput {
			return output.JSON(w, ConfigOutput{Config: cfg, Sources: cfg.Sources})
		}

		values := map[string]string{
			cliconfig.KeyLogLevel:   cfg.LogLevel,
			cliconfig.KeyLogFormat:  cfg.LogFormat,
			cliconfig.KeyEnvPrefix:  cfg.EnvPrefix,
			cliconfig.KeyKeyPattern: cfg.KeyPattern,
			cliconfig.KeyJSON:       fmt.Sprint(cfg.JSON),
		}
		if cfg.ConfigFile != "" {
			values[cliconfig.KeyConfigFile] = cfg.ConfigFile
		}
		keys := make([]string, 0, len(values))
		for k := range values {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		tw := output.Table(w)
		fmt.Fprintln(tw, "KEY\tVALUE\tSOURCE")
		for _, k := range keys {
			source := cfg.Sources[k]
			if source == "" {
				source = cliconfig.SourceDefault
			}
			fmt.Fprintf(tw, "%s\t%q\t%s\n", k, values[k], source)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
