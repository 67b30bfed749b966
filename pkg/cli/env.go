package cli

import (
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/getmockd/typedstore/pkg/cli/internal/flags"
	"github.com/getmockd/typedstore/pkg/cli/internal/output"
	"github.com/getmockd/typedstore/pkg/environment"
	"github.com/getmockd/typedstore/pkg/value"
)

var (
	envDefault string
	envTypes   flags.StringSlice
)

// EnvOutput is the JSON form of `env get`.
type EnvOutput struct {
	Name  string      `json:"name"`
	Set   bool        `json:"set"`
	Kind  string      `json:"kind"`
	Value value.Value `json:"value"`
}

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Read environment variables as typed values",
}

var envGetCmd = &cobra.Command{
	Use:   "get NAME",
	Short: "Read an environment variable, coercing it to a number, boolean or string",
	Long: `Read an environment variable.

Without --default or --type the raw text is printed, or NAME itself when the
variable is unset. With --default (a JSON value) an unset variable yields
the default and a set one is coerced to the default's type. --type lists
the candidate types explicitly; they are tried in order and the first match
wins.`,
	Example: `  typedstore env get PORT --default 8080
  typedstore env get DEBUG --default false
  typedstore env get FLAG --type boolean,number,string`,
	Args: cobra.ExactArgs(1),
	RunE: runEnvGet,
}

func init() {
	envGetCmd.Flags().StringVar(&envDefault, "default", "", "Default value as JSON, e.g. 10, true or '\"text\"'")
	envGetCmd.Flags().Var(&envTypes, "type", "Candidate types in order: number, boolean, string (repeatable)")

	envCmd.AddCommand(envGetCmd)
	rootCmd.AddCommand(envCmd)
}

func runEnvGet(cmd *cobra.Command, args []string) error {
	name := cfg.EnvPrefix + args[0]
	_, set := os.LookupEnv(name)

	types := make([]environment.Type, 0, len(envTypes))
	for _, s := range envTypes {
		t, err := environment.ParseType(s)
		if err != nil {
			return err
		}
		types = append(types, t)
	}

	var result value.Value
	switch {
	case cmd.Flags().Changed("default"):
		def, err := value.Parse(envDefault)
		if err != nil {
			return fmt.Errorf("--default: %w", err)
		}
		result = environment.Lookup(name, def, types...)
	case len(types) > 0:
		result = environment.Lookup(name, value.Null(), types...)
	default:
		result = value.String(environment.Get(name))
	}
	logger.Debug("environment variable read", "name", name, "set", set, "kind", result.Kind().String())

	w := cmd.OutOrStdout()
	if jsonOutput {
		return output.JSON(w, EnvOutput{Name: name, Set: set, Kind: result.Kind().String(), Value: result})
	}
	if s, ok := result.AsString(); ok {
		fmt.Fprintln(w, s)
		return nil
	}
	fmt.Fprintln(w, formatText(result))
	return nil
}

// formatText renders a non-string result as JSON text, except that
// non-finite numbers, which JSON writes as null, print as NaN or Infinity.
func formatText(v value.Value) string {
	n, ok := v.AsNumber()
	switch {
	case !ok:
		return v.String()
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	}
	return v.String()
}
