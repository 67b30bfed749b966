package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getmockd/typedstore/pkg/cli/internal/output"
	"github.com/getmockd/typedstore/pkg/value"
)

// ErrNoEnvelope is returned by `envelope decode` for JSON that is not an
// envelope.
var ErrNoEnvelope = errors.New("input is not a {\"value\": ...} envelope")

var envelopeCmd = &cobra.Command{
	Use:   "envelope",
	Short: "Encode and decode stored value envelopes",
}

var envelopeEncodeCmd = &cobra.Command{
	Use:     "encode JSON",
	Short:   "Wrap a JSON value in an envelope, as the storage adapters store it",
	Example: `  typedstore envelope encode '[1, "2", false]'`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := value.Parse(args[0])
		if err != nil {
			return err
		}
		raw, err := value.Encode(v)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if jsonOutput {
			return output.JSON(w, map[string]string{"raw": raw})
		}
		fmt.Fprintln(w, raw)
		return nil
	},
}

var envelopeDecodeCmd = &cobra.Command{
	Use:     "decode RAW",
	Short:   "Unwrap the value held in a raw stored envelope",
	Example: `  typedstore envelope decode '{"value":{"theme":"dark"}}'`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, found, err := value.Decode(args[0])
		if err != nil {
			return err
		}
		if !found {
			return ErrNoEnvelope
		}
		w := cmd.OutOrStdout()
		if jsonOutput {
			return output.JSON(w, map[string]any{"kind": v.Kind().String(), "value": v})
		}
		fmt.Fprintln(w, v.String())
		return nil
	},
}

func init() {
	envelopeCmd.AddCommand(envelopeEncodeCmd, envelopeDecodeCmd)
	rootCmd.AddCommand(envelopeCmd)
}
