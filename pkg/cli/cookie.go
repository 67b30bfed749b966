package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getmockd/typedstore/pkg/cli/internal/output"
	"github.com/getmockd/typedstore/pkg/cookies"
	"github.com/getmockd/typedstore/pkg/cookiestorage"
	"github.com/getmockd/typedstore/pkg/value"
)

var cookieKey string

// CookieRow is one cookie in the output of `cookie decode`.
type CookieRow struct {
	Name  string       `json:"name"`
	Typed bool         `json:"typed"`
	Kind  string       `json:"kind,omitempty"`
	Value *value.Value `json:"value,omitempty"`
	Raw   string       `json:"raw"`
}

var cookieCmd = &cobra.Command{
	Use:   "cookie",
	Short: "Inspect cookies written by the cookie storage adapter",
}

var cookieDecodeCmd = &cobra.Command{
	Use:   "decode HEADER",
	Short: "Show the typed values held in a Cookie header",
	Long: `Parse the value of a Cookie request header and show every cookie.
Cookies holding a typed envelope are shown with their kind and value;
other cookies are shown raw.`,
	Example: `  typedstore cookie decode 'theme=%7B%22value%22%3A%22dark%22%7D; sid=abc'
  typedstore cookie decode "$COOKIE" --key 'ui.*'`,
	Args: cobra.ExactArgs(1),
	RunE: runCookieDecode,
}

func init() {
	cookieDecodeCmd.Flags().StringVar(&cookieKey, "key", "", "Only show cookies whose name matches this glob")
	cookieCmd.AddCommand(cookieDecodeCmd)
	rootCmd.AddCommand(cookieCmd)
}

func runCookieDecode(cmd *cobra.Command, args []string) error {
	pattern := cfg.KeyPattern
	if cmd.Flags().Changed("key") {
		pattern = cookieKey
	}

	jar := cookies.ParseHeader(args[0], cookies.WithLogger(logger))
	store := cookiestorage.New(jar, cookiestorage.WithLogger(logger))
	names, err := store.Keys(pattern)
	if err != nil {
		return err
	}

	rows := make([]CookieRow, 0, len(names))
	for _, name := range names {
		raw, _ := jar.GetRaw(name)
		row := CookieRow{Name: name, Raw: raw}
		if v, ok := store.Get(name); ok {
			row.Typed = true
			row.Kind = v.Kind().String()
			row.Value = &v
		}
		rows = append(rows, row)
	}
	logger.Debug("cookie header decoded", "cookies", jar.Len(), "shown", len(rows))
	if len(rows) == 0 && pattern != "" {
		output.Warn(cmd.ErrOrStderr(), "no cookie matches %q", pattern)
	}

	w := cmd.OutOrStdout()
	if jsonOutput {
		return output.JSON(w, rows)
	}

	tw := output.Table(w)
	fmt.Fprintln(tw, "NAME\tKIND\tVALUE")
	for _, row := range rows {
		if row.Typed {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", row.Name, row.Kind, row.Value.String())
		} else {
			fmt.Fprintf(tw, "%s\t-\t%s\n", row.Name, row.Raw)
		}
	}
	return tw.Flush()
}
