// Package flags provides reusable flag types for CLI commands.
package flags

import "strings"

// StringSlice implements pflag.Value for repeatable string flags. Each
// occurrence may itself hold a comma separated list.
type StringSlice []string

// String returns the string representation of the flag value.
func (s *StringSlice) String() string {
	return strings.Join(*s, ",")
}

// Set appends the comma separated values to the slice.
func (s *StringSlice) Set(value string) error {
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*s = append(*s, part)
		}
	}
	return nil
}

// Type specifies the type label for Cobra flags.
func (s *StringSlice) Type() string {
	return "stringSlice"
}

// Reset empties the slice.
func (s *StringSlice) Reset() {
	*s = nil
}
