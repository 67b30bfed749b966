package matching

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// ValidateKeyPattern reports whether pattern is a usable key glob.
// The empty pattern is valid and matches every key.
func ValidateKeyPattern(pattern string) error {
	if pattern == "" || doublestar.ValidatePattern(pattern) {
		return nil
	}
	return fmt.Errorf("invalid key pattern %q: %w", pattern, doublestar.ErrBadPattern)
}

// MatchKey checks if key matches the glob pattern. "*" stops at "/",
// "**" crosses it. An empty pattern matches everything and a malformed
// pattern only matches a key equal to it.
func MatchKey(pattern, key string) bool {
	if pattern == "" {
		return true
	}
	ok, err := doublestar.Match(pattern, key)
	if err != nil {
		return pattern == key
	}
	return ok
}

// FilterKeys returns the keys matching pattern, preserving their order.
func FilterKeys(pattern string, keys []string) ([]string, error) {
	if err := ValidateKeyPattern(pattern); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if MatchKey(pattern, k) {
			out = append(out, k)
		}
	}
	return out, nil
}
