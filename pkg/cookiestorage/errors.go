package cookiestorage

import "fmt"

// SchemaError is returned by Set when a value fails the schema bound to
// its key.
type SchemaError struct {
	Key     string
	Pattern string
	Err     error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("cookie %q does not match schema for %q: %v", e.Key, e.Pattern, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }
