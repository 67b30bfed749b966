package webstorage

import "fmt"

// SchemaError is returned when a value written under a key does not satisfy
// the schema bound to that key.
type SchemaError struct {
	Key     string
	Pattern string
	Err     error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("value for %q does not match schema bound to %q: %v", e.Key, e.Pattern, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }
