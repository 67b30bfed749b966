package value

import (
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Schema constrains the shape of values stored under a key.
type Schema struct {
	source string
	schema *jsonschema.Schema
}

// CompileSchema compiles a JSON Schema (draft 2020-12) document.
func CompileSchema(document string) (*Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	if err := compiler.AddResource("schema.json", strings.NewReader(document)); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}
	compiled, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	return &Schema{source: document, schema: compiled}, nil
}

// MustCompileSchema is CompileSchema that panics on error.
func MustCompileSchema(document string) *Schema {
	s, err := CompileSchema(document)
	if err != nil {
		panic(err)
	}
	return s
}

// Validate checks v against the schema. The returned error, when not nil,
// is a *jsonschema.ValidationError.
func (s *Schema) Validate(v Value) error {
	return s.schema.Validate(v.jsonable())
}

// Source returns the schema document the Schema was compiled from.
func (s *Schema) Source() string { return s.source }
