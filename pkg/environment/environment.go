package environment

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/getmockd/typedstore/pkg/value"
)

// Type is a candidate type for coercing a variable.
type Type int

// Candidate types.
const (
	TypeString Type = iota
	TypeNumber
	TypeBoolean
)

func (t Type) String() string {
	switch t {
	case TypeNumber:
		return "number"
	case TypeBoolean:
		return "boolean"
	default:
		return "string"
	}
}

// ParseType parses "string", "number" or "boolean", case-insensitively.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "string":
		return TypeString, nil
	case "number":
		return TypeNumber, nil
	case "boolean", "bool":
		return TypeBoolean, nil
	}
	return TypeString, fmt.Errorf("unknown type %q (want string, number or boolean)", s)
}

// ParseTypes parses a comma separated list of types, e.g. "boolean,number".
func ParseTypes(list string) ([]Type, error) {
	if strings.TrimSpace(list) == "" {
		return nil, nil
	}
	var types []Type
	for _, part := range strings.Split(list, ",") {
		t, err := ParseType(part)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}

var lower = cases.Lower(language.Und)

// Get returns the value of the named variable, or name itself when the
// variable is unset.
func Get(name string) string {
	if raw, ok := os.LookupEnv(name); ok {
		return raw
	}
	return name
}

// Lookup returns the named variable coerced to one of types. An unset
// variable yields def unchanged.
//
// Without explicit types the candidate is inferred from def: a boolean,
// number or string default asks for that type, a null default for none.
// Candidates are tried in order and the first match wins. A number matches
// a clean numeric literal, a boolean matches "true" or "false" in any case
// and a string always matches. When nothing matched, a boolean candidate
// falls back to the numeric truthiness of the text, a number candidate to
// NaN, and otherwise the raw text is returned.
func Lookup(name string, def value.Value, types ...Type) value.Value {
	raw, ok := os.LookupEnv(name)
	if !ok {
		return def
	}
	if len(types) == 0 {
		types = inferTypes(def)
	}
	return coerce(raw, types)
}

func inferTypes(def value.Value) []Type {
	switch def.Kind() {
	case value.KindBool:
		return []Type{TypeBoolean}
	case value.KindNumber:
		return []Type{TypeNumber}
	case value.KindString:
		return []Type{TypeString}
	}
	return nil
}

func coerce(raw string, types []Type) value.Value {
	var wantBool, wantNumber bool
	for _, t := range types {
		switch t {
		case TypeNumber:
			wantNumber = true
			if n, ok := parseNumber(raw); ok {
				return value.Number(n)
			}
		case TypeBoolean:
			wantBool = true
			switch lower.String(raw) {
			case "true":
				return value.Bool(true)
			case "false":
				return value.Bool(false)
			}
		default:
			return value.String(raw)
		}
	}

	switch {
	case wantBool:
		n, ok := parseNumber(raw)
		return value.Bool(ok && n != 0)
	case wantNumber:
		return value.Number(math.NaN())
	}
	return value.String(raw)
}

// String returns the named variable, or def when it is unset.
func String(name, def string) string {
	s, _ := Lookup(name, value.String(def)).AsString()
	return s
}

// Number returns the named variable as a number, or def when it is unset.
// Text that is not a numeric literal yields NaN.
func Number(name string, def float64) float64 {
	n, _ := Lookup(name, value.Number(def)).AsNumber()
	return n
}

// Bool returns the named variable as a boolean, or def when it is unset.
// Text other than "true" or "false" is read for its numeric truthiness.
func Bool(name string, def bool) bool {
	b, _ := Lookup(name, value.Bool(def)).AsBool()
	return b
}

// Parse fills the struct pointed to by target from environment variables
// named by its `env` tags, each prefixed with prefix.
func Parse(target any, prefix string) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: prefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
