package value

import (
	"fmt"
	"math/big"

	"github.com/ohler55/ojg/oj"
)

// EnvelopeField is the name of the single field wrapping a stored value.
const EnvelopeField = "value"

var encodeOptions = oj.Options{Sort: true}

// DecodeError is returned when raw host data that should hold an envelope is
// not valid JSON.
type DecodeError struct {
	Raw string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("value: malformed envelope %q: %v", truncate(e.Raw, 64), e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Encode returns the JSON text of v wrapped in an envelope. Object keys are
// written sorted, so equal values always encode to the same text.
func Encode(v Value) (string, error) {
	return marshal(Wrap(v))
}

// Decode unwraps the envelope held in raw. An empty raw string, JSON that is
// not an object and objects without the envelope field all report not found.
// Text that is not JSON at all is a *DecodeError.
func Decode(raw string) (Value, bool, error) {
	if raw == "" {
		return Value{}, false, nil
	}
	var data any
	if err := oj.Unmarshal([]byte(raw), &data); err != nil {
		return Value{}, false, &DecodeError{Raw: raw, Err: err}
	}
	v, ok := Unwrap(data)
	return v, ok, nil
}

// Wrap returns the envelope for v as plain Go data, for hosts that own their
// own serialization.
func Wrap(v Value) map[string]any {
	return map[string]any{EnvelopeField: v.jsonable()}
}

// Unwrap extracts the stored value from an envelope previously produced by
// Wrap and serialized by a host. Anything that is not an envelope reports
// not found.
func Unwrap(data any) (Value, bool) {
	env, ok := data.(map[string]any)
	if !ok {
		return Value{}, false
	}
	inner, ok := env[EnvelopeField]
	if !ok {
		return Value{}, false
	}
	v, err := From(inner)
	if err != nil {
		return Value{}, false
	}
	return v, true
}

// Parse reads JSON text holding a bare (not enveloped) value.
func Parse(text string) (Value, error) {
	var data any
	if err := oj.Unmarshal([]byte(text), &data); err != nil {
		return Value{}, &DecodeError{Raw: text, Err: err}
	}
	return From(data)
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	s, err := marshal(v.jsonable())
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(string(data))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// String returns the compact JSON text of v.
func (v Value) String() string {
	s, err := marshal(v.jsonable())
	if err != nil {
		return fmt.Sprintf("%%!v(%v)", err)
	}
	return s
}

func marshal(data any) (s string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("value: encode: %v", r)
		}
	}()
	return oj.JSON(data, &encodeOptions), nil
}

// numberLike converts the numeric types JSON parsers produce for values
// that do not fit an int64 or float64 literal.
func numberLike(x any) (float64, bool) {
	switch t := x.(type) {
	case interface{ Float64() (float64, error) }:
		f, err := t.Float64()
		return f, err == nil
	case *big.Int:
		f, _ := new(big.Float).SetInt(t).Float64()
		return f, true
	case *big.Float:
		f, _ := t.Float64()
		return f, true
	}
	return 0, false
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
