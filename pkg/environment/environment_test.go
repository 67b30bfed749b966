package environment

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/typedstore/pkg/value"
)

func setupEnvTest(t *testing.T) {
	t.Helper()
	t.Setenv("someTrue", "true")
	t.Setenv("someFalse", "false")
	t.Setenv("someZero", "0")
	t.Setenv("someOne", "1")
	t.Setenv("someString", "x1x2")
}

func TestGet(t *testing.T) {
	assert.Equal(t, "typedstore_unset_variable", Get("typedstore_unset_variable"))

	t.Setenv("someValue", "Rocking these bells")
	assert.Equal(t, "Rocking these bells", Get("someValue"))

	t.Setenv("someValue", "010")
	assert.Equal(t, "010", Get("someValue"))

	t.Setenv("someValue", "")
	assert.Equal(t, "", Get("someValue"), "set but empty is not unset")
}

func TestLookup_Default(t *testing.T) {
	assert.True(t, Lookup("typedstore_unset_number", value.Number(10)).Equal(value.Number(10)))
	assert.True(t, Lookup("typedstore_unset_null", value.Null(), TypeNumber).IsNull())

	t.Setenv("someString", "025.09808000")
	assert.True(t, Lookup("someString", value.String("010")).Equal(value.String("025.09808000")))

	t.Setenv("someNumber", "025.09808000")
	assert.True(t, Lookup("someNumber", value.Number(10)).Equal(value.Number(25.09808)))

	t.Setenv("raw", "anything")
	assert.True(t, Lookup("raw", value.Null()).Equal(value.String("anything")), "a null default infers no type")
}

func TestLookup_InferredBoolean(t *testing.T) {
	setupEnvTest(t)

	tests := []struct {
		name string
		def  bool
		want bool
	}{
		{"someTrue", false, true},
		{"someFalse", true, false},
		{"someZero", true, false},
		{"someOne", false, true},
		{"someString", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Lookup(tt.name, value.Bool(tt.def))
			assert.True(t, got.Equal(value.Bool(tt.want)), "got %s", got)
		})
	}
}

func TestLookup_Candidates(t *testing.T) {
	setupEnvTest(t)

	tests := []struct {
		name  string
		def   value.Value
		types []Type
		want  value.Value
	}{
		{"someTrue", value.Number(10), []Type{TypeBoolean, TypeNumber}, value.Bool(true)},
		{"someFalse", value.Number(10), []Type{TypeBoolean, TypeNumber}, value.Bool(false)},
		{"someZero", value.Bool(true), []Type{TypeBoolean, TypeNumber}, value.Number(0)},
		{"someOne", value.Bool(false), []Type{TypeBoolean, TypeNumber}, value.Number(1)},
		{"someString", value.Bool(false), []Type{TypeBoolean, TypeNumber}, value.Bool(false)},

		{"someTrue", value.String("10"), []Type{TypeBoolean, TypeString}, value.Bool(true)},
		{"someFalse", value.String("10"), []Type{TypeBoolean, TypeString}, value.Bool(false)},
		{"someZero", value.Bool(true), []Type{TypeBoolean, TypeString}, value.String("0")},
		{"someOne", value.Bool(false), []Type{TypeBoolean, TypeString}, value.String("1")},

		{"someTrue", value.Number(10), []Type{TypeNumber, TypeString}, value.String("true")},
		{"someFalse", value.Number(10), []Type{TypeNumber, TypeString}, value.String("false")},
		{"someZero", value.String("true"), []Type{TypeNumber, TypeString}, value.Number(0)},
		{"someOne", value.String("false"), []Type{TypeNumber, TypeString}, value.Number(1)},

		{"someTrue", value.Number(10), []Type{TypeBoolean, TypeNumber, TypeString}, value.Bool(true)},
		{"someFalse", value.Number(10), []Type{TypeBoolean, TypeNumber, TypeString}, value.Bool(false)},
		{"someZero", value.Bool(true), []Type{TypeBoolean, TypeNumber, TypeString}, value.Number(0)},
		{"someOne", value.Bool(false), []Type{TypeBoolean, TypeNumber, TypeString}, value.Number(1)},
		{"someString", value.Number(10), []Type{TypeBoolean, TypeNumber, TypeString}, value.String("x1x2")},

		{"someOne", value.Null(), []Type{TypeString, TypeNumber}, value.String("1")},
	}

	for _, tt := range tests {
		t.Run(tt.name+"_"+typeNames(tt.types), func(t *testing.T) {
			got := Lookup(tt.name, tt.def, tt.types...)
			assert.True(t, got.Equal(tt.want), "got %s, want %s", got, tt.want)
		})
	}
}

func TestLookup_NumberFallsBackToNaN(t *testing.T) {
	t.Setenv("notNumber", "twelve")

	n, ok := Lookup("notNumber", value.Number(1)).AsNumber()
	require.True(t, ok)
	assert.True(t, math.IsNaN(n))
}

func TestLookup_BooleanIgnoresCase(t *testing.T) {
	t.Setenv("shouty", "TRUE")
	assert.True(t, Lookup("shouty", value.Bool(false)).Equal(value.Bool(true)))

	t.Setenv("shouty", "False")
	assert.True(t, Lookup("shouty", value.Bool(true)).Equal(value.Bool(false)))
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"", 0, true},
		{"   ", 0, true},
		{"42", 42, true},
		{" 42 ", 42, true},
		{"-1.5", -1.5, true},
		{"+.5", 0.5, true},
		{"5.", 5, true},
		{"1e3", 1000, true},
		{"1E-2", 0.01, true},
		{"025.09808000", 25.09808, true},
		{"0x1F", 31, true},
		{"0o17", 15, true},
		{"0b101", 5, true},
		{"Infinity", math.Inf(1), true},
		{"-Infinity", math.Inf(-1), true},
		{"1e400", math.Inf(1), true},
		{"0x", 0, false},
		{"0x-1", 0, false},
		{"-0x1", 0, false},
		{"inf", 0, false},
		{"NaN", 0, false},
		{"1_000", 0, false},
		{"12px", 0, false},
		{".", 0, false},
		{"e5", 0, false},
		{"true", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseNumber(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestTypedHelpers(t *testing.T) {
	assert.Equal(t, "fallback", String("typedstore_unset_string", "fallback"))
	assert.Equal(t, 8080.0, Number("typedstore_unset_port", 8080))
	assert.True(t, Bool("typedstore_unset_flag", true))

	t.Setenv("PORT", "0x50")
	t.Setenv("DEBUG", "1")
	t.Setenv("NAME", "0")
	assert.Equal(t, 80.0, Number("PORT", 8080))
	assert.True(t, Bool("DEBUG", false))
	assert.Equal(t, "0", String("NAME", "x"))
}

func TestParseType(t *testing.T) {
	tests := []struct {
		in      string
		want    Type
		wantErr bool
	}{
		{"string", TypeString, false},
		{"Number", TypeNumber, false},
		{" boolean ", TypeBoolean, false},
		{"bool", TypeBoolean, false},
		{"date", TypeString, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseType(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	types, err := ParseTypes("boolean,number,string")
	require.NoError(t, err)
	assert.Equal(t, []Type{TypeBoolean, TypeNumber, TypeString}, types)

	types, err = ParseTypes("")
	require.NoError(t, err)
	assert.Nil(t, types)

	_, err = ParseTypes("number,nope")
	assert.Error(t, err)

	assert.Equal(t, "boolean", TypeBoolean.String())
}

func TestParse(t *testing.T) {
	type settings struct {
		Host    string        `env:"HOST" envDefault:"localhost"`
		Port    int           `env:"PORT"`
		Debug   bool          `env:"DEBUG"`
		Timeout time.Duration `env:"TIMEOUT"`
	}

	t.Setenv("APP_PORT", "9000")
	t.Setenv("APP_DEBUG", "true")
	t.Setenv("APP_TIMEOUT", "5s")

	var s settings
	require.NoError(t, Parse(&s, "APP_"))
	assert.Equal(t, "localhost", s.Host)
	assert.Equal(t, 9000, s.Port)
	assert.True(t, s.Debug)
	assert.Equal(t, 5*time.Second, s.Timeout)

	t.Setenv("APP_PORT", "not-a-port")
	err := Parse(&s, "APP_")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env")

	assert.Error(t, Parse(s, "APP_"), "target must be a pointer")
}

func typeNames(types []Type) string {
	out := ""
	for i, t := range types {
		if i > 0 {
			out += ","
		}
		out += t.String()
	}
	return out
}
