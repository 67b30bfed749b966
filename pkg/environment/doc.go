// Package environment reads process environment variables as typed values.
//
// Get mirrors a plain lookup that falls back to the variable's own name.
// Lookup coerces the text to a number, boolean or string, either inferred
// from the default or from an explicit ordered list of candidate types:
//
//	port := environment.Number("PORT", 8080)
//	debug := environment.Lookup("DEBUG", value.Null(), environment.TypeBoolean, environment.TypeString)
//
// Parse loads a whole struct through `env` tags.
package environment
