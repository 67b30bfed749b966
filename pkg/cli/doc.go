// Package cli provides the command-line interface for typedstore.
//
// The cli package implements:
//   - env get: read an environment variable as a number, boolean or string
//   - envelope encode/decode: convert between JSON values and stored envelopes
//   - cookie decode: show the typed values in a Cookie header
//   - config: display effective configuration and its sources
//   - version: show typedstore version
package cli
