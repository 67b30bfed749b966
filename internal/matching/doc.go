// Package matching provides the key glob matching shared by the storage
// adapters and the CLI.
//
// Patterns use doublestar syntax with "/" as the separator: "*" stays inside
// one segment, "**" crosses segments. The empty pattern matches every key.
package matching
