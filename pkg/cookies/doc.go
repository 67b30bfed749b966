// Package cookies is an in-memory cookie jar with change notification.
//
// A Jar reads like a browser cookie store: values that hold JSON objects or
// arrays come back parsed, everything else as a string. Every Set and
// Remove is reported to change listeners and queued as a Set-Cookie header
// for WriteTo:
//
//	jar := cookies.FromRequest(r)
//	_ = jar.Set("prefs", map[string]any{"theme": "dark"}, &cookies.Options{Path: "/"})
//	jar.WriteTo(w)
package cookies
