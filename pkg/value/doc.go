// Package value defines the stored-value domain shared by the typed storage
// adapters and the envelope codec used to hand values to untyped hosts.
//
// A Value is a closed union:
//
//   - null
//   - boolean
//   - number (float64)
//   - string
//   - array of Values
//   - object mapping unique string keys to Values
//
// Before a value reaches a host store it is wrapped in an envelope,
// {"value": <value>}, so its shape can be recovered on read:
//
//	raw, err := value.Encode(value.Array(value.Number(1), value.Null()))
//	// raw == `{"value":[1,null]}`
//	v, found, err := value.Decode(raw)
//
// Hosts that serialize on their own (the cookie jar) receive the envelope as
// plain Go data through Wrap and give it back to Unwrap.
//
// Schemas compiled with CompileSchema can be bound to keys by the adapters to
// reject values of the wrong shape before they are written.
package value
