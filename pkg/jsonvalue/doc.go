// Package jsonvalue decodes loosely typed JSON returned by the Hookbase API.
//
// Several API fields are stored in SQLite and come back in whatever shape the
// column happened to hold: booleans as 0/1, objects as JSON-encoded strings,
// free-form property bags with mixed value types. Instead of per-field
// converters the package offers one tagged union, Value, and a handful of
// wrapper types built on it.
//
// # Coercion rules
//
// These apply everywhere in the package:
//
//   - Bool: JSON true/false; numbers are true when non-zero; strings
//     "true"/"false" (any case) or anything parsing as a number.
//   - Number: JSON numbers; strings that parse as a float.
//   - String: JSON strings verbatim; any other kind falls back to its raw
//     JSON text (null becomes "").
//   - Object: JSON objects; strings containing a JSON object are parsed once.
//
// Anything a rule does not cover is a coercion failure reported through the
// boolean result of the accessor, never a panic.
package jsonvalue
