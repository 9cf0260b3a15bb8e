// Package normalize canonicalizes loosely-typed component values so they can
// be tested for equality.
//
// Rules:
//   - nil, typed nil pointers and NaN floats normalize to the empty string
//   - strings are trimmed of surrounding whitespace; case is preserved
//   - every numeric type normalizes to float64, so 1 and 1.0 are equal
//   - maps normalize value by value; equality does not depend on key order
//   - slices normalize element by element and keep their order
//
// Normalization never mutates its input. Callers keep the raw value for
// display and use IsEmpty to decide when to print EmptyMarker instead.
package normalize
