// Package dynamics provides amplitude-limiting stages.
//
// Included processors:
//   - SoftCeiling: stateless soft-knee ceiling that leaves everything below
//     -1 dBFS untouched and never exceeds 0.966.
package dynamics
