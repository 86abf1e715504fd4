// Package track owns the keyframe data model and its interpolation.
//
// Ownership boundary:
// - per-track ordered keyframe storage and mutation
// - binary-search row lookup
// - curve-shaped evaluation at fractional rows
package track
