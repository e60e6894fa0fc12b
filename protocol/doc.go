// Package protocol defines the speaker-attributed transcript model and
// the normalization pass that turns raw assembled segments into a
// compact, readable protocol.
//
// A protocol is an ordered sequence of segments. Normalize applies three
// steps in a fixed order: Clean (whitespace), Filter (sub-second noise),
// Squash (consecutive same-speaker merge). The pass is pure and
// idempotent; it never reorders segments across speakers.
package protocol
