// Package util provides string sanitization and validation helpers
// shared across the protokoll packages.
package util
