// Package artifacts holds the artifact bundle of a trained run and the
// store that owns it for the process's lifetime.
//
// The store follows a load-once, read-many contract:
//   - Initialize is called exactly once during startup
//   - Get serves concurrent readers with no locking afterward
package artifacts
