// Package registry provides artifact registry implementations.
//
// Implementations:
//   - file: params/performance JSON documents under a run directory
//   - redis: the same documents stored as Redis keys
//   - memory: in-memory for testing
package registry
