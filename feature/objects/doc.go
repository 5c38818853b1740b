// Package objects implements the bucket-scoped object facade.
//
// The Store wraps a storage.Client with a uniform operation surface: upload
// (with content-type detection and public URLs), download, delete,
// existence checks, server-side copy, prefix listing and batch deletes.
// All operations default to the configured bucket and accept a per-call
// WithBucket override.
//
// # Error Model
//
// Client failures are classified into typed sentinel errors (ErrNotFound,
// ErrAuthFailed, ErrUnreachable) so callers can tell an absent object apart
// from a failed request. Unknown failures pass through wrapped.
//
// # Verification Semantics
//
// Delete re-queries existence after the backend call and only reports
// success once the key is gone; deleting an absent key therefore succeeds.
// Copy verifies the destination exists after the server-side copy.
//
// # Components
//
//   - Store: The facade itself, constructed via dependency injection.
//   - Recorder: Optional gorm-backed audit trail of mutating operations.
//   - Handler: Fiber HTTP endpoints over the Store.
//   - Feature: Registers the handler with the application loader.
package objects
