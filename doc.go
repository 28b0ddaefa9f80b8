// Package authkit provides the client-side session authority for the
// PowerGym applications: obfuscated session persistence, checksum-based
// tamper evidence, a background integrity monitor, role-aware route
// guarding, and bearer-token transport middleware.
//
// The package is designed for embedding in a hosting UI shell: Manager
// methods are safe to call from multiple goroutines after initialization
// through [Builder.Build].
//
// # Architecture boundaries
//
// authkit is the public surface. It exposes [Manager], [Builder], [Guard],
// [Config], and value types (SessionInfo, AuditEvent, MetricsSnapshot).
// The persistence mechanics — obfuscation codec, storage surfaces, field
// checksums, token decoding — live in the codec, storage, session, and
// token sub-packages.
//
// # What this package must NOT do
//
//   - Verify token signatures. The backend verifies every request; the
//     client only reads claims for role resolution and expiry discovery.
//   - Treat the obfuscation codec or the checksums as cryptography. They
//     are tamper evidence against casual storage edits, nothing more.
//   - Return storage errors to callers. The storage surface mirrors the
//     localStorage contract: unavailable backends degrade to empty reads
//     and silent writes.
//
// # Violation contract
//
// Every tamper detection path — checksum verification, sensitive-field
// mutation, sensor signals — converges on [Manager.ForceLogout]: session
// keys cleared, a raw security-block timestamp recorded, history-replacing
// navigation to the landing route, and a blocking security alert.
package authkit
