// Package session persists the authenticated user's session fields through
// the obfuscation codec and maintains the tamper-evidence checksums the
// integrity monitor verifies.
//
// The session is either fully present (token, profile, both checksums) or
// treated as absent; partial state fails verification. It is created whole
// by login, never patched, and destroyed whole by logout, tampering, or
// expiry discovery.
package session
