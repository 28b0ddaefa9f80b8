// Package storage defines the persistent key/value surface the session
// cache is built on, plus three implementations: a shared in-memory surface
// with browsing-context views and change events, a Redis-backed surface for
// cross-process sharing, and a disabled surface for non-hosting execution.
package storage
