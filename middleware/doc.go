// Package middleware exposes the HTTP transport adapter that attaches the
// managed session to outgoing backend requests.
//
// # Transport
//
//   - [Transport] — an http.RoundTripper that injects the bearer token on
//     every request except the login path and reacts to 401 responses by
//     ending the session through the manager.
//
// # Architecture boundaries
//
// This package translates HTTP transport semantics into Manager calls. It
// does NOT implement session logic itself — token reads go through
// Manager.GetToken so the checksum self-check applies to every request.
//
// # What this package must NOT do
//
//   - Cache tokens between requests (each request re-reads the store).
//   - Retry a request after a 401 (the session is gone; the caller sees
//     the original response).
//   - Attach credentials to the login request itself.
package middleware
