package session

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"hash/fnv"
)

const (
	tokenChecksumLen = 16
	dataChecksumLen  = 20
)

// ErrIntegrityIncomplete is returned by [Store.Verify] when the token, a
// checksum, or a profile field required for verification is missing.
var ErrIntegrityIncomplete = errors.New("session: integrity state incomplete")

// ErrTokenChecksumMismatch is returned when the stored token no longer
// matches its stored checksum.
var ErrTokenChecksumMismatch = errors.New("session: token checksum mismatch")

// ErrDataChecksumMismatch is returned when the persisted profile no longer
// matches its stored checksum.
var ErrDataChecksumMismatch = errors.New("session: data checksum mismatch")

// TokenChecksum derives the tamper-evidence fingerprint of a token. It is
// deterministic and fast; it is not a cryptographic digest and is not a
// security guarantee.
//
// TokenChecksum may return an error when input validation, dependency calls, or security checks fail.
// TokenChecksum does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func TokenChecksum(tok string) string {
	return fingerprint(tok, tokenChecksumLen)
}

// DataChecksum derives the fingerprint of the denormalized profile tuple,
// computed over its JSON serialization in fixed field order.
//
// DataChecksum may return an error when input validation, dependency calls, or security checks fail.
// DataChecksum does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func DataChecksum(p Profile) string {
	data, err := json.Marshal(p)
	if err != nil {
		// Profile is a flat struct of strings; Marshal cannot fail on it.
		return ""
	}
	return fingerprint(string(data), dataChecksumLen)
}

// fingerprint is the shared digest: an FNV-1a fold of the whole input,
// prefixed to the byte-reversed input, base64-encoded and truncated. The
// fold occupies the first base64 characters, so the truncated result still
// changes when any byte of the input changes; truncating the reversed
// text alone would keep only the input's tail.
func fingerprint(s string, n int) string {
	h := fnv.New64a()
	h.Write([]byte(s))
	buf := h.Sum(make([]byte, 0, 8+len(s)))
	buf = append(buf, reverse(s)...)
	return truncate(base64.StdEncoding.EncodeToString(buf), n)
}

// Verify recomputes both checksums from the persisted values and compares
// them with the stored ones. It returns nil only when every required field
// is present and both checksums agree; any other state is reported with a
// sentinel error.
//
// Verify may return an error when input validation, dependency calls, or security checks fail.
// Verify does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Store) Verify() error {
	snap := s.ReadSnapshot()

	if snap.Token == "" || snap.TokenChecksum == "" || snap.DataChecksum == "" {
		return ErrIntegrityIncomplete
	}
	if TokenChecksum(snap.Token) != snap.TokenChecksum {
		return ErrTokenChecksumMismatch
	}
	if DataChecksum(snap.Profile) != snap.DataChecksum {
		return ErrDataChecksumMismatch
	}
	return nil
}

// QuickCheck compares only the token against its stored checksum. It is the
// cheap self-check used on every token read; Verify is the full check the
// monitor runs.
//
// QuickCheck may return an error when input validation, dependency calls, or security checks fail.
// QuickCheck does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Store) QuickCheck() error {
	tok := s.GetField(KeyToken)
	sum := s.GetField(KeyTokenChecksum)
	if tok == "" || sum == "" {
		return ErrIntegrityIncomplete
	}
	if TokenChecksum(tok) != sum {
		return ErrTokenChecksumMismatch
	}
	return nil
}

func reverse(s string) []byte {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return b
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
