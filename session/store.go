package session

import (
	"strconv"
	"time"

	"github.com/powergym/authkit/codec"
	"github.com/powergym/authkit/storage"
)

// Store persists session fields through the obfuscation codec. Every write
// passes through [codec.Codec.Encode] before reaching the storage surface
// and every read through the inverse; a value that fails to decode reads as
// absent. The store inherits the storage contract: operations on an
// unavailable surface are silent no-ops.
type Store struct {
	storage storage.Storage
	codec   *codec.Codec
}

// NewStore creates a [Store] over the given surface and codec. A nil surface
// degrades to [storage.Disabled].
//
// NewStore may return an error when input validation, dependency calls, or security checks fail.
// NewStore does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewStore(st storage.Storage, c *codec.Codec) *Store {
	if st == nil {
		st = storage.Disabled{}
	}
	if c == nil {
		c = codec.Default()
	}
	return &Store{storage: st, codec: c}
}

// Storage exposes the underlying surface for watcher registration.
func (s *Store) Storage() storage.Storage {
	return s.storage
}

// SetField obfuscates and persists one session field. Empty values are not
// written.
//
// SetField may return an error when input validation, dependency calls, or security checks fail.
// SetField does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Store) SetField(key, value string) {
	if value == "" {
		return
	}
	s.storage.Set(key, s.codec.Encode(value))
}

// GetField reads and decodes one session field. Absent keys and values that
// fail to decode both read as empty.
//
// GetField may return an error when input validation, dependency calls, or security checks fail.
// GetField does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Store) GetField(key string) string {
	stored, ok := s.storage.Get(key)
	if !ok {
		return ""
	}
	plain, err := s.codec.Decode(stored)
	if err != nil {
		return ""
	}
	return plain
}

// RemoveField deletes one key from the surface.
func (s *Store) RemoveField(key string) {
	s.storage.Remove(key)
}

// WriteSession persists the full session: token, the denormalized profile,
// and both checksums derived from those exact values. The role is persisted
// as given; callers normalize case before writing.
//
// WriteSession may return an error when input validation, dependency calls, or security checks fail.
// WriteSession does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Store) WriteSession(tok string, p Profile) {
	s.SetField(KeyToken, tok)
	s.SetField(KeyRole, p.Role)
	s.SetField(KeyUserID, p.UserID)
	s.SetField(KeyUserRef, p.UserRef)
	s.SetField(KeyName, p.Name)
	s.SetField(KeyEmail, p.Email)
	s.SetField(KeyTokenChecksum, TokenChecksum(tok))
	s.SetField(KeyDataChecksum, DataChecksum(p))
}

// ReadProfile reads the persisted denormalized profile.
func (s *Store) ReadProfile() Profile {
	return Profile{
		Role:    s.GetField(KeyRole),
		UserID:  s.GetField(KeyUserID),
		UserRef: s.GetField(KeyUserRef),
		Name:    s.GetField(KeyName),
		Email:   s.GetField(KeyEmail),
	}
}

// ReadSnapshot reads the full persisted session.
func (s *Store) ReadSnapshot() Snapshot {
	return Snapshot{
		Token:         s.GetField(KeyToken),
		Profile:       s.ReadProfile(),
		TokenChecksum: s.GetField(KeyTokenChecksum),
		DataChecksum:  s.GetField(KeyDataChecksum),
	}
}

// ClearSession removes exactly the enumerated session keys, leaving
// unrelated application state alone. Broader clearing is [Store.ClearAll],
// a deliberately separate operation.
//
// ClearSession may return an error when input validation, dependency calls, or security checks fail.
// ClearSession does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Store) ClearSession() {
	for _, key := range SessionKeys {
		s.storage.Remove(key)
	}
}

// ClearAll wipes the entire storage surface, session-related or not.
func (s *Store) ClearAll() {
	s.storage.Clear()
}

// MarkSecurityBlock records the forced-logout timestamp. The value is
// intentionally raw so a support tool can read it without the codec.
func (s *Store) MarkSecurityBlock(now time.Time) {
	s.storage.Set(KeySecurityBlock, strconv.FormatInt(now.UnixMilli(), 10))
}

// MigrateLegacy re-encodes session values written before the codec was
// introduced and drops values that are neither decodable nor plausible
// plaintext. Runs once during initialization.
//
// MigrateLegacy may return an error when input validation, dependency calls, or security checks fail.
// MigrateLegacy does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Store) MigrateLegacy() {
	for _, key := range SessionKeys {
		if key == KeySecurityBlock {
			continue
		}
		stored, ok := s.storage.Get(key)
		if !ok || stored == "" {
			continue
		}
		if _, err := s.codec.Decode(stored); err == nil {
			continue
		}
		// Pre-codec plaintext: rewrite through the codec.
		s.storage.Remove(key)
		s.SetField(key, stored)
	}
}
