package codec

import (
	"encoding/base64"
	"errors"
	"fmt"
)

// ErrMalformedValue is returned by [Codec.Decode] when the stored text is not
// a value this codec produced.
var ErrMalformedValue = errors.New("codec: malformed stored value")

// ErrEmptyKey is returned by [New] when the obfuscation key is empty.
var ErrEmptyKey = errors.New("codec: empty key")

// DefaultKey is the product obfuscation key. It ships inside the client and
// therefore provides no confidentiality; see the package note on [Codec].
const DefaultKey = "PowerGym2024SecretKey!@#$"

// Codec obfuscates session values before they reach persistent client
// storage. The scheme is a byte-wise XOR against a fixed repeating key,
// represented as base64 text. XOR is self-inverse, so decode is the same
// transform run after the text layer is stripped.
//
// This is tamper-evidence for casual inspection, NOT a security boundary:
// the key is embedded in shipped code and recoverable by any motivated
// client-side attacker. Secrets that need real confidentiality must never
// be stored through this codec.
type Codec struct {
	key []byte
}

// New returns a [Codec] using the given repeating key.
//
// New may return an error when input validation, dependency calls, or security checks fail.
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New(key string) (*Codec, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}
	return &Codec{key: []byte(key)}, nil
}

// Default returns a [Codec] using [DefaultKey].
func Default() *Codec {
	c, _ := New(DefaultKey)
	return c
}

// Encode obfuscates plain text into storable text. Empty input encodes to
// the empty string, matching the absent-value convention of the store.
//
// Encode may return an error when input validation, dependency calls, or security checks fail.
// Encode does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Codec) Encode(plain string) string {
	if plain == "" {
		return ""
	}
	return base64.StdEncoding.EncodeToString(c.xor([]byte(plain)))
}

// Decode reverses [Codec.Encode]. Malformed input returns an error wrapping
// [ErrMalformedValue]; callers treat decode failure as value-absent and must
// never surface it to the user.
//
// Decode may return an error when input validation, dependency calls, or security checks fail.
// Decode does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Codec) Decode(stored string) (string, error) {
	if stored == "" {
		return "", nil
	}
	raw, err := base64.StdEncoding.DecodeString(stored)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedValue, err)
	}
	return string(c.xor(raw)), nil
}

func (c *Codec) xor(data []byte) []byte {
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = b ^ c.key[i%len(c.key)]
	}
	return out
}
