package token

import (
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, claims Claims) string {
	t.Helper()

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	return raw
}

func TestDecodeReadsClaims(t *testing.T) {
	raw := signedToken(t, Claims{
		ID:      "7",
		UserRef: "u7",
		Email:   "a@b.com",
		Role:    "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Unix(9999999999, 0)),
		},
	})

	claims, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if claims.ID != "7" || claims.UserRef != "u7" || claims.Email != "a@b.com" || claims.Role != "admin" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.Expired(time.Now()) {
		t.Fatal("expected future exp to be unexpired")
	}
}

func TestDecodeMalformed(t *testing.T) {
	cases := []string{
		"",
		"not-a-token",
		"a.b",
		"a.%%%.c",
		"x." + base64.RawURLEncoding.EncodeToString([]byte("not json")) + ".y",
	}
	for _, raw := range cases {
		if _, err := Decode(raw); !errors.Is(err, ErrMalformedToken) {
			t.Fatalf("Decode(%q): expected ErrMalformedToken, got %v", raw, err)
		}
	}
}

func TestExpiredBoundary(t *testing.T) {
	now := time.Unix(1700000000, 0)

	past := Claims{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(-time.Second))}}
	if !past.Expired(now) {
		t.Fatal("past exp must be expired")
	}

	// Expiry at exactly now counts as expired.
	exact := Claims{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now)}}
	if !exact.Expired(now) {
		t.Fatal("exp equal to now must be expired")
	}

	future := Claims{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(time.Second))}}
	if future.Expired(now) {
		t.Fatal("future exp must not be expired")
	}
}

func TestExpiredWithoutExp(t *testing.T) {
	var nilClaims *Claims
	if !nilClaims.Expired(time.Now()) {
		t.Fatal("nil claims must be expired")
	}
	if !(&Claims{}).Expired(time.Now()) {
		t.Fatal("claims without exp must be expired")
	}
}
