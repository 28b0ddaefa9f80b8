package storage

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) (*Redis, func()) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	st := NewRedis(rdb, "ak-test", nil)

	return st, func() {
		_ = rdb.Close()
		mr.Close()
	}
}

func TestRedisRoundTrip(t *testing.T) {
	st, done := newTestRedis(t)
	defer done()

	st.Set("token", "value")
	if v, ok := st.Get("token"); !ok || v != "value" {
		t.Fatalf("Get: got %q ok=%v", v, ok)
	}

	if _, ok := st.Get("missing"); ok {
		t.Fatal("expected miss for absent key")
	}

	st.Remove("token")
	if _, ok := st.Get("token"); ok {
		t.Fatal("expected key removed")
	}
}

func TestRedisKeysAndClear(t *testing.T) {
	st, done := newTestRedis(t)
	defer done()

	st.Set("Role", "ADMIN")
	st.Set("correo", "a@b.com")

	keys := st.Keys()
	if len(keys) != 2 {
		t.Fatalf("expected 2 keys, got %v", keys)
	}
	for _, k := range keys {
		if k != "Role" && k != "correo" {
			t.Fatalf("unexpected key %q (prefix not stripped?)", k)
		}
	}

	st.Clear()
	if len(st.Keys()) != 0 {
		t.Fatal("expected empty namespace after Clear")
	}
}

func TestRedisDegradesWhenBackendGone(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	st := NewRedis(rdb, "ak-test", nil)
	mr.Close()

	// Contract: no panics, no errors surfaced — empty reads, dropped writes.
	st.Set("token", "x")
	if v, ok := st.Get("token"); ok || v != "" {
		t.Fatalf("expected degraded empty read, got %q ok=%v", v, ok)
	}
	st.Clear()
	_ = st.Keys()
	_ = rdb.Close()
}
