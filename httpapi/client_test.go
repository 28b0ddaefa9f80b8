package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	authkit "github.com/powergym/authkit"
)

func TestLoginDecodesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/login" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}

		var creds authkit.Credentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			t.Errorf("decoding credentials: %v", err)
		}
		if creds.Email != "ana@powergym.mx" {
			t.Errorf("unexpected correo %q", creds.Email)
		}

		json.NewEncoder(w).Encode(authkit.LoginResponse{
			Status: "success",
			Data: authkit.LoginData{
				Token: "tok-123",
				User:  authkit.UserAccount{ID: "7", Role: "ADMIN"},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	resp, err := client.Login(context.Background(), authkit.Credentials{Email: "ana@powergym.mx", Password: "secret"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.Status != "success" || resp.Data.Token != "tok-123" {
		t.Fatalf("unexpected envelope %+v", resp)
	}
}

func TestLoginRejectionEnvelopeIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(authkit.LoginResponse{Status: "error", Message: "Credenciales incorrectas"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	resp, err := client.Login(context.Background(), authkit.Credentials{})
	if err != nil {
		t.Fatalf("rejection envelope must not be a transport error: %v", err)
	}
	if resp.Status != "error" || resp.Message != "Credenciales incorrectas" {
		t.Fatalf("unexpected envelope %+v", resp)
	}
}

func TestLoginGarbageBodyIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	if _, err := client.Login(context.Background(), authkit.Credentials{}); err == nil {
		t.Fatal("expected error for undecodable body")
	}
}

func TestGenericVerbs(t *testing.T) {
	type routine struct {
		Name string `json:"nombre"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(routine{Name: "Pecho y tríceps"})
		case http.MethodPost, http.MethodPut:
			var in routine
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				t.Errorf("decoding body: %v", err)
			}
			json.NewEncoder(w).Encode(in)
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	ctx := context.Background()

	var got routine
	if err := client.Get(ctx, "/rutinas/1", &got); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Name != "Pecho y tríceps" {
		t.Fatalf("unexpected payload %+v", got)
	}

	if err := client.Post(ctx, "/rutinas", routine{Name: "Espalda"}, &got); err != nil {
		t.Fatalf("Post failed: %v", err)
	}
	if got.Name != "Espalda" {
		t.Fatalf("post echo mismatch: %+v", got)
	}

	if err := client.Put(ctx, "/rutinas/1", routine{Name: "Pierna"}, nil); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := client.Delete(ctx, "/rutinas/1", nil); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
}

func TestNonSuccessStatusIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	err := client.Get(context.Background(), "/rutinas", nil)
	if !errors.Is(err, ErrStatus) {
		t.Fatalf("expected ErrStatus, got %v", err)
	}
}
