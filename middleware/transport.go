package middleware

import (
	"net/http"
	"strings"

	authkit "github.com/powergym/authkit"
)

// Transport is an [http.RoundTripper] that authenticates outgoing requests
// with the managed session's bearer token. Requests to the login path are
// sent untouched. A 401 response triggers the manager's unauthorized
// handling before the response is returned to the caller.
type Transport struct {
	Manager *authkit.Manager

	// Base is the underlying round tripper; nil means
	// http.DefaultTransport.
	Base http.RoundTripper

	// LoginPath marks the one endpoint that must not carry a bearer
	// token. Matched as a path suffix so it works with and without an API
	// prefix. Empty means "/login".
	LoginPath string
}

// NewTransport describes the newtransport operation and its observable behavior.
//
// NewTransport may return an error when input validation, dependency calls, or security checks fail.
// NewTransport does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewTransport(mgr *authkit.Manager) *Transport {
	return &Transport{Manager: mgr}
}

// RoundTrip describes the roundtrip operation and its observable behavior.
//
// RoundTrip may return an error when input validation, dependency calls, or security checks fail.
// RoundTrip does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	out := req
	if !t.isLogin(req.URL.Path) {
		if tok := t.Manager.GetToken(); tok != "" {
			// Per RoundTripper contract the request must not be mutated.
			out = req.Clone(req.Context())
			out.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := base.RoundTrip(out)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && !t.isLogin(req.URL.Path) {
		t.Manager.HandleUnauthorized()
	}

	return resp, nil
}

func (t *Transport) isLogin(path string) bool {
	login := t.LoginPath
	if login == "" {
		login = "/login"
	}
	return strings.HasSuffix(path, login)
}
