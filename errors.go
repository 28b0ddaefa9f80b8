package authkit

import "errors"

var (
	// ErrLoginFailed is an exported constant or variable used by the session manager.
	ErrLoginFailed = errors.New("authentication request failed")
	// ErrLoginRejected is an exported constant or variable used by the session manager.
	ErrLoginRejected = errors.New("credentials rejected")
	// ErrNotAuthenticated is an exported constant or variable used by the session manager.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrManagerNotReady is an exported constant or variable used by the session manager.
	ErrManagerNotReady = errors.New("manager not initialized")
	// ErrUnauthorizedResponse is an exported constant or variable used by the session manager.
	ErrUnauthorizedResponse = errors.New("unauthorized response from backend")
)
