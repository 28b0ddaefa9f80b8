package authkit

import (
	"context"
	"time"
)

// Role labels resolved from the token payload, case-normalized to upper
// case at every read site.
const (
	// RoleAdmin is an exported constant or variable used by the session manager.
	RoleAdmin = "ADMIN"
	// RoleNutritionist is an exported constant or variable used by the session manager.
	RoleNutritionist = "NUTRICIONISTA"
	// RoleUser is an exported constant or variable used by the session manager.
	RoleUser = "USUARIO"
	// RoleGeneral is an exported constant or variable used by the session manager.
	RoleGeneral = "GENERAL"
)

// Credentials carries the login form values. JSON tags match the backend
// wire format.
type Credentials struct {
	Email    string `json:"correo"`
	Password string `json:"contrasena"`
}

// UserAccount is the user object embedded in a successful login response.
type UserAccount struct {
	ID      string `json:"id"`
	UserRef string `json:"user_id"`
	Name    string `json:"nombre"`
	Email   string `json:"correo"`
	Role    string `json:"rol"`
}

// LoginData is the payload of a successful login response.
type LoginData struct {
	Token string      `json:"token"`
	User  UserAccount `json:"usuario"`
}

// LoginResponse is the full login response envelope. A response is
// structurally successful only when Status is "success" and Data.Token is
// non-empty; any other shape is treated as a rejection.
type LoginResponse struct {
	Status  string    `json:"status"`
	Message string    `json:"message"`
	Data    LoginData `json:"data"`
}

// SessionInfo summarizes the session created by a successful login.
type SessionInfo struct {
	UserID  string
	UserRef string
	Name    string
	Email   string
	Role    string
}

// HTTPClient is the external collaborator that performs credential
// verification. The manager never inspects transport details; it only
// consumes the structural response.
type HTTPClient interface {
	Login(ctx context.Context, creds Credentials) (*LoginResponse, error)
}

// NoticeKind classifies a user-facing notification.
type NoticeKind string

const (
	// NoticeSuccess is an exported constant or variable used by the session manager.
	NoticeSuccess NoticeKind = "success"
	// NoticeError is an exported constant or variable used by the session manager.
	NoticeError NoticeKind = "error"
	// NoticeInfo is an exported constant or variable used by the session manager.
	NoticeInfo NoticeKind = "info"
	// NoticeWarning is an exported constant or variable used by the session manager.
	NoticeWarning NoticeKind = "warning"
)

// Notifier is the toast/dialog collaborator. Notify is fire-and-forget and
// auto-dismissing; SecurityAlert is the blocking modal used for security
// violations, not dismissable by clicking outside.
type Notifier interface {
	Notify(kind NoticeKind, title, message string)
	SecurityAlert(title, message string)
}

// NoopNotifier discards every notification.
type NoopNotifier struct{}

// Notify describes the notify operation and its observable behavior.
func (NoopNotifier) Notify(NoticeKind, string, string) {}

// SecurityAlert describes the securityalert operation and its observable behavior.
func (NoopNotifier) SecurityAlert(string, string) {}

// Navigator is the routing collaborator the manager uses for redirects and
// for the current location recorded in violation events.
type Navigator interface {
	Navigate(path string, replace bool)
	Location() string
}

// NoopNavigator ignores navigation and reports an empty location.
type NoopNavigator struct{}

// Navigate describes the navigate operation and its observable behavior.
func (NoopNavigator) Navigate(string, bool) {}

// Location describes the location operation and its observable behavior.
func (NoopNavigator) Location() string { return "" }

// Scheduler runs a task repeatedly at a fixed interval. The returned stop
// function halts the task deterministically; after it returns, the task is
// never invoked again. Injecting a Scheduler makes the integrity monitor
// testable without wall-clock waits.
type Scheduler interface {
	Every(interval time.Duration, task func()) (stop func())
}

// TamperSensor is the host-environment tamper capability (the browser
// DOM-mutation analog). Implementations report a reason string for each
// detected signal. [NoopSensor] is the default outside a hosting UI.
type TamperSensor interface {
	Start(report func(reason string)) (stop func(), err error)
}

// NoopSensor never reports.
type NoopSensor struct{}

// Start describes the start operation and its observable behavior.
func (NoopSensor) Start(func(string)) (func(), error) {
	return func() {}, nil
}
