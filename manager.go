package authkit

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/powergym/authkit/session"
	"github.com/powergym/authkit/storage"
	"github.com/powergym/authkit/token"
)

// Manager is the central session authority. It owns the persisted session
// through its [session.Store], performs credential verification through the
// injected [HTTPClient], and reacts to integrity violations detected by its
// own reads or by the background monitor.
//
// A Manager is safe for concurrent use. All collaborators are injected at
// construction through [Builder]; the manager holds no process-global
// state.
type Manager struct {
	cfg       Config
	store     *session.Store
	client    HTTPClient
	notifier  Notifier
	navigator Navigator
	audit     *auditDispatcher
	metrics   *Metrics
	log       *zap.Logger

	mu       sync.Mutex
	role     string
	appReady bool
	menuOpen bool

	monitor *monitor
}

// Login verifies credentials against the backend and, on structural
// success, replaces the persisted session atomically: the previous session
// is cleared first, then the token, the denormalized profile, and both
// checksums are written. The in-memory role is set from the response with
// case normalized to upper. On any failure no session state is mutated.
//
// Login may return an error when input validation, dependency calls, or security checks fail.
// Login does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Manager) Login(ctx context.Context, creds Credentials) (*SessionInfo, error) {
	if m == nil || m.client == nil {
		return nil, ErrManagerNotReady
	}

	resp, err := m.client.Login(ctx, creds)
	if err != nil {
		m.metrics.Inc(MetricLoginFailure)
		m.emitAudit(ctx, AuditEvent{
			Timestamp: time.Now(),
			EventType: auditEventLoginFailure,
			Reason:    err.Error(),
		})
		m.notifier.Notify(NoticeError, "Error", "No se pudo conectar con el servidor")
		m.log.Warn("login request failed", zap.Error(err))
		return nil, ErrLoginFailed
	}

	if resp == nil || resp.Status != "success" || resp.Data.Token == "" {
		m.metrics.Inc(MetricLoginFailure)
		msg := "Credenciales incorrectas"
		if resp != nil && resp.Message != "" {
			msg = resp.Message
		}
		m.emitAudit(ctx, AuditEvent{
			Timestamp: time.Now(),
			EventType: auditEventLoginFailure,
			Reason:    msg,
		})
		m.notifier.Notify(NoticeError, "Error", msg)
		return nil, ErrLoginRejected
	}

	role := strings.ToUpper(resp.Data.User.Role)
	profile := session.Profile{
		Role:    role,
		UserID:  resp.Data.User.ID,
		UserRef: resp.Data.User.UserRef,
		Name:    resp.Data.User.Name,
		Email:   resp.Data.User.Email,
	}

	m.store.ClearSession()
	m.store.WriteSession(resp.Data.Token, profile)

	m.mu.Lock()
	m.role = role
	m.appReady = true
	m.mu.Unlock()

	m.metrics.Inc(MetricLoginSuccess)
	m.emitAudit(ctx, AuditEvent{
		Timestamp: time.Now(),
		EventType: auditEventLoginSuccess,
		Success:   true,
		Metadata:  map[string]string{"role": role},
	})
	m.notifier.Notify(NoticeSuccess, "¡Bienvenido!", "Sesión iniciada correctamente")
	m.log.Info("login succeeded", zap.String("role", role))

	return &SessionInfo{
		UserID:  profile.UserID,
		UserRef: profile.UserRef,
		Name:    profile.Name,
		Email:   profile.Email,
		Role:    role,
	}, nil
}

// Logout ends the session voluntarily: session keys are removed (unrelated
// application state survives), the in-memory role resets, the session-ended
// notice is raised, and the user is routed to the landing page. Logout is
// idempotent; calling it without an active session performs the same
// cleanup.
//
// Logout may return an error when input validation, dependency calls, or security checks fail.
// Logout does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Manager) Logout() {
	if m == nil {
		return
	}

	m.store.ClearSession()

	m.mu.Lock()
	m.role = ""
	m.mu.Unlock()

	m.metrics.Inc(MetricLogout)
	m.emitAudit(context.Background(), AuditEvent{
		Timestamp: time.Now(),
		EventType: auditEventLogout,
		Success:   true,
	})
	m.notifier.Notify(NoticeWarning, "Sesión expirada", "Tu sesión ha expirado. Por favor, inicia sesión nuevamente.")
	m.navigator.Navigate(m.cfg.Guard.LandingRoute, false)
	m.log.Info("session closed")
}

// ForceLogout ends the session as the response to a detected security
// violation. It clears the session keys, records a raw security-block
// timestamp, emits a violation event, routes to landing with history
// replacement so back-navigation cannot return to protected state, and
// raises the blocking security alert.
//
// ForceLogout may return an error when input validation, dependency calls, or security checks fail.
// ForceLogout does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Manager) ForceLogout(reason string) {
	if m == nil {
		return
	}

	now := time.Now()
	m.store.ClearSession()
	m.store.MarkSecurityBlock(now)

	m.mu.Lock()
	m.role = ""
	m.mu.Unlock()

	m.metrics.Inc(MetricForcedLogout)
	m.emitAudit(context.Background(), AuditEvent{
		ID:        uuid.NewString(),
		Timestamp: now,
		EventType: auditEventSecurityViolation,
		Reason:    reason,
		UserAgent: m.cfg.Monitor.UserAgent,
		Location:  m.navigator.Location(),
	})
	m.log.Warn("forced logout", zap.String("reason", reason))

	m.navigator.Navigate(m.cfg.Guard.LandingRoute, true)
	m.notifier.SecurityAlert(
		"Sesión cerrada por seguridad",
		"Se detectó una modificación no autorizada en tu sesión. Por favor, inicia sesión nuevamente.",
	)
}

// IsAuthenticated reports whether a verified, unexpired session exists.
// The check is active, not a passive read: a failed integrity verification
// triggers [Manager.ForceLogout] and an expired token triggers
// [Manager.Logout] as side effects of asking.
//
// IsAuthenticated may return an error when input validation, dependency calls, or security checks fail.
// IsAuthenticated does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Manager) IsAuthenticated() bool {
	if m == nil {
		return false
	}
	if _, disabled := m.store.Storage().(storage.Disabled); disabled {
		return false
	}

	tok := m.GetToken()
	if tok == "" {
		return false
	}

	if err := m.store.Verify(); err != nil {
		m.metrics.Inc(MetricIntegrityFailure)
		m.ForceLogout("integrity verification failed: " + err.Error())
		return false
	}

	claims, err := token.Decode(tok)
	if err != nil || claims.Expired(time.Now()) {
		m.metrics.Inc(MetricTokenExpired)
		m.Logout()
		return false
	}

	return true
}

// GetToken returns the stored token after a cheap token-checksum
// self-check. A mismatch triggers [Manager.ForceLogout] and returns empty;
// an absent token or checksum simply returns empty.
//
// GetToken may return an error when input validation, dependency calls, or security checks fail.
// GetToken does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Manager) GetToken() string {
	if m == nil {
		return ""
	}

	tok := m.store.GetField(session.KeyToken)
	if tok == "" {
		return ""
	}

	if err := m.store.QuickCheck(); err != nil {
		m.metrics.Inc(MetricQuickCheckFailure)
		m.ForceLogout("token checksum mismatch")
		return ""
	}
	return tok
}

// DecodeToken decodes the stored token's claims without verifying its
// signature. Returns nil when no token is stored or it is malformed.
func (m *Manager) DecodeToken() *token.Claims {
	tok := m.GetToken()
	if tok == "" {
		return nil
	}
	claims, err := token.Decode(tok)
	if err != nil {
		return nil
	}
	return claims
}

// IsTokenExpired reports whether the stored token is absent, undecodable,
// or carries an exp at or before now.
//
// IsTokenExpired may return an error when input validation, dependency calls, or security checks fail.
// IsTokenExpired does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Manager) IsTokenExpired() bool {
	claims := m.DecodeToken()
	if claims == nil {
		return true
	}
	return claims.Expired(time.Now())
}

// GetUserRole resolves the current role, preferring the token claims over
// the persisted copy, normalized to upper case. Returns empty when neither
// source has a role.
//
// GetUserRole may return an error when input validation, dependency calls, or security checks fail.
// GetUserRole does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Manager) GetUserRole() string {
	if claims := m.DecodeToken(); claims != nil && claims.Role != "" {
		return strings.ToUpper(claims.Role)
	}
	if stored := m.store.GetField(session.KeyRole); stored != "" {
		return strings.ToUpper(stored)
	}
	return ""
}

// GetUserID returns the numeric user identifier, preferring the token
// claims over the persisted copy; 0 when absent or non-numeric.
func (m *Manager) GetUserID() int {
	raw := ""
	if claims := m.DecodeToken(); claims != nil && claims.ID != "" {
		raw = claims.ID
	} else {
		raw = m.store.GetField(session.KeyUserID)
	}
	if raw == "" {
		return 0
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return id
}

// GetUser returns the user reference, preferring the token claims over the
// persisted copy; "0" when absent.
func (m *Manager) GetUser() string {
	if claims := m.DecodeToken(); claims != nil && claims.UserRef != "" {
		return claims.UserRef
	}
	if ref := m.store.GetField(session.KeyUserRef); ref != "" {
		return ref
	}
	return "0"
}

// GetUserName returns the stored display name, "Usuario" when absent. The
// name is not carried in the token claims, so only the persisted copy
// exists.
func (m *Manager) GetUserName() string {
	if name := m.store.GetField(session.KeyName); name != "" {
		return name
	}
	return "Usuario"
}

// GetUserEmail returns the email, preferring the token claims over the
// persisted copy; empty when absent.
func (m *Manager) GetUserEmail() string {
	if claims := m.DecodeToken(); claims != nil && claims.Email != "" {
		return claims.Email
	}
	return m.store.GetField(session.KeyEmail)
}

// HasRole reports whether the current role matches any of the given roles,
// case-insensitively. An empty current role matches nothing.
//
// HasRole may return an error when input validation, dependency calls, or security checks fail.
// HasRole does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Manager) HasRole(roles ...string) bool {
	current := m.GetUserRole()
	if current == "" {
		return false
	}
	for _, role := range roles {
		if strings.EqualFold(current, role) {
			return true
		}
	}
	return false
}

// RedirectTo routes to the given path without history replacement.
func (m *Manager) RedirectTo(path string) {
	m.navigator.Navigate(path, false)
}

// SetRole overrides the in-memory role used by UI-level checks. The
// persisted role is untouched.
func (m *Manager) SetRole(role string) {
	m.mu.Lock()
	m.role = strings.ToUpper(role)
	m.mu.Unlock()
}

// GetRole returns the in-memory role set by [Manager.SetRole] or by login.
func (m *Manager) GetRole() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.role
}

// IsAppReady reports whether initialization resolved an existing session or
// a login has completed since construction.
func (m *Manager) IsAppReady() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.appReady
}

// SetMenuOpen records the shared navigation-menu state.
func (m *Manager) SetMenuOpen(open bool) {
	m.mu.Lock()
	m.menuOpen = open
	m.mu.Unlock()
}

// MenuOpen returns the shared navigation-menu state.
func (m *Manager) MenuOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.menuOpen
}

// VerifyIntegrity runs the full checksum verification without side effects
// and returns the verdict. Callers that want the violation reaction use
// [Manager.IsAuthenticated] instead.
//
// VerifyIntegrity may return an error when input validation, dependency calls, or security checks fail.
// VerifyIntegrity does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Manager) VerifyIntegrity() error {
	return m.store.Verify()
}

// HandleUnauthorized reacts to a 401 backend response: it records the
// event, notifies once, and performs a voluntary logout. Transport
// middleware calls this; application code rarely needs to.
//
// HandleUnauthorized may return an error when input validation, dependency calls, or security checks fail.
// HandleUnauthorized does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Manager) HandleUnauthorized() {
	if m == nil {
		return
	}
	m.metrics.Inc(MetricUnauthorizedResponse)
	m.emitAudit(context.Background(), AuditEvent{
		Timestamp: time.Now(),
		EventType: auditEventUnauthorized,
		Reason:    ErrUnauthorizedResponse.Error(),
	})
	m.log.Info("unauthorized response, closing session")
	m.Logout()
}

// Notify forwards an application notification through the configured
// notifier.
func (m *Manager) Notify(kind NoticeKind, title, message string) {
	m.notifier.Notify(kind, title, message)
}

// NotifyTableResult reports the outcome of a data-table operation with the
// standard wording.
//
// NotifyTableResult may return an error when input validation, dependency calls, or security checks fail.
// NotifyTableResult does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Manager) NotifyTableResult(ok bool, action string) {
	if ok {
		m.notifier.Notify(NoticeSuccess, "Éxito", "Se completó la operación: "+action)
		return
	}
	m.notifier.Notify(NoticeError, "Error", "No se pudo completar la operación: "+action)
}

// Store exposes the session store for support tooling and middleware.
func (m *Manager) Store() *session.Store {
	return m.store
}

// Metrics exposes the counter set, nil-safe to read when disabled.
func (m *Manager) Metrics() *Metrics {
	return m.metrics
}

// AuditDropped reports how many audit events were discarded under
// backpressure since construction.
func (m *Manager) AuditDropped() uint64 {
	return m.audit.Dropped()
}

// Close stops the background monitor and drains the audit dispatcher. The
// manager must not be used after Close returns.
//
// Close may return an error when input validation, dependency calls, or security checks fail.
// Close does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Manager) Close() {
	if m == nil {
		return
	}
	m.monitor.Close()
	m.audit.Close()
}

func (m *Manager) emitAudit(ctx context.Context, event AuditEvent) {
	m.audit.Emit(ctx, event)
}

// initializeAuth resolves session state once during construction: a stored,
// decodable, unexpired token promotes its role into memory. Expired or
// malformed tokens are left for the first authenticated read to clean up.
func (m *Manager) initializeAuth() {
	tok := m.store.GetField(session.KeyToken)
	if tok != "" {
		if claims, err := token.Decode(tok); err == nil && !claims.Expired(time.Now()) && claims.Role != "" {
			m.mu.Lock()
			m.role = strings.ToUpper(claims.Role)
			m.mu.Unlock()
		}
	}

	m.mu.Lock()
	m.appReady = true
	m.mu.Unlock()
}
