package authkit

import "strings"

// Route describes a navigation target presented to the guard. RequiredRole
// is the role the route demands; empty or [RoleGeneral] means any
// authenticated user qualifies.
type Route struct {
	Path         string
	RequiredRole string
}

// Decision is the guard verdict for one route evaluation. When Allow is
// false, RedirectTo names the route the caller must navigate to instead.
type Decision struct {
	Allow      bool
	RedirectTo string
}

// Guard evaluates route access against the current session. It layers route
// classification over the manager's active authentication checks, so asking
// the guard can itself force a logout when tampering is discovered.
type Guard struct {
	mgr *Manager
	cfg GuardConfig
}

// NewGuard describes the newguard operation and its observable behavior.
//
// NewGuard may return an error when input validation, dependency calls, or security checks fail.
// NewGuard does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewGuard(mgr *Manager, cfg GuardConfig) *Guard {
	return &Guard{mgr: mgr, cfg: cfg}
}

// Guard returns a guard bound to this manager's configured routes.
//
// Guard may return an error when input validation, dependency calls, or security checks fail.
// Guard does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Manager) Guard() *Guard {
	return NewGuard(m, m.cfg.Guard)
}

// CanActivate evaluates one route. Public routes deny authenticated users
// and redirect them to the dashboard. Protected routes require a verified,
// unexpired session and, when the route names a role, a matching role;
// every denial names the redirect target.
//
// CanActivate may return an error when input validation, dependency calls, or security checks fail.
// CanActivate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (g *Guard) CanActivate(route Route) Decision {
	if g.isPublic(route.Path) {
		if g.mgr.IsAuthenticated() {
			g.mgr.metrics.Inc(MetricGuardDenied)
			return Decision{RedirectTo: g.cfg.DashboardRoute}
		}
		g.mgr.metrics.Inc(MetricGuardAllowed)
		return Decision{Allow: true}
	}

	// IsAuthenticated performs the integrity verification and expiry check,
	// forcing or performing logout on failure as a side effect.
	if !g.mgr.IsAuthenticated() {
		g.mgr.metrics.Inc(MetricGuardDenied)
		return Decision{RedirectTo: g.cfg.LandingRoute}
	}

	required := strings.ToUpper(route.RequiredRole)
	if required != "" && required != RoleGeneral && !g.mgr.HasRole(required) {
		g.mgr.metrics.Inc(MetricGuardDenied)
		return Decision{RedirectTo: g.cfg.DashboardRoute}
	}

	g.mgr.metrics.Inc(MetricGuardAllowed)
	return Decision{Allow: true}
}

func (g *Guard) isPublic(path string) bool {
	for _, route := range g.cfg.PublicRoutes {
		if path == route {
			return true
		}
	}
	return false
}
