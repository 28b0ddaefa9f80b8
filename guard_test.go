package authkit

import (
	"testing"
	"time"

	"github.com/powergym/authkit/session"
)

func newGuardEnv(t *testing.T) (*Guard, *testEnv) {
	t.Helper()
	env := newTestManager(t, nil)
	return NewGuard(env.mgr, env.mgr.cfg.Guard), env
}

func TestGuardPublicRouteAnonymous(t *testing.T) {
	guard, _ := newGuardEnv(t)

	for _, path := range []string{"/", "/web", "/login"} {
		if d := guard.CanActivate(Route{Path: path}); !d.Allow {
			t.Fatalf("anonymous visit to %s denied: %+v", path, d)
		}
	}
}

func TestGuardPublicRouteAuthenticatedRedirectsToDashboard(t *testing.T) {
	guard, env := newGuardEnv(t)
	loginTestUser(t, env, signedToken(t, "admin", time.Now().Add(time.Hour)))

	d := guard.CanActivate(Route{Path: "/login"})
	if d.Allow {
		t.Fatal("authenticated user allowed on login page")
	}
	if d.RedirectTo != "/dashboard" {
		t.Fatalf("expected redirect to /dashboard, got %q", d.RedirectTo)
	}
}

func TestGuardProtectedRouteAnonymousRedirectsToLanding(t *testing.T) {
	guard, _ := newGuardEnv(t)

	d := guard.CanActivate(Route{Path: "/dashboard"})
	if d.Allow {
		t.Fatal("anonymous user allowed on protected route")
	}
	if d.RedirectTo != "/web" {
		t.Fatalf("expected redirect to /web, got %q", d.RedirectTo)
	}
}

func TestGuardProtectedRouteAuthenticated(t *testing.T) {
	guard, env := newGuardEnv(t)
	loginTestUser(t, env, signedToken(t, "usuario", time.Now().Add(time.Hour)))

	if d := guard.CanActivate(Route{Path: "/dashboard"}); !d.Allow {
		t.Fatalf("authenticated user denied: %+v", d)
	}
}

func TestGuardRoleRequirement(t *testing.T) {
	guard, env := newGuardEnv(t)
	loginTestUser(t, env, signedToken(t, "usuario", time.Now().Add(time.Hour)))

	d := guard.CanActivate(Route{Path: "/admin/usuarios", RequiredRole: RoleAdmin})
	if d.Allow {
		t.Fatal("USUARIO allowed on ADMIN route")
	}
	if d.RedirectTo != "/dashboard" {
		t.Fatalf("role denial must redirect to dashboard, got %q", d.RedirectTo)
	}

	if d := guard.CanActivate(Route{Path: "/rutinas", RequiredRole: "usuario"}); !d.Allow {
		t.Fatalf("case-insensitive role requirement denied: %+v", d)
	}
}

func TestGuardGeneralRoleMeansAnyAuthenticated(t *testing.T) {
	guard, env := newGuardEnv(t)
	loginTestUser(t, env, signedToken(t, "usuario", time.Now().Add(time.Hour)))

	if d := guard.CanActivate(Route{Path: "/perfil", RequiredRole: RoleGeneral}); !d.Allow {
		t.Fatalf("GENERAL requirement denied an authenticated user: %+v", d)
	}
}

func TestGuardTamperedSessionForcesLogoutAndDenies(t *testing.T) {
	guard, env := newGuardEnv(t)
	loginTestUser(t, env, signedToken(t, "admin", time.Now().Add(time.Hour)))

	env.store.Set(session.KeyDataChecksum, "forged")

	d := guard.CanActivate(Route{Path: "/dashboard"})
	if d.Allow {
		t.Fatal("tampered session allowed through guard")
	}
	if d.RedirectTo != "/web" {
		t.Fatalf("expected redirect to landing, got %q", d.RedirectTo)
	}
	if env.notifier.alertCount() != 1 {
		t.Fatal("guard evaluation must surface the violation")
	}
}

func TestGuardExpiredSessionDenies(t *testing.T) {
	guard, env := newGuardEnv(t)
	loginTestUser(t, env, signedToken(t, "admin", time.Now().Add(-time.Minute)))

	d := guard.CanActivate(Route{Path: "/dashboard"})
	if d.Allow {
		t.Fatal("expired session allowed through guard")
	}
	if env.notifier.alertCount() != 0 {
		t.Fatal("expiry is not a violation")
	}
}

func TestGuardMetrics(t *testing.T) {
	guard, env := newGuardEnv(t)

	guard.CanActivate(Route{Path: "/"})          // allowed
	guard.CanActivate(Route{Path: "/dashboard"}) // denied

	if got := env.mgr.Metrics().Value(MetricGuardAllowed); got != 1 {
		t.Fatalf("expected 1 allowed metric, got %d", got)
	}
	if got := env.mgr.Metrics().Value(MetricGuardDenied); got != 1 {
		t.Fatalf("expected 1 denied metric, got %d", got)
	}
}
