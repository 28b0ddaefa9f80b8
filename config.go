package authkit

import (
	"errors"
	"time"

	"github.com/powergym/authkit/codec"
)

// Config defines a public type used by authkit APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Codec   CodecConfig
	Session SessionConfig
	Monitor MonitorConfig
	Guard   GuardConfig
	Audit   AuditConfig
	Metrics MetricsConfig
}

/*
====================================
CODEC CONFIG
====================================
*/

// CodecConfig defines a public type used by authkit APIs.
//
// CodecConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CodecConfig struct {
	SecretKey string
}

/*
====================================
SESSION CONFIG
====================================
*/

// SessionConfig defines a public type used by authkit APIs.
//
// SessionConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SessionConfig struct {
	RedisPrefix   string
	MigrateLegacy bool
}

/*
====================================
MONITOR CONFIG
====================================
*/

// MonitorConfig defines a public type used by authkit APIs.
//
// MonitorConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MonitorConfig struct {
	Enabled      bool
	Interval     time.Duration
	WatchStorage bool
	UserAgent    string
}

/*
====================================
GUARD CONFIG
====================================
*/

// GuardConfig defines a public type used by authkit APIs.
//
// GuardConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type GuardConfig struct {
	PublicRoutes   []string
	LandingRoute   string
	DashboardRoute string
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditConfig defines a public type used by authkit APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig defines a public type used by authkit APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled bool
}

func defaultConfig() Config {
	return Config{
		Codec: CodecConfig{
			SecretKey: codec.DefaultKey,
		},
		Session: SessionConfig{
			RedisPrefix:   "ak",
			MigrateLegacy: true,
		},
		Monitor: MonitorConfig{
			Enabled:      true,
			Interval:     5 * time.Second,
			WatchStorage: true,
		},
		Guard: GuardConfig{
			PublicRoutes:   []string{"/", "/web", "/login"},
			LandingRoute:   "/web",
			DashboardRoute: "/dashboard",
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: false,
		},
	}
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.Guard.PublicRoutes = append([]string(nil), cfg.Guard.PublicRoutes...)
	return out
}

func validateConfig(cfg Config) error {
	if cfg.Codec.SecretKey == "" {
		return errors.New("codec secret key must not be empty")
	}
	if cfg.Monitor.Enabled && cfg.Monitor.Interval <= 0 {
		return errors.New("monitor interval must be positive")
	}
	if cfg.Guard.LandingRoute == "" || cfg.Guard.DashboardRoute == "" {
		return errors.New("guard routes must not be empty")
	}
	if cfg.Audit.Enabled && cfg.Audit.BufferSize <= 0 {
		return errors.New("audit buffer size must be positive")
	}
	return nil
}
