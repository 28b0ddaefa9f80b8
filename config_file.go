package authkit

import (
	"time"

	"github.com/spf13/viper"
)

// RedisSettings holds the connection parameters for a Redis-backed storage
// surface, loaded alongside the engine config by [LoadConfigFile]. An empty
// Addr means no Redis backend is configured.
type RedisSettings struct {
	Addr     string `mapstructure:"AUTHKIT_REDIS_ADDR"`
	Password string `mapstructure:"AUTHKIT_REDIS_PASSWORD"`
	DB       int    `mapstructure:"AUTHKIT_REDIS_DB"`
}

type fileSettings struct {
	SecretKey       string `mapstructure:"AUTHKIT_SECRET_KEY"`
	RedisPrefix     string `mapstructure:"AUTHKIT_REDIS_PREFIX"`
	MigrateLegacy   bool   `mapstructure:"AUTHKIT_MIGRATE_LEGACY"`
	MonitorEnabled  bool   `mapstructure:"AUTHKIT_MONITOR_ENABLED"`
	MonitorInterval string `mapstructure:"AUTHKIT_MONITOR_INTERVAL"`
	WatchStorage    bool   `mapstructure:"AUTHKIT_WATCH_STORAGE"`
	LandingRoute    string `mapstructure:"AUTHKIT_LANDING_ROUTE"`
	DashboardRoute  string `mapstructure:"AUTHKIT_DASHBOARD_ROUTE"`
	AuditEnabled    bool   `mapstructure:"AUTHKIT_AUDIT_ENABLED"`
	AuditBufferSize int    `mapstructure:"AUTHKIT_AUDIT_BUFFER"`
	MetricsEnabled  bool   `mapstructure:"AUTHKIT_METRICS_ENABLED"`
	RedisSettings   `mapstructure:",squash"`
}

// LoadConfigFile reads an optional .env-style config file and the process
// environment into a [Config] plus the Redis connection settings. Settings
// not present keep the built-in defaults; a missing file is not an error.
//
// LoadConfigFile may return an error when input validation, dependency calls, or security checks fail.
// LoadConfigFile does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func LoadConfigFile(path string) (Config, RedisSettings, error) {
	cfg := defaultConfig()

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("env")
		_ = v.ReadInConfig() // missing file keeps defaults
	}
	v.AutomaticEnv()

	v.SetDefault("AUTHKIT_SECRET_KEY", cfg.Codec.SecretKey)
	v.SetDefault("AUTHKIT_REDIS_PREFIX", cfg.Session.RedisPrefix)
	v.SetDefault("AUTHKIT_MIGRATE_LEGACY", cfg.Session.MigrateLegacy)
	v.SetDefault("AUTHKIT_MONITOR_ENABLED", cfg.Monitor.Enabled)
	v.SetDefault("AUTHKIT_MONITOR_INTERVAL", cfg.Monitor.Interval.String())
	v.SetDefault("AUTHKIT_WATCH_STORAGE", cfg.Monitor.WatchStorage)
	v.SetDefault("AUTHKIT_LANDING_ROUTE", cfg.Guard.LandingRoute)
	v.SetDefault("AUTHKIT_DASHBOARD_ROUTE", cfg.Guard.DashboardRoute)
	v.SetDefault("AUTHKIT_AUDIT_ENABLED", cfg.Audit.Enabled)
	v.SetDefault("AUTHKIT_AUDIT_BUFFER", cfg.Audit.BufferSize)
	v.SetDefault("AUTHKIT_METRICS_ENABLED", cfg.Metrics.Enabled)
	v.SetDefault("AUTHKIT_REDIS_ADDR", "")
	v.SetDefault("AUTHKIT_REDIS_PASSWORD", "")
	v.SetDefault("AUTHKIT_REDIS_DB", 0)

	var fs fileSettings
	if err := v.Unmarshal(&fs); err != nil {
		return Config{}, RedisSettings{}, err
	}

	cfg.Codec.SecretKey = fs.SecretKey
	cfg.Session.RedisPrefix = fs.RedisPrefix
	cfg.Session.MigrateLegacy = fs.MigrateLegacy
	cfg.Monitor.Enabled = fs.MonitorEnabled
	cfg.Monitor.WatchStorage = fs.WatchStorage
	cfg.Guard.LandingRoute = fs.LandingRoute
	cfg.Guard.DashboardRoute = fs.DashboardRoute
	cfg.Audit.Enabled = fs.AuditEnabled
	cfg.Audit.BufferSize = fs.AuditBufferSize
	cfg.Metrics.Enabled = fs.MetricsEnabled

	if d, err := time.ParseDuration(fs.MonitorInterval); err == nil && d > 0 {
		cfg.Monitor.Interval = d
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, RedisSettings{}, err
	}

	return cfg, fs.RedisSettings, nil
}
