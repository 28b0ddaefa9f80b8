package authkit

import (
	"errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/powergym/authkit/codec"
	"github.com/powergym/authkit/session"
	"github.com/powergym/authkit/storage"
)

// Builder defines a public type used by authkit APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config

	store     storage.Storage
	redis     redis.UniversalClient
	client    HTTPClient
	notifier  Notifier
	navigator Navigator
	scheduler Scheduler
	sensor    TamperSensor
	auditSink AuditSink
	log       *zap.Logger

	built bool
}

// New describes the new operation and its observable behavior.
//
// New may return an error when input validation, dependency calls, or security checks fail.
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig describes the withconfig operation and its observable behavior.
//
// WithConfig may return an error when input validation, dependency calls, or security checks fail.
// WithConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithStorage describes the withstorage operation and its observable behavior.
//
// WithStorage may return an error when input validation, dependency calls, or security checks fail.
// WithStorage does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithStorage(st storage.Storage) *Builder {
	b.store = st
	return b
}

// WithRedis describes the withredis operation and its observable behavior.
//
// WithRedis may return an error when input validation, dependency calls, or security checks fail.
// WithRedis does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithHTTPClient describes the withhttpclient operation and its observable behavior.
//
// WithHTTPClient may return an error when input validation, dependency calls, or security checks fail.
// WithHTTPClient does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithHTTPClient(client HTTPClient) *Builder {
	b.client = client
	return b
}

// WithNotifier describes the withnotifier operation and its observable behavior.
//
// WithNotifier may return an error when input validation, dependency calls, or security checks fail.
// WithNotifier does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithNotifier(n Notifier) *Builder {
	b.notifier = n
	return b
}

// WithNavigator describes the withnavigator operation and its observable behavior.
//
// WithNavigator may return an error when input validation, dependency calls, or security checks fail.
// WithNavigator does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithNavigator(nav Navigator) *Builder {
	b.navigator = nav
	return b
}

// WithScheduler describes the withscheduler operation and its observable behavior.
//
// WithScheduler may return an error when input validation, dependency calls, or security checks fail.
// WithScheduler does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithScheduler(s Scheduler) *Builder {
	b.scheduler = s
	return b
}

// WithTamperSensor describes the withtampersensor operation and its observable behavior.
//
// WithTamperSensor may return an error when input validation, dependency calls, or security checks fail.
// WithTamperSensor does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithTamperSensor(s TamperSensor) *Builder {
	b.sensor = s
	return b
}

// WithAuditSink describes the withauditsink operation and its observable behavior.
//
// WithAuditSink may return an error when input validation, dependency calls, or security checks fail.
// WithAuditSink does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	b.config.Audit.Enabled = true
	return b
}

// WithLogger describes the withlogger operation and its observable behavior.
//
// WithLogger may return an error when input validation, dependency calls, or security checks fail.
// WithLogger does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithLogger(log *zap.Logger) *Builder {
	b.log = log
	return b
}

// WithMetricsEnabled describes the withmetricsenabled operation and its observable behavior.
//
// WithMetricsEnabled may return an error when input validation, dependency calls, or security checks fail.
// WithMetricsEnabled does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
// Build does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) Build() (*Manager, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	c, err := codec.New(cfg.Codec.SecretKey)
	if err != nil {
		return nil, err
	}

	log := b.log
	if log == nil {
		log = zap.NewNop()
	}

	// The Redis surface is built here, not in WithRedis, so the logger
	// and prefix reflect the final builder state regardless of call order.
	st := b.store
	if st == nil && b.redis != nil {
		st = storage.NewRedis(b.redis, cfg.Session.RedisPrefix, log)
	}
	if st == nil {
		st = storage.Disabled{}
	}

	notifier := b.notifier
	if notifier == nil {
		notifier = NoopNotifier{}
	}

	navigator := b.navigator
	if navigator == nil {
		navigator = NoopNavigator{}
	}

	scheduler := b.scheduler
	if scheduler == nil {
		scheduler = tickerScheduler{}
	}

	mgr := &Manager{
		cfg:       cfg,
		store:     session.NewStore(st, c),
		client:    b.client,
		notifier:  notifier,
		navigator: navigator,
		metrics:   NewMetrics(cfg.Metrics),
		audit:     newAuditDispatcher(cfg.Audit, b.auditSink),
		log:       log,
	}

	if cfg.Session.MigrateLegacy {
		mgr.store.MigrateLegacy()
	}

	mgr.initializeAuth()

	if cfg.Monitor.Enabled {
		mgr.monitor = newMonitor(mgr, cfg.Monitor, scheduler, b.sensor, log)
	}

	b.built = true
	return mgr, nil
}
