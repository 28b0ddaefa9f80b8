package authkit

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/powergym/authkit/session"
	"github.com/powergym/authkit/storage"
)

// monitor is the background integrity sentinel. It periodically re-verifies
// the full session checksums, reacts to sensitive-key mutations reported by
// the storage surface, and forwards host-environment tamper signals from
// the injected sensor. Every detection path converges on
// [Manager.ForceLogout].
type monitor struct {
	mgr        *Manager
	log        *zap.Logger
	stopTick   func()
	stopWatch  func()
	stopSensor func()
	closeOnce  sync.Once
}

func newMonitor(mgr *Manager, cfg MonitorConfig, sched Scheduler, sensor TamperSensor, log *zap.Logger) *monitor {
	if mgr == nil || !cfg.Enabled {
		return nil
	}

	mon := &monitor{mgr: mgr, log: log}

	mon.stopTick = sched.Every(cfg.Interval, mon.tick)

	if cfg.WatchStorage {
		if watcher, ok := mgr.store.Storage().(storage.Watcher); ok {
			mon.stopWatch = watcher.Watch(mon.onStorageEvent)
		}
	}

	if sensor != nil {
		stop, err := sensor.Start(mon.onSensorSignal)
		if err != nil {
			log.Warn("tamper sensor failed to start", zap.Error(err))
		} else {
			mon.stopSensor = stop
		}
	}

	return mon
}

// tick runs the full verification once. An empty token means no session to
// defend; a verification failure is a violation.
func (mon *monitor) tick() {
	mon.mgr.metrics.Inc(MetricMonitorTick)

	if mon.mgr.store.GetField(session.KeyToken) == "" {
		return
	}
	if err := mon.mgr.store.Verify(); err != nil {
		mon.mgr.metrics.Inc(MetricIntegrityFailure)
		mon.log.Warn("periodic integrity check failed", zap.Error(err))
		mon.mgr.ForceLogout("integrity verification failed: " + err.Error())
	}
}

// onStorageEvent reacts to a sibling-context mutation. Only the sensitive
// session fields are tamper signals; unrelated application keys are
// ignored.
func (mon *monitor) onStorageEvent(ev storage.Event) {
	for _, key := range session.SensitiveKeys {
		if ev.Key == key {
			mon.mgr.metrics.Inc(MetricStorageTamper)
			mon.log.Warn("sensitive field mutated externally", zap.String("key", ev.Key))
			mon.mgr.ForceLogout("field manipulated: " + ev.Key)
			return
		}
	}
}

func (mon *monitor) onSensorSignal(reason string) {
	mon.mgr.metrics.Inc(MetricSensorTamper)
	mon.log.Warn("tamper sensor signal", zap.String("reason", reason))
	mon.mgr.ForceLogout(reason)
}

// Close stops every watch deterministically. Safe to call more than once
// and on a nil monitor.
//
// Close may return an error when input validation, dependency calls, or security checks fail.
// Close does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (mon *monitor) Close() {
	if mon == nil {
		return
	}
	mon.closeOnce.Do(func() {
		if mon.stopTick != nil {
			mon.stopTick()
		}
		if mon.stopWatch != nil {
			mon.stopWatch()
		}
		if mon.stopSensor != nil {
			mon.stopSensor()
		}
	})
}

// tickerScheduler is the default wall-clock [Scheduler].
type tickerScheduler struct{}

// Every describes the every operation and its observable behavior.
func (tickerScheduler) Every(interval time.Duration, task func()) (stop func()) {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ticker.C:
				task()
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			ticker.Stop()
			close(done)
			wg.Wait()
		})
	}
}
