// Package monitor implements the temperature watch core: a bounded reading
// history, leveled threshold alerts with per-level cooldown, trend detection
// and a background poller. All mutable state lives behind one mutex so the
// poller and foreground status callers never race.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"tempwatch/internal/config"
	"tempwatch/internal/logger"
	"tempwatch/internal/models"
	"tempwatch/internal/source"
)

// UnavailableMessage is returned verbatim in the status snapshot when the
// host has no usable temperature sensor.
const UnavailableMessage = "Temperature monitoring not available."

// ConfigProvider supplies the monitor section of the configuration. It is
// consulted on every poll cycle, so config reloads take effect on the next
// cycle without a restart.
type ConfigProvider interface {
	Monitor() config.MonitorConfig
}

// AlertRecorder receives every emitted alert. The monitor itself keeps no
// alert log; persistence is the recorder's problem.
type AlertRecorder interface {
	Record(ctx context.Context, alert models.TemperatureAlert) error
}

// Monitor owns the polling state. Construct with New and drive it either
// through Start/Stop (background polling) or let tests call poll directly.
type Monitor struct {
	cfg ConfigProvider
	src source.Reader
	rec AlertRecorder
	log *logger.Logger

	nowFn func() time.Time

	mu        sync.Mutex
	history   []models.TemperatureReading
	active    map[models.AlertLevel]bool
	lastAlert map[models.AlertLevel]time.Time
	lastCheck time.Time
	available bool
	current   float64
	sourceMsg string

	runMu    sync.Mutex
	running  bool
	stopping bool
	cancel   context.CancelFunc
	done     chan struct{}
}

// New builds a monitor. rec may be nil when nothing consumes alerts beyond
// the log.
func New(cfg ConfigProvider, src source.Reader, rec AlertRecorder, log *logger.Logger) *Monitor {
	return &Monitor{
		cfg:       cfg,
		src:       src,
		rec:       rec,
		log:       log,
		nowFn:     time.Now,
		active:    make(map[models.AlertLevel]bool),
		lastAlert: make(map[models.AlertLevel]time.Time),
	}
}

// poll runs one read-evaluate cycle. Unavailable sources and transient read
// errors leave history and alert state untouched; they only mark the
// snapshot unavailable and differ in log level.
func (m *Monitor) poll(ctx context.Context) {
	cfg := m.cfg.Monitor()
	now := m.nowFn()

	sample, err := m.src.Read(ctx)
	switch {
	case errors.Is(err, source.ErrUnavailable):
		m.mu.Lock()
		m.lastCheck = now
		m.available = false
		m.sourceMsg = ""
		m.mu.Unlock()
		m.log.Debugf("no temperature sensor, skipping poll")
		return
	case err != nil:
		m.mu.Lock()
		m.lastCheck = now
		m.available = false
		m.sourceMsg = ""
		m.mu.Unlock()
		m.log.Warnf("temperature read failed: %v", err)
		return
	}

	alert, recovered := m.apply(sample, now, cfg)
	if recovered {
		m.log.Infof("temperature returned to normal: %.1f°C", sample.Temperature)
	}
	if alert != nil {
		m.emit(ctx, *alert)
	}
}

// apply folds one successful sample into the monitor state and runs the
// alert state machine. It returns the alert to emit, if any, and whether
// the reading cleared previously active alerts.
func (m *Monitor) apply(s source.Sample, now time.Time, cfg config.MonitorConfig) (*models.TemperatureAlert, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastCheck = now
	m.available = true
	m.current = s.Temperature
	m.sourceMsg = s.Message

	m.history = append(m.history, models.TemperatureReading{Timestamp: now, Value: s.Temperature})
	if cfg.HistorySize > 0 {
		if n := len(m.history) - cfg.HistorySize; n > 0 {
			m.history = append(m.history[:0], m.history[n:]...)
		}
	}

	level := cfg.Thresholds.Classify(s.Temperature)
	if level == models.LevelNone {
		recovered := false
		for lvl, on := range m.active {
			if on {
				m.active[lvl] = false
				recovered = true
			}
		}
		return nil, recovered
	}

	if !cfg.AlertsEnabled {
		return nil, false
	}

	// Suppress only while this level is active and still inside its
	// cooldown window. A fresh breach after a normal reading re-alerts
	// immediately, cooldown or not.
	if m.active[level] && now.Sub(m.lastAlert[level]) < cfg.Cooldown {
		return nil, false
	}
	m.active[level] = true
	m.lastAlert[level] = now

	return &models.TemperatureAlert{
		ID:          uuid.NewString(),
		Temperature: s.Temperature,
		Level:       level,
		Timestamp:   now,
		Message:     fmt.Sprintf("temperature %.1f°C crossed the %s threshold", s.Temperature, level),
	}, false
}

// emit logs the alert and hands it to the recorder. Recorder failures are
// logged, never propagated; losing a journal row must not stop monitoring.
func (m *Monitor) emit(ctx context.Context, alert models.TemperatureAlert) {
	if alert.Level.Severity() >= models.LevelCritical.Severity() {
		m.log.Errorf("%s: %s", alert.Level, alert.Message)
	} else {
		m.log.Warnf("%s: %s", alert.Level, alert.Message)
	}
	if m.rec == nil {
		return
	}
	if err := m.rec.Record(ctx, alert); err != nil {
		m.log.Errorf("record alert %s: %v", alert.ID, err)
	}
}

// Status returns a consistent snapshot of the monitor. It is safe to call
// from any goroutine and always returns a well-formed value, sensor or not.
func (m *Monitor) Status() models.TemperatureStatus {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := models.TemperatureStatus{
		AlertLevel: models.LevelNone,
		Trend:      trendOf(m.history, m.nowFn()),
		LastCheck:  m.lastCheck,
	}
	if !m.available {
		st.Message = UnavailableMessage
		return st
	}

	st.Available = true
	t := m.current
	st.Temperature = &t
	st.Message = m.sourceMsg
	for _, lvl := range models.Levels() {
		if m.active[lvl] {
			st.AlertLevel = lvl
			st.AlertActive = true
			st.AlertTime = m.lastAlert[lvl]
			break
		}
	}
	return st
}

// History returns a copy of the rolling reading history, oldest first.
func (m *Monitor) History() []models.TemperatureReading {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.TemperatureReading, len(m.history))
	copy(out, m.history)
	return out
}
