package monitor

import (
	"context"
	"time"

	"tempwatch/internal/config"
)

const (
	// stopJoinTimeout bounds how long Stop waits for the poller goroutine.
	stopJoinTimeout = 5 * time.Second
	// crashBackoff is the pause after a panicking poll cycle before the
	// poller tries again.
	crashBackoff = 60 * time.Second
)

// Start launches the background poller. It is idempotent: calling it while
// the poller runs is a no-op that still reports success.
func (m *Monitor) Start() bool {
	m.runMu.Lock()
	defer m.runMu.Unlock()

	if m.running {
		m.log.Debugf("monitor already running")
		return true
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.done = make(chan struct{})
	m.running = true
	m.stopping = false

	go m.run(ctx, m.done)
	m.log.Infof("temperature monitor started, poll interval %s", m.cfg.Monitor().Interval)
	return true
}

// Stop cancels the poller and waits up to stopJoinTimeout for it to exit.
// Stopping an already stopped monitor reports success. A false return means
// the goroutine is still draining its current cycle; calling Stop again
// resumes the wait without re-canceling.
func (m *Monitor) Stop() bool {
	m.runMu.Lock()
	defer m.runMu.Unlock()

	if !m.running {
		return true
	}
	if !m.stopping {
		m.stopping = true
		m.cancel()
	}

	select {
	case <-m.done:
		m.running = false
		m.stopping = false
		m.log.Infof("temperature monitor stopped")
		return true
	case <-time.After(stopJoinTimeout):
		m.log.Errorf("temperature monitor did not stop within %s", stopJoinTimeout)
		return false
	}
}

// Running reports whether the background poller is live.
func (m *Monitor) Running() bool {
	m.runMu.Lock()
	defer m.runMu.Unlock()
	return m.running
}

// run is the poller loop: sleep the configured interval, poll, repeat.
// The interval is re-read every iteration so config changes apply on the
// next cycle. Cancellation interrupts the sleep immediately.
func (m *Monitor) run(ctx context.Context, done chan<- struct{}) {
	defer close(done)

	for {
		interval := m.cfg.Monitor().Interval
		if interval <= 0 {
			// A non-positive interval would spin.
			interval = config.MinCheckIntervalSeconds * time.Second
		}

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		m.cycle(ctx)
	}
}

// cycle runs one poll with crash containment: a panic is logged and the
// poller backs off before its next attempt instead of dying.
func (m *Monitor) cycle(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			m.log.Errorf("poll cycle panicked: %v", r)
			timer := time.NewTimer(crashBackoff)
			select {
			case <-ctx.Done():
				timer.Stop()
			case <-timer.C:
			}
		}
	}()
	m.poll(ctx)
}
