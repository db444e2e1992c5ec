package source

import (
	"context"
	"time"
)

// Simulator modes
const (
	modeHeat = "HEAT"
	modeCool = "COOL"
)

// Simulator generates a triangle wave between a floor and a peak: it ramps
// up for half the period, then back down. Useful on hosts without hwmon and
// for demos that need to cross alert thresholds on a schedule.
type Simulator struct {
	floorC float64
	peakC  float64
	rate   float64 // °C per second, derived from amplitude and period

	mode     string
	tempC    float64
	lastTick time.Time
	nowFn    func() time.Time
}

// NewSimulator starts at startC and oscillates up to startC+amplitudeC over
// the given period. Non-positive inputs fall back to a gentle default wave.
func NewSimulator(startC, amplitudeC float64, period time.Duration) *Simulator {
	if amplitudeC <= 0 {
		amplitudeC = 40
	}
	if period <= 0 {
		period = 10 * time.Minute
	}
	return &Simulator{
		floorC: startC,
		peakC:  startC + amplitudeC,
		rate:   2 * amplitudeC / period.Seconds(),
		mode:   modeHeat,
		tempC:  startC,
		nowFn:  time.Now,
	}
}

// Read advances the wave by the wall-clock time since the previous read and
// returns the new temperature. It never reports unavailable.
func (s *Simulator) Read(ctx context.Context) (Sample, error) {
	if err := ctx.Err(); err != nil {
		return Sample{}, err
	}

	now := s.nowFn()
	if s.lastTick.IsZero() {
		s.lastTick = now
		return Sample{Temperature: s.tempC, Message: "simulator (" + s.mode + ")"}, nil
	}

	elapsed := now.Sub(s.lastTick).Seconds()
	if elapsed < 0 {
		elapsed = 0
	}
	s.lastTick = now

	switch s.mode {
	case modeHeat:
		s.tempC += s.rate * elapsed
		if s.tempC >= s.peakC {
			s.tempC = s.peakC
			s.mode = modeCool
		}
	default:
		s.tempC -= s.rate * elapsed
		if s.tempC <= s.floorC {
			s.tempC = s.floorC
			s.mode = modeHeat
		}
	}

	return Sample{Temperature: s.tempC, Message: "simulator (" + s.mode + ")"}, nil
}
