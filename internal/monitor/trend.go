package monitor

import (
	"math"
	"time"

	"tempwatch/internal/models"
)

const (
	trendWindow      = 600 * time.Second
	trendMinPoints   = 3
	trendStableBandC = 2.0
)

// trendOf reports the direction of recent readings. It needs at least
// trendMinPoints readings in total, then compares only the endpoints of the
// entries inside the window. Deliberately coarse: two endpoints, no
// regression.
func trendOf(history []models.TemperatureReading, now time.Time) models.Trend {
	if len(history) < trendMinPoints {
		return models.TrendUnknown
	}

	cutoff := now.Add(-trendWindow)
	first := -1
	for i, r := range history {
		if !r.Timestamp.Before(cutoff) {
			first = i
			break
		}
	}
	if first == -1 {
		return models.TrendUnknown
	}

	delta := history[len(history)-1].Value - history[first].Value
	switch {
	case math.Abs(delta) < trendStableBandC:
		return models.TrendStable
	case delta > 0:
		return models.TrendRising
	default:
		return models.TrendFalling
	}
}
