package models

import "time"

// TemperatureReading is a single sensor sample. Immutable once recorded.
type TemperatureReading struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value_c"` // °C
}

// Trend is the coarse direction of recent temperature movement.
type Trend string

const (
	TrendRising  Trend = "rising"
	TrendFalling Trend = "falling"
	TrendStable  Trend = "stable"
	TrendUnknown Trend = "unknown"
)

// TemperatureStatus is the snapshot handed to callers (status bar, API, WS).
// It is always well-formed: when the source is unavailable, Temperature is
// nil, AlertActive is false and Message explains why.
type TemperatureStatus struct {
	Available   bool       `json:"available"`
	Temperature *float64   `json:"temperature,omitempty"` // °C, nil if unavailable
	AlertLevel  AlertLevel `json:"alert_level"`
	AlertActive bool       `json:"alert_active"`
	AlertTime   time.Time  `json:"alert_time,omitempty"`
	Trend       Trend      `json:"trend"`
	Message     string     `json:"message,omitempty"`
	LastCheck   time.Time  `json:"last_check,omitempty"`
}
