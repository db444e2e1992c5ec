package models

import "time"

// AlertLevel is the severity of a temperature alert.
type AlertLevel string

const (
	LevelNone      AlertLevel = "none"
	LevelWarning   AlertLevel = "warning"
	LevelCritical  AlertLevel = "critical"
	LevelEmergency AlertLevel = "emergency"
)

// Severity ranks levels for highest-first comparisons (none < warning <
// critical < emergency).
func (l AlertLevel) Severity() int {
	switch l {
	case LevelWarning:
		return 1
	case LevelCritical:
		return 2
	case LevelEmergency:
		return 3
	default:
		return 0
	}
}

// Levels lists the alert levels from highest to lowest severity.
func Levels() []AlertLevel {
	return []AlertLevel{LevelEmergency, LevelCritical, LevelWarning}
}

// ThresholdSet holds the °C boundary for each alert level.
type ThresholdSet struct {
	Warning   float64 `json:"warning"`
	Critical  float64 `json:"critical"`
	Emergency float64 `json:"emergency"`
}

// Classify returns the highest level whose boundary t meets or exceeds,
// checking emergency, then critical, then warning. Below warning it
// returns LevelNone.
func (ts ThresholdSet) Classify(t float64) AlertLevel {
	switch {
	case t >= ts.Emergency:
		return LevelEmergency
	case t >= ts.Critical:
		return LevelCritical
	case t >= ts.Warning:
		return LevelWarning
	default:
		return LevelNone
	}
}

// Ordered reports whether warning < critical < emergency holds.
func (ts ThresholdSet) Ordered() bool {
	return ts.Warning < ts.Critical && ts.Critical < ts.Emergency
}

// TemperatureAlert is a single alert event. Created when a poll detects a
// new or re-cooled-down breach; the monitor hands it to recorders (log,
// journal, websocket) and keeps no copy of its own.
type TemperatureAlert struct {
	ID           string     `json:"id"`
	Temperature  float64    `json:"temperature_c"`
	Level        AlertLevel `json:"level"`
	Timestamp    time.Time  `json:"timestamp"`
	Acknowledged bool       `json:"acknowledged"`
	Message      string     `json:"message,omitempty"`
}
