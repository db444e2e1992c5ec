// Package source provides temperature sources for the monitor. A source
// distinguishes "no sensor on this host" (ErrUnavailable) from a transient
// read failure (any other error) so the monitor can log them differently.
package source

import (
	"context"
	"errors"
	"fmt"

	"tempwatch/internal/config"
)

// Supported source kinds (config key source.kind).
const (
	KindHwmon     = "hwmon"
	KindSimulator = "simulator"
	KindStatic    = "static"
)

// ErrUnavailable means the host has no usable temperature sensor. It is a
// steady condition, not a glitch; the monitor logs it at debug only.
var ErrUnavailable = errors.New("temperature source unavailable")

// Sample is one successful sensor read.
type Sample struct {
	Temperature float64 // °C
	Message     string  // human-readable origin, e.g. "coretemp (hwmon3)"
}

// Reader reads the current temperature. Implementations must be safe for
// use from a single polling goroutine; they are not required to be
// goroutine-safe beyond that.
type Reader interface {
	Read(ctx context.Context) (Sample, error)
}

// New builds the configured temperature source. An unknown kind is an
// error so a typo'd config fails at startup instead of silently monitoring
// nothing.
func New(cfg config.SourceConfig) (Reader, error) {
	switch cfg.Kind {
	case KindHwmon:
		return NewHwmon(cfg.HwmonSensor), nil
	case KindSimulator:
		return NewSimulator(cfg.SimStartC, cfg.SimAmplitudeC, cfg.SimPeriod), nil
	case KindStatic:
		return NewStatic(cfg.StaticC), nil
	default:
		return nil, fmt.Errorf("unknown source kind %q", cfg.Kind)
	}
}
