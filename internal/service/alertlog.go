package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"tempwatch/internal/models"
	"tempwatch/internal/repository"
)

// AlertFilter narrows journal queries by time range and level.
type AlertFilter struct {
	From  time.Time // inclusive; zero means no lower bound
	To    time.Time // inclusive; zero means no upper bound
	Level string    // "", "warning", "critical", "emergency"
}

// Domain errors the handlers branch on.
var (
	ErrInvalidTimeRange = errors.New("invalid time range: from must be <= to")
	ErrInvalidLevel     = errors.New("invalid level: must be warning, critical, or emergency")
	ErrAlertNotFound    = repository.ErrAlertNotFound
)

type AlertLogService struct {
	alerts repository.AlertRepo
}

func NewAlertLogService(alerts repository.AlertRepo) *AlertLogService {
	return &AlertLogService{alerts: alerts}
}

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeLevel trims spaces and lowercases the level filter.
func normalizeLevel(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// normalizeAndValidateFilter prepares query parameters and validates the
// time range and level.
func normalizeAndValidateFilter(f AlertFilter) (time.Time, time.Time, string, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, "", ErrInvalidTimeRange
	}

	level := normalizeLevel(f.Level)
	switch models.AlertLevel(level) {
	case "", models.LevelWarning, models.LevelCritical, models.LevelEmergency:
	default:
		return time.Time{}, time.Time{}, "", ErrInvalidLevel
	}
	return from, to, level, nil
}

func (s *AlertLogService) List(ctx context.Context, f AlertFilter) ([]models.TemperatureAlert, error) {
	from, to, level, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.alerts.List(ctx, from, to, level)
}

// Acknowledge marks one journal row as acknowledged. A blank id is treated
// the same as an unknown one.
func (s *AlertLogService) Acknowledge(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrAlertNotFound
	}
	return s.alerts.Acknowledge(ctx, id)
}
