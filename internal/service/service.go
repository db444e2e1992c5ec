package service

import (
	"context"

	"tempwatch/internal/config"
	"tempwatch/internal/models"
	"tempwatch/internal/monitor"
	"tempwatch/internal/repository"
)

type Authorization interface {
	SignUp(username, password string) (int, error)
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Status exposes read-only monitor state: the current snapshot, the rolling
// reading history and the rendered status-bar token. All three read from an
// in-memory snapshot, so they cannot fail.
type Status interface {
	GetStatus() models.TemperatureStatus
	GetHistory() []models.TemperatureReading
	Statusbar(width int) string
}

// AlertLog exposes the persisted alert journal with filtering access.
type AlertLog interface {
	List(ctx context.Context, f AlertFilter) ([]models.TemperatureAlert, error)
	Acknowledge(ctx context.Context, id string) error
}

// Monitor controls the background poller lifecycle.
type Monitor interface {
	Start() bool
	Stop() bool
	Running() bool
}

type Service struct {
	Status
	AlertLog
	Monitor
	Authorization
}

// NewService wires the repository layer and the monitor into the concrete
// services the handlers consume.
func NewService(repos *repository.Repository, mon *monitor.Monitor, authCfg config.AuthConfig) *Service {
	return &Service{
		Status:        NewStatusService(mon),
		AlertLog:      NewAlertLogService(repos.Alerts),
		Monitor:       mon,
		Authorization: NewAuthService(repos.Auth, authCfg),
	}
}
