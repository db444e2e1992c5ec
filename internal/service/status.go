package service

import (
	"tempwatch/internal/models"
	"tempwatch/internal/statusbar"
)

// StatusSource is the slice of the monitor the status service reads.
type StatusSource interface {
	Status() models.TemperatureStatus
	History() []models.TemperatureReading
}

type StatusService struct {
	mon StatusSource
}

func NewStatusService(mon StatusSource) *StatusService {
	return &StatusService{mon: mon}
}

// GetStatus returns the current monitor snapshot.
func (s *StatusService) GetStatus() models.TemperatureStatus {
	return s.mon.Status()
}

// GetHistory returns the rolling reading history, oldest first.
func (s *StatusService) GetHistory() []models.TemperatureReading {
	return s.mon.History()
}

// Statusbar renders the snapshot as a status-bar token fitted to width
// display cells. width <= 0 skips the fitting.
func (s *StatusService) Statusbar(width int) string {
	token := statusbar.Render(s.mon.Status())
	if width > 0 {
		token = statusbar.Fit(token, width)
	}
	return token
}
