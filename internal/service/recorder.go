package service

import (
	"context"

	"tempwatch/internal/models"
	"tempwatch/internal/monitor"
	"tempwatch/internal/repository"
)

// alertJournal adapts the alert repository to the monitor's recorder port,
// keeping the monitor itself persistence-free.
type alertJournal struct {
	alerts repository.AlertRepo
}

// NewAlertRecorder wraps the journal repo as a monitor.AlertRecorder.
func NewAlertRecorder(alerts repository.AlertRepo) monitor.AlertRecorder {
	return &alertJournal{alerts: alerts}
}

func (j *alertJournal) Record(ctx context.Context, alert models.TemperatureAlert) error {
	return j.alerts.Append(ctx, alert)
}
