package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"tempwatch/internal/models"
)

// sqliteTimeLayout is the TIMESTAMP format SQLite sorts lexicographically.
const sqliteTimeLayout = "2006-01-02 15:04:05"

type AlertSQLite struct {
	db *sql.DB
}

func NewAlertSQLite(db *sql.DB) *AlertSQLite { return &AlertSQLite{db: db} }

// Ensure implementation of AlertRepo interface at compile time.
var _ AlertRepo = (*AlertSQLite)(nil)

const (
	insertAlertSQL = `
		INSERT INTO alerts (id, occurred_at, level, temperature_c, message, acknowledged)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	selectAlertsSQL     = `SELECT id, occurred_at, level, temperature_c, message, acknowledged FROM alerts`
	acknowledgeAlertSQL = `UPDATE alerts SET acknowledged = 1 WHERE id = ?`
)

// Append inserts a new alert. If ID or Timestamp are empty, they're set.
func (r *AlertSQLite) Append(ctx context.Context, a models.TemperatureAlert) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Timestamp.IsZero() {
		a.Timestamp = time.Now().UTC()
	} else {
		a.Timestamp = a.Timestamp.UTC()
	}

	_, err := r.db.ExecContext(ctx, insertAlertSQL,
		a.ID,
		a.Timestamp.Format(sqliteTimeLayout),
		normalizeLevel(string(a.Level)),
		a.Temperature,
		a.Message,
		a.Acknowledged,
	)
	return err
}

// List returns alerts filtered by [from, to] (inclusive) and/or level,
// ordered by occurrence time ascending.
func (r *AlertSQLite) List(ctx context.Context, from, to time.Time, level string) ([]models.TemperatureAlert, error) {
	var (
		conds []string
		args  []any
	)

	if !from.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, from.UTC())
	}
	if !to.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, to.UTC())
	}
	if level = normalizeLevel(level); level != "" {
		conds = append(conds, "level = ?")
		args = append(args, level)
	}

	q := selectAlertsSQL
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY occurred_at ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.TemperatureAlert, 0, 64)
	for rows.Next() {
		var (
			a     models.TemperatureAlert
			level string
		)
		if err := rows.Scan(&a.ID, &a.Timestamp, &level, &a.Temperature, &a.Message, &a.Acknowledged); err != nil {
			return nil, err
		}
		a.Level = models.AlertLevel(level)
		a.Timestamp = a.Timestamp.UTC()
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Acknowledge marks one alert as seen. An unknown id is ErrAlertNotFound.
func (r *AlertSQLite) Acknowledge(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, acknowledgeAlertSQL, id)
	if err != nil {
		return fmt.Errorf("acknowledge alert %q: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("acknowledge alert %q: %w", id, err)
	}
	if n == 0 {
		return ErrAlertNotFound
	}
	return nil
}

// normalizeLevel trims spaces and lowercases a level filter so stored rows
// always carry the canonical level spelling.
func normalizeLevel(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
