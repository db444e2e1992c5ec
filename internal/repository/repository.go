package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"tempwatch/internal/models"
	sqlitedb "tempwatch/internal/repository/db"
)

// ErrAlertNotFound is returned by Acknowledge for an unknown alert id.
var ErrAlertNotFound = errors.New("alert not found")

type Authorization interface {
	Create(username, hash string) (int, error)
	GetByUsername(username string) (*models.User, error)
}

// AlertRepo is the persisted alert journal. The monitor appends through it;
// the API reads and acknowledges through it.
type AlertRepo interface {
	Append(ctx context.Context, a models.TemperatureAlert) error
	List(ctx context.Context, from, to time.Time, level string) ([]models.TemperatureAlert, error)
	Acknowledge(ctx context.Context, id string) error
}

type Repository struct {
	Alerts AlertRepo
	Auth   Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Alerts: NewAlertSQLite(db),
		Auth:   NewUserRepository(db),
	}
}

// InitDB opens/creates the SQLite file and ensures the schema exists.
func InitDB(path string) (*sql.DB, error) {
	return sqlitedb.InitDB(path)
}
