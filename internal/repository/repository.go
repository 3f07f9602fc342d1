package repository

import (
	"context"
	"errors"
	"log/slog"

	"github.com/UnknownOlympus/servo/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned when no cached journey exists for a pair of coordinates.
var ErrNotFound = errors.New("journey not found in cache")

// Database is the subset of pgxpool.Pool used by the repository.
type Database interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Repository struct {
	db  Database
	log *slog.Logger
}

type Interface interface {
	EnsureSchema(ctx context.Context) error
	GetJourney(ctx context.Context, origin, destination string) (*models.Journey, error)
	SaveJourney(ctx context.Context, origin, destination string, journey models.Journey) error
}

// NewRepository creates a new instance of Repository with the provided Database.
// It returns a pointer to the newly created Repository.
func NewRepository(db Database, log *slog.Logger) *Repository {
	return &Repository{db: db, log: log}
}
