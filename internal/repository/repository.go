package repository

import (
	"context"
	"database/sql"
	"time"

	"homepanel/internal/models"
)

// EventQuery selects journal entries. Zero fields do not filter.
type EventQuery struct {
	From   time.Time // inclusive
	To     time.Time // inclusive
	Type   string
	Device string
	Limit  int // newest Limit entries; <= 0 means all
}

// EventRepo is the append-only command journal.
type EventRepo interface {
	Append(ctx context.Context, e models.CommandEvent) error
	List(ctx context.Context, q EventQuery) ([]models.CommandEvent, error)
}

type Repository struct {
	EventRepo EventRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		EventRepo: NewEventSQLite(db),
	}
}
