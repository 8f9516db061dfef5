package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"homepanel/internal/models"

	"github.com/google/uuid"
)

// occurred_at is stored as fixed-width text so lexical order is time order.
const timestampLayout = "2006-01-02 15:04:05.000"

const (
	insertEvent = `INSERT INTO command_events (id, occurred_at, kind, device, summary, detail) VALUES (?, ?, ?, ?, ?, ?)`
	selectEvent = `SELECT id, occurred_at, kind, device, summary, detail FROM command_events`
)

// EventSQLite is the sqlite-backed command journal.
type EventSQLite struct {
	db *sql.DB
}

func NewEventSQLite(db *sql.DB) *EventSQLite { return &EventSQLite{db: db} }

// Append journals one dispatched command. Id and time are filled in when
// missing; a detail that cannot be encoded is dropped, the entry is kept.
func (r *EventSQLite) Append(ctx context.Context, e models.CommandEvent) error {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now()
	}

	var detail sql.NullString
	if e.Metadata != nil {
		if b, err := json.Marshal(e.Metadata); err == nil {
			detail = sql.NullString{String: string(b), Valid: true}
		}
	}

	if _, err := r.db.ExecContext(ctx, insertEvent,
		e.EventID,
		e.OccurredAt.UTC().Format(timestampLayout),
		strings.ToUpper(strings.TrimSpace(e.Type)),
		strings.TrimSpace(e.Device),
		e.Description,
		detail,
	); err != nil {
		return fmt.Errorf("journal %s: %w", e.Type, err)
	}
	return nil
}

// List returns matching entries, newest first.
func (r *EventSQLite) List(ctx context.Context, q EventQuery) ([]models.CommandEvent, error) {
	stmt, args := q.sql()
	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}
	defer rows.Close()

	events := []models.CommandEvent{}
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read journal: %w", err)
	}
	return events, nil
}

func (q EventQuery) sql() (string, []any) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, arg any) {
		where = append(where, cond)
		args = append(args, arg)
	}
	if !q.From.IsZero() {
		add("occurred_at >= ?", q.From.UTC().Format(timestampLayout))
	}
	if !q.To.IsZero() {
		add("occurred_at <= ?", q.To.UTC().Format(timestampLayout))
	}
	if kind := strings.ToUpper(strings.TrimSpace(q.Type)); kind != "" {
		add("kind = ?", kind)
	}
	if device := strings.TrimSpace(q.Device); device != "" {
		add("device = ?", device)
	}

	stmt := selectEvent
	if len(where) > 0 {
		stmt += " WHERE " + strings.Join(where, " AND ")
	}
	stmt += " ORDER BY occurred_at DESC, id DESC"
	if q.Limit > 0 {
		stmt += " LIMIT ?"
		args = append(args, q.Limit)
	}
	return stmt, args
}

func scanEvent(rows *sql.Rows) (models.CommandEvent, error) {
	var (
		ev     models.CommandEvent
		detail sql.NullString
	)
	if err := rows.Scan(&ev.EventID, &ev.OccurredAt, &ev.Type, &ev.Device, &ev.Description, &detail); err != nil {
		return ev, fmt.Errorf("scan journal row: %w", err)
	}
	ev.OccurredAt = ev.OccurredAt.UTC()

	if detail.Valid && detail.String != "" {
		var v any
		if json.Unmarshal([]byte(detail.String), &v) == nil {
			ev.Metadata = v
		} else {
			ev.Metadata = detail.String
		}
	}
	return ev, nil
}
