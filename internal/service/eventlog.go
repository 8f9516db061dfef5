package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"homepanel/internal/models"
	"homepanel/internal/repository"
)

// Journal page sizes.
const (
	DefaultLogLimit = 100
	MaxLogLimit     = 1000
)

// ErrInvalidLogFilter is wrapped by every filter rejected before the
// journal is queried.
var ErrInvalidLogFilter = errors.New("invalid log filter")

var journalKinds = map[string]bool{
	models.EventSwitch:  true,
	models.EventClimate: true,
	models.EventWake:    true,
	models.EventError:   true,
}

// EventLogService reads the command journal.
type EventLogService struct {
	events repository.EventRepo
}

func NewEventLogService(events repository.EventRepo) *EventLogService {
	return &EventLogService{events: events}
}

// List returns the newest journal entries matching f. Without a journal
// it is empty.
func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.CommandEvent, error) {
	q, err := journalQuery(f)
	if err != nil {
		return nil, err
	}
	if s.events == nil {
		return []models.CommandEvent{}, nil
	}
	return s.events.List(ctx, q)
}

func journalQuery(f LogFilter) (repository.EventQuery, error) {
	q := repository.EventQuery{
		Type:   strings.ToUpper(strings.TrimSpace(f.Type)),
		Device: strings.TrimSpace(f.Device),
		Limit:  f.Limit,
	}
	if !f.From.IsZero() {
		q.From = f.From.UTC()
	}
	if !f.To.IsZero() {
		q.To = f.To.UTC()
	}

	switch {
	case !q.From.IsZero() && !q.To.IsZero() && q.From.After(q.To):
		return q, fmt.Errorf("%w: from is after to", ErrInvalidLogFilter)
	case q.Type != "" && !journalKinds[q.Type]:
		return q, fmt.Errorf("%w: unknown type %q", ErrInvalidLogFilter, f.Type)
	case q.Limit < 0:
		return q, fmt.Errorf("%w: negative limit", ErrInvalidLogFilter)
	case q.Limit == 0:
		q.Limit = DefaultLogLimit
	case q.Limit > MaxLogLimit:
		q.Limit = MaxLogLimit
	}
	return q, nil
}
