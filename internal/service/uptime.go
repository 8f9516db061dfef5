package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"homepanel/internal/logger"
	"homepanel/internal/metrics"
	"homepanel/internal/models"
	"homepanel/internal/statuscake"
)

const statusUp = "up"

// PeriodSource is the subset of the StatusCake client the uptime service needs.
type PeriodSource interface {
	FetchPeriods(ctx context.Context, limit int) ([]statuscake.Period, error)
}

// UptimeService turns the uptime history into chart segments. Any upstream
// failure yields an empty chart.
type UptimeService struct {
	source PeriodSource
	limit  int
	log    *logger.Logger
}

func NewUptimeService(source PeriodSource, limit int, log *logger.Logger) *UptimeService {
	if limit <= 0 {
		limit = statuscake.DefaultLimit
	}
	return &UptimeService{source: source, limit: limit, log: log}
}

func (s *UptimeService) Segments(ctx context.Context) []models.ChartSegment {
	if s.source == nil {
		return []models.ChartSegment{}
	}
	periods, err := s.source.FetchPeriods(ctx, s.limit)
	if err != nil {
		metrics.IncUptimeFetch(metrics.ResultError)
		if s.log != nil {
			s.log.Warnw("uptime fetch failed", "err", err)
		}
		return []models.ChartSegment{}
	}
	metrics.IncUptimeFetch(metrics.ResultSuccess)
	return BuildSegments(periods, clock())
}

// BuildSegments orders periods oldest first and closes the open period at
// now. StatusCake lists newest first, so the input is reversed; it is then
// sorted by created_at only when every timestamp parses.
func BuildSegments(periods []statuscake.Period, now time.Time) []models.ChartSegment {
	ordered := make([]statuscake.Period, len(periods))
	for i, p := range periods {
		ordered[len(periods)-1-i] = p
	}

	starts := make([]time.Time, len(ordered))
	sortable := true
	for i, p := range ordered {
		t, ok := parsePeriodTime(p.CreatedAt)
		if !ok {
			sortable = false
			break
		}
		starts[i] = t
	}
	if sortable {
		idx := make([]int, len(ordered))
		for i := range idx {
			idx[i] = i
		}
		sort.SliceStable(idx, func(a, b int) bool { return starts[idx[a]].Before(starts[idx[b]]) })
		sorted := make([]statuscake.Period, len(ordered))
		for i, j := range idx {
			sorted[i] = ordered[j]
		}
		ordered = sorted
	}

	nowStr := now.UTC().Format(time.RFC3339)
	out := make([]models.ChartSegment, 0, len(ordered))
	for _, p := range ordered {
		end := nowStr
		if p.EndedAt != nil {
			end = *p.EndedAt
		}
		out = append(out, models.ChartSegment{
			Status: p.Status,
			Start:  p.CreatedAt,
			End:    end,
		})
	}
	return out
}

var periodLayouts = []string{time.RFC3339, "2006-01-02T15:04:05Z0700", "2006-01-02 15:04:05"}

func parsePeriodTime(s string) (time.Time, bool) {
	for _, layout := range periodLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ChartSeries flattens segments into a step chart: every segment adds its
// start and end point, 1 when up and 0 otherwise.
func ChartSeries(segments []models.ChartSegment) (labels []string, values []int) {
	labels = make([]string, 0, 2*len(segments))
	values = make([]int, 0, 2*len(segments))
	for _, seg := range segments {
		y := 0
		if strings.EqualFold(seg.Status, statusUp) {
			y = 1
		}
		labels = append(labels, seg.Start, seg.End)
		values = append(values, y, y)
	}
	return labels, values
}
