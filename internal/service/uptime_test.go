package service

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"homepanel/internal/models"
	"homepanel/internal/statuscake"
)

type fakePeriodSource struct {
	periods  []statuscake.Period
	err      error
	gotLimit int
}

func (f *fakePeriodSource) FetchPeriods(_ context.Context, limit int) ([]statuscake.Period, error) {
	f.gotLimit = limit
	return f.periods, f.err
}

func strPtr(s string) *string { return &s }

func TestBuildSegments_AscendingAndOpenEndsNow(t *testing.T) {
	now := time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC)
	t1 := "2024-01-01T00:00:00Z"
	t2 := "2024-01-02T00:00:00Z"

	// API order is newest first.
	periods := []statuscake.Period{
		{Status: "up", CreatedAt: t2, EndedAt: nil},
		{Status: "down", CreatedAt: t1, EndedAt: strPtr(t2)},
	}

	got := BuildSegments(periods, now)
	want := []models.ChartSegment{
		{Status: "down", Start: t1, End: t2},
		{Status: "up", Start: t2, End: "2024-01-03T12:00:00Z"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("BuildSegments = %+v; want %+v", got, want)
	}

	// Already ascending input gives the same answer.
	reversed := []statuscake.Period{periods[1], periods[0]}
	if got := BuildSegments(reversed, now); !reflect.DeepEqual(got, want) {
		t.Fatalf("BuildSegments(ascending) = %+v; want %+v", got, want)
	}
}

func TestBuildSegments_NonRFC3339Stamps(t *testing.T) {
	now := time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC)
	nowStr := "2024-01-03T12:00:00Z"

	cases := []struct {
		name   string
		t1, t2 string
	}{
		{"space separated", "2024-01-01 00:00:00", "2024-01-02 00:00:00"},
		{"zone without colon", "2024-01-01T00:00:00+0000", "2024-01-02T00:00:00+0000"},
		{"unparsable", "first outage", "recovered"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// newest first, as the API returns them
			periods := []statuscake.Period{
				{Status: "up", CreatedAt: tc.t2},
				{Status: "down", CreatedAt: tc.t1, EndedAt: strPtr(tc.t2)},
			}
			want := []models.ChartSegment{
				{Status: "down", Start: tc.t1, End: tc.t2},
				{Status: "up", Start: tc.t2, End: nowStr},
			}
			if got := BuildSegments(periods, now); !reflect.DeepEqual(got, want) {
				t.Fatalf("BuildSegments = %+v; want %+v", got, want)
			}
		})
	}
}

func TestBuildSegments_Empty(t *testing.T) {
	got := BuildSegments(nil, time.Now())
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestChartSeries(t *testing.T) {
	labels, values := ChartSeries([]models.ChartSegment{
		{Status: "down", Start: "a", End: "b"},
		{Status: "UP", Start: "b", End: "c"},
	})
	if !reflect.DeepEqual(labels, []string{"a", "b", "b", "c"}) {
		t.Fatalf("labels = %v", labels)
	}
	if !reflect.DeepEqual(values, []int{0, 0, 1, 1}) {
		t.Fatalf("values = %v", values)
	}
}

func TestUptimeService_DegradesOnError(t *testing.T) {
	src := &fakePeriodSource{err: errors.New("http 401")}
	svc := NewUptimeService(src, 0, nil)

	got := svc.Segments(context.Background())
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
	if src.gotLimit != statuscake.DefaultLimit {
		t.Fatalf("limit = %d; want default %d", src.gotLimit, statuscake.DefaultLimit)
	}
}

func TestUptimeService_Segments(t *testing.T) {
	old := clock
	clock = func() time.Time { return time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC) }
	defer func() { clock = old }()

	src := &fakePeriodSource{periods: []statuscake.Period{{Status: "up", CreatedAt: "2024-01-02T00:00:00Z"}}}
	svc := NewUptimeService(src, 5, nil)

	got := svc.Segments(context.Background())
	if len(got) != 1 || got[0].End != "2024-01-03T00:00:00Z" {
		t.Fatalf("segments = %+v", got)
	}
	if src.gotLimit != 5 {
		t.Fatalf("limit = %d", src.gotLimit)
	}
}

func TestUptimeService_NilSource(t *testing.T) {
	svc := NewUptimeService(nil, 0, nil)
	if got := svc.Segments(context.Background()); len(got) != 0 {
		t.Fatalf("expected empty, got %+v", got)
	}
}
