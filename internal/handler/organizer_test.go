package handler

import (
	"testing"
	"time"

	"github.com/eventsense/eventsense-api/internal/repository"
)

func TestMonthStart(t *testing.T) {
	in := time.Date(2026, 9, 17, 13, 45, 0, 0, time.UTC)
	want := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	if got := monthStart(in); !got.Equal(want) {
		t.Errorf("monthStart(%v) = %v, want %v", in, got, want)
	}
}

func TestFillMonthsZeroFillsGaps(t *testing.T) {
	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	rows := []repository.MonthRevenue{
		{Month: "2026-05", Revenue: 1200},
		{Month: "2026-08", Revenue: 300},
	}
	got := fillMonths(rows, start, 6)

	want := []repository.MonthRevenue{
		{Month: "2026-04", Revenue: 0},
		{Month: "2026-05", Revenue: 1200},
		{Month: "2026-06", Revenue: 0},
		{Month: "2026-07", Revenue: 0},
		{Month: "2026-08", Revenue: 300},
		{Month: "2026-09", Revenue: 0},
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("bucket %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestFillMonthsEmptyInput(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	got := fillMonths(nil, start, 3)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i, m := range got {
		if m.Revenue != 0 {
			t.Errorf("bucket %d revenue = %d, want 0", i, m.Revenue)
		}
	}
	if got[0].Month != "2026-01" || got[2].Month != "2026-03" {
		t.Errorf("month labels wrong: %+v", got)
	}
}

func TestFillMonthsYearBoundary(t *testing.T) {
	start := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)
	got := fillMonths(nil, start, 4)
	labels := []string{"2025-11", "2025-12", "2026-01", "2026-02"}
	for i, want := range labels {
		if got[i].Month != want {
			t.Errorf("bucket %d = %q, want %q", i, got[i].Month, want)
		}
	}
}
