package repository

import (
	"strings"
	"testing"
)

func int64ptr(n int64) *int64 { return &n }

func TestBuildEventSearchDefaults(t *testing.T) {
	clause, args := buildEventSearch(EventSearchQuery{})
	if !strings.Contains(clause, "e.status = ?") {
		t.Errorf("missing approved-only guard: %q", clause)
	}
	if !strings.Contains(clause, "ORDER BY e.created_at DESC") {
		t.Errorf("default sort should be newest first: %q", clause)
	}
	if len(args) != 1 || args[0] != "approved" {
		t.Errorf("args = %v, want [approved]", args)
	}
}

func TestBuildEventSearchFilters(t *testing.T) {
	q := EventSearchQuery{
		Search:   "JAZZ",
		Category: "Music",
		Location: "Berlin",
		MinPrice: int64ptr(10),
		MaxPrice: int64ptr(200),
	}
	clause, args := buildEventSearch(q)

	for _, frag := range []string{
		"LOWER(e.title) LIKE ?",
		"LOWER(e.description) LIKE ?",
		"e.category = ?",
		"LOWER(e.location) LIKE ?",
		"e.price >= ?",
		"e.price <= ?",
	} {
		if !strings.Contains(clause, frag) {
			t.Errorf("clause missing %q: %q", frag, clause)
		}
	}

	// status, search x2, category, location, min, max
	want := []any{"approved", "%jazz%", "%jazz%", "Music", "%berlin%", int64(10), int64(200)}
	if len(args) != len(want) {
		t.Fatalf("args = %v, want %v", args, want)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Errorf("args[%d] = %v, want %v", i, args[i], want[i])
		}
	}
}

func TestBuildEventSearchCategoryAll(t *testing.T) {
	clause, args := buildEventSearch(EventSearchQuery{Category: "all"})
	if strings.Contains(clause, "e.category") {
		t.Errorf("category filter should be skipped for \"all\": %q", clause)
	}
	if len(args) != 1 {
		t.Errorf("unexpected args: %v", args)
	}
}

func TestBuildEventSearchSorts(t *testing.T) {
	cases := map[string]string{
		"popular":    "ORDER BY e.booking_count DESC",
		"price-low":  "ORDER BY e.price ASC",
		"price-high": "ORDER BY e.price DESC",
		"date":       "ORDER BY e.event_date ASC",
		"rating":     "ORDER BY e.average_rating DESC",
		"bogus":      "ORDER BY e.created_at DESC",
		"":           "ORDER BY e.created_at DESC",
	}
	for sortBy, want := range cases {
		clause, _ := buildEventSearch(EventSearchQuery{SortBy: sortBy})
		if !strings.Contains(clause, want) {
			t.Errorf("sortBy=%q: clause %q missing %q", sortBy, clause, want)
		}
	}
}

func TestPlaceholders(t *testing.T) {
	if got := placeholders(0); got != "" {
		t.Errorf("placeholders(0) = %q", got)
	}
	if got := placeholders(1); got != "?" {
		t.Errorf("placeholders(1) = %q", got)
	}
	if got := placeholders(3); got != "?,?,?" {
		t.Errorf("placeholders(3) = %q", got)
	}
}
