package repository

import (
	"context"
	"strings"

	"github.com/eventsense/eventsense-api/internal/model"
)

// EventSearchQuery defines the public browse filters. Search matches title
// or description case-insensitively, Location matches as a substring,
// MinPrice/MaxPrice bound the price range when non-nil. SortBy accepts
// popular | price-low | price-high | date | rating; anything else falls
// back to newest first. Only approved events are ever returned.
type EventSearchQuery struct {
	Search   string
	Category string
	Location string
	MinPrice *int64
	MaxPrice *int64
	SortBy   string
}

// buildEventSearch renders the WHERE and ORDER BY clauses for a search
// query. Split out from Search so the filter/sort mapping is testable
// without a database.
func buildEventSearch(q EventSearchQuery) (string, []any) {
	where := []string{"e.status = ?"}
	args := []any{model.EventApproved}

	if q.Search != "" {
		where = append(where, "(LOWER(e.title) LIKE ? OR LOWER(e.description) LIKE ?)")
		pat := "%" + strings.ToLower(q.Search) + "%"
		args = append(args, pat, pat)
	}
	if q.Category != "" && q.Category != "all" {
		where = append(where, "e.category = ?")
		args = append(args, q.Category)
	}
	if q.Location != "" {
		where = append(where, "LOWER(e.location) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Location)+"%")
	}
	if q.MinPrice != nil {
		where = append(where, "e.price >= ?")
		args = append(args, *q.MinPrice)
	}
	if q.MaxPrice != nil {
		where = append(where, "e.price <= ?")
		args = append(args, *q.MaxPrice)
	}

	var order string
	switch q.SortBy {
	case "popular":
		order = "e.booking_count DESC"
	case "price-low":
		order = "e.price ASC"
	case "price-high":
		order = "e.price DESC"
	case "date":
		order = "e.event_date ASC"
	case "rating":
		order = "e.average_rating DESC"
	default:
		order = "e.created_at DESC"
	}

	return " WHERE " + strings.Join(where, " AND ") + " ORDER BY " + order, args
}

// Search returns approved events matching the query, joined with organizer
// contact details.
func (r *EventRepo) Search(ctx context.Context, q EventSearchQuery) ([]model.Event, error) {
	clause, args := buildEventSearch(q)
	return r.queryEvents(ctx, "SELECT "+eventCols+eventFrom+clause, args...)
}
