package repository

import (
	"context"
	"strings"
)

// EventSearchQuery defines filters & pagination for searching events.
type EventSearchQuery struct {
	Name       string
	City       string
	Country    string
	TimeFilter string
	Page       int
	PageSize   int
}

type PublicEventRow struct {
	ID             uint64  `json:"id"`
	Name           string  `json:"name"`
	Brief          string  `json:"brief_description"`
	City           string  `json:"city"`
	Country        string  `json:"country"`
	StartsAt       string  `json:"starts_at"`
	EndsAt         string  `json:"ends_at"`
	Cancelled      bool    `json:"cancelled"`
	SeatsAvailable uint32  `json:"seats_available"`
	AvgRating      float64 `json:"avg_rating"`
	MinPriceCents  uint64  `json:"min_price_cents"`
	MinPrice       float64 `json:"min_price"`
}

func (r *EventRepo) SearchUpcoming(ctx context.Context, q EventSearchQuery) ([]PublicEventRow, int64, error) {
	where := []string{}
	args := []any{}

	switch strings.ToLower(q.TimeFilter) {
	case "any":
	case "active":
		where = append(where, "e.ends_at >= NOW()")
	default:
		where = append(where, "e.starts_at >= NOW()")
	}

	if q.Name != "" {
		where = append(where, "LOWER(e.name) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Name)+"%")
	}
	if q.City != "" {
		where = append(where, "LOWER(e.city) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.City)+"%")
	}
	if q.Country != "" {
		where = append(where, "LOWER(e.country) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Country)+"%")
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	var total int64
	countSQL := `SELECT COUNT(*) FROM events e WHERE ` + cond
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := q.PageSize
	offset := (q.Page - 1) * q.PageSize

	dataSQL := `SELECT
			e.id,
			e.name,
			e.brief_description,
			e.city,
			e.country,
			DATE_FORMAT(e.starts_at, '%Y-%m-%d %T') AS starts_at,
			DATE_FORMAT(e.ends_at,   '%Y-%m-%d %T') AS ends_at,
			e.cancelled,
			e.seats_available,
			e.avg_rating,
			COALESCE((SELECT MIN(s.price_cents) FROM seats s WHERE s.event_id = e.id), 0) AS min_price_cents
		FROM events e
		WHERE ` + cond + `
		ORDER BY e.starts_at ASC
		LIMIT ? OFFSET ?`

	argsData := append(append([]any{}, args...), limit, offset)

	rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]PublicEventRow, 0, limit)
	for rows.Next() {
		var d PublicEventRow
		if err := rows.Scan(
			&d.ID,
			&d.Name,
			&d.Brief,
			&d.City,
			&d.Country,
			&d.StartsAt,
			&d.EndsAt,
			&d.Cancelled,
			&d.SeatsAvailable,
			&d.AvgRating,
			&d.MinPriceCents,
		); err != nil {
			return nil, 0, err
		}
		d.MinPrice = float64(d.MinPriceCents) / 100.0
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
