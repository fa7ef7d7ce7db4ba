package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/festival-ticketing/internal/model"
)

// DeliveryRepo reads the delivery options catalog.  Deliveries are
// seeded by operations; the API only lists and references them.
type DeliveryRepo struct {
	db *sql.DB
}

// NewDeliveryRepo constructs a DeliveryRepo with the given DB handle.
func NewDeliveryRepo(db *sql.DB) *DeliveryRepo {
	return &DeliveryRepo{db: db}
}

// ListAll returns every delivery option ordered by surcharge.
func (r *DeliveryRepo) ListAll(ctx context.Context) ([]model.Delivery, error) {
	const q = `SELECT id, name, overprice_cents, delivery_days FROM deliveries ORDER BY overprice_cents, id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Delivery
	for rows.Next() {
		var d model.Delivery
		if err := rows.Scan(&d.ID, &d.Name, &d.OverpriceCents, &d.DeliveryDays); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID retrieves a delivery option, returning ErrDeliveryNotFound
// when the id is unknown.
func (r *DeliveryRepo) GetByID(ctx context.Context, id uint64) (*model.Delivery, error) {
	const q = `SELECT id, name, overprice_cents, delivery_days FROM deliveries WHERE id = ?`
	var d model.Delivery
	err := r.db.QueryRowContext(ctx, q, id).Scan(&d.ID, &d.Name, &d.OverpriceCents, &d.DeliveryDays)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDeliveryNotFound
		}
		return nil, err
	}
	return &d, nil
}
