package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/festival-ticketing/internal/model"
)

// CatalogRepo manages artists and services and their many-to-many
// attachment to events.  Both catalogs are organizer-maintained and
// read publicly on the event detail page.
type CatalogRepo struct {
	db *sql.DB
}

// NewCatalogRepo constructs a CatalogRepo with the given DB handle.
func NewCatalogRepo(db *sql.DB) *CatalogRepo {
	return &CatalogRepo{db: db}
}

// CreateArtist inserts an artist record.  On success the artist's ID is
// populated.
func (r *CatalogRepo) CreateArtist(ctx context.Context, a *model.Artist) error {
	const q = `INSERT INTO artists (full_name, genre) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, q, a.FullName, a.Genre)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	return nil
}

// CreateService inserts a service record.  On success the service's ID
// is populated.
func (r *CatalogRepo) CreateService(ctx context.Context, s *model.Service) error {
	const q = `INSERT INTO services (name, description) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.Name, s.Description)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// checkEventOwner verifies the event exists and belongs to the
// organizer before an attach write.
func (r *CatalogRepo) checkEventOwner(ctx context.Context, eventID, organizerID uint64) error {
	var ownerID uint64
	const q = `SELECT organizer_id FROM events WHERE id = ?`
	if err := r.db.QueryRowContext(ctx, q, eventID).Scan(&ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrEventNotFound
		}
		return err
	}
	if ownerID != organizerID {
		return ErrForbidden
	}
	return nil
}

// AttachArtist links an artist to an event owned by the organizer.
// Attaching twice is a no-op (duplicate key swallowed).
func (r *CatalogRepo) AttachArtist(ctx context.Context, eventID, artistID, organizerID uint64) error {
	if err := r.checkEventOwner(ctx, eventID, organizerID); err != nil {
		return err
	}
	const q = `INSERT INTO event_artists (event_id, artist_id) VALUES (?, ?)`
	if _, err := r.db.ExecContext(ctx, q, eventID, artistID); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return nil
		}
		return err
	}
	return nil
}

// AttachService links a service to an event owned by the organizer.
func (r *CatalogRepo) AttachService(ctx context.Context, eventID, serviceID, organizerID uint64) error {
	if err := r.checkEventOwner(ctx, eventID, organizerID); err != nil {
		return err
	}
	const q = `INSERT INTO event_services (event_id, service_id) VALUES (?, ?)`
	if _, err := r.db.ExecContext(ctx, q, eventID, serviceID); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return nil
		}
		return err
	}
	return nil
}

// ArtistsByEvent lists the artists attached to an event.
func (r *CatalogRepo) ArtistsByEvent(ctx context.Context, eventID uint64) ([]model.Artist, error) {
	const q = `SELECT a.id, a.full_name, a.genre
		FROM artists a
		JOIN event_artists ea ON ea.artist_id = a.id
		WHERE ea.event_id = ?
		ORDER BY a.full_name`
	rows, err := r.db.QueryContext(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]model.Artist, 0)
	for rows.Next() {
		var a model.Artist
		if err := rows.Scan(&a.ID, &a.FullName, &a.Genre); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ServicesByEvent lists the services attached to an event.
func (r *CatalogRepo) ServicesByEvent(ctx context.Context, eventID uint64) ([]model.Service, error) {
	const q = `SELECT s.id, s.name, s.description
		FROM services s
		JOIN event_services es ON es.service_id = s.id
		WHERE es.event_id = ?
		ORDER BY s.name`
	rows, err := r.db.QueryContext(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]model.Service, 0)
	for rows.Next() {
		var s model.Service
		if err := rows.Scan(&s.ID, &s.Name, &s.Description); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
