package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/geloraapp/gelora/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// CourtRepo implements ports.CourtRepository with pgx. Province links live in
// the court_provinces join table and are loaded with every court read.
type CourtRepo struct {
	db *DB
}

// NewCourtRepo creates a new CourtRepo.
func NewCourtRepo(db *DB) *CourtRepo {
	return &CourtRepo{db: db}
}

const courtColumns = `
	c.id, COALESCE(c.owner_id, ''), c.name, c.address, c.lat, c.lon,
	c.court_type, c.location_type, c.price_per_hour,
	COALESCE(c.phone_number, ''), COALESCE(c.description, ''),
	COALESCE(c.operational_hours, ''), c.is_active, c.created_at, c.updated_at`

// Create inserts a court and its province links in one transaction.
func (r *CourtRepo) Create(ctx context.Context, c *domain.Court) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO courts (owner_id, name, address, lat, lon, court_type, location_type,
		                    price_per_hour, phone_number, description, operational_hours, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`, c.OwnerID, c.Name, c.Address, c.Location.Lat, c.Location.Lon,
		c.CourtType, c.LocationType, c.PricePerHour,
		c.PhoneNumber, c.Description, c.OperationalHours, c.IsActive,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert court: %w", err)
	}

	if err := replaceProvinces(ctx, tx, c.ID, c.Provinces); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Update replaces a court's attributes and rewrites its province links.
func (r *CourtRepo) Update(ctx context.Context, c *domain.Court) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE courts
		SET name = $2, address = $3, lat = $4, lon = $5, court_type = $6,
		    location_type = $7, price_per_hour = $8, phone_number = $9,
		    description = $10, operational_hours = $11, is_active = $12,
		    updated_at = now()
		WHERE id = $1
	`, c.ID, c.Name, c.Address, c.Location.Lat, c.Location.Lon,
		c.CourtType, c.LocationType, c.PricePerHour,
		c.PhoneNumber, c.Description, c.OperationalHours, c.IsActive)
	if err != nil {
		return fmt.Errorf("update court: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM court_provinces WHERE court_id = $1`, c.ID); err != nil {
		return fmt.Errorf("clear provinces: %w", err)
	}
	if err := replaceProvinces(ctx, tx, c.ID, c.Provinces); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Delete removes a court. Province links and bookmarks cascade.
func (r *CourtRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM courts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID returns a court with its provinces attached.
func (r *CourtRepo) GetByID(ctx context.Context, id string) (*domain.Court, error) {
	var c domain.Court
	err := r.db.Pool.QueryRow(ctx, `
		SELECT`+courtColumns+`
		FROM courts c WHERE c.id = $1
	`, id).Scan(
		&c.ID, &c.OwnerID, &c.Name, &c.Address, &c.Location.Lat, &c.Location.Lon,
		&c.CourtType, &c.LocationType, &c.PricePerHour,
		&c.PhoneNumber, &c.Description, &c.OperationalHours,
		&c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	provinces, err := r.provincesFor(ctx, []string{c.ID})
	if err != nil {
		return nil, err
	}
	c.Provinces = provinces[c.ID]
	return &c, nil
}

// ListActive returns every active court with provinces attached, name order.
func (r *CourtRepo) ListActive(ctx context.Context) ([]domain.Court, error) {
	return r.list(ctx, `WHERE c.is_active`, nil)
}

// ListByOwner returns all of one owner's courts, active or not.
func (r *CourtRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Court, error) {
	return r.list(ctx, `WHERE c.owner_id = $1`, []any{ownerID})
}

func (r *CourtRepo) list(ctx context.Context, where string, args []any) ([]domain.Court, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT`+courtColumns+`
		FROM courts c `+where+`
		ORDER BY c.name, c.id
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courts []domain.Court
	var ids []string
	for rows.Next() {
		var c domain.Court
		if err := rows.Scan(
			&c.ID, &c.OwnerID, &c.Name, &c.Address, &c.Location.Lat, &c.Location.Lon,
			&c.CourtType, &c.LocationType, &c.PricePerHour,
			&c.PhoneNumber, &c.Description, &c.OperationalHours,
			&c.IsActive, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		courts = append(courts, c)
		ids = append(ids, c.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	provinces, err := r.provincesFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range courts {
		courts[i].Provinces = provinces[courts[i].ID]
	}
	return courts, nil
}

// provincesFor loads province rows for many courts in one query.
func (r *CourtRepo) provincesFor(ctx context.Context, courtIDs []string) (map[string][]domain.Province, error) {
	if len(courtIDs) == 0 {
		return nil, nil
	}

	rows, err := r.db.Pool.Query(ctx, `
		SELECT cp.court_id, p.id, p.name
		FROM court_provinces cp
		JOIN provinces p ON p.id = cp.province_id
		WHERE cp.court_id = ANY($1)
		ORDER BY p.name
	`, courtIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byCourt := make(map[string][]domain.Province, len(courtIDs))
	for rows.Next() {
		var courtID string
		var p domain.Province
		if err := rows.Scan(&courtID, &p.ID, &p.Name); err != nil {
			return nil, err
		}
		byCourt[courtID] = append(byCourt[courtID], p)
	}
	return byCourt, rows.Err()
}

func replaceProvinces(ctx context.Context, tx pgx.Tx, courtID string, provinces []domain.Province) error {
	if len(provinces) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, p := range provinces {
		batch.Queue(`
			INSERT INTO court_provinces (court_id, province_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, courtID, p.ID)
	}
	br := tx.SendBatch(ctx, batch)
	defer br.Close()
	for range provinces {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("link province: %w", err)
		}
	}
	return nil
}
