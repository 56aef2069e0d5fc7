package postgres

import (
	"context"
	"errors"

	"github.com/geloraapp/gelora/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// ProvinceRepo implements ports.ProvinceRepository with pgx.
type ProvinceRepo struct {
	db *DB
}

// NewProvinceRepo creates a new ProvinceRepo.
func NewProvinceRepo(db *DB) *ProvinceRepo {
	return &ProvinceRepo{db: db}
}

// List returns all provinces in name order.
func (r *ProvinceRepo) List(ctx context.Context) ([]domain.Province, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, name, created_at FROM provinces ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var provinces []domain.Province
	for rows.Next() {
		var p domain.Province
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt); err != nil {
			return nil, err
		}
		provinces = append(provinces, p)
	}
	return provinces, rows.Err()
}

// GetByID returns a single province.
func (r *ProvinceRepo) GetByID(ctx context.Context, id string) (*domain.Province, error) {
	var p domain.Province
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, name, created_at FROM provinces WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
