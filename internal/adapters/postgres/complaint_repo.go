package postgres

import (
	"context"
	"errors"

	"github.com/geloraapp/gelora/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// ComplaintRepo implements ports.ComplaintRepository with pgx.
type ComplaintRepo struct {
	db *DB
}

// NewComplaintRepo creates a new ComplaintRepo.
func NewComplaintRepo(db *DB) *ComplaintRepo {
	return &ComplaintRepo{db: db}
}

// Create inserts a complaint.
func (r *ComplaintRepo) Create(ctx context.Context, c *domain.Complaint) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO complaints (user_id, court_name, subject, description, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, c.UserID, c.CourtName, c.Subject, c.Description, c.Status,
	).Scan(&c.ID, &c.CreatedAt)
}

// Delete removes a complaint.
func (r *ComplaintRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM complaints WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID returns a complaint.
func (r *ComplaintRepo) GetByID(ctx context.Context, id string) (*domain.Complaint, error) {
	var c domain.Complaint
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, user_id, court_name, subject, description, status, created_at
		FROM complaints WHERE id = $1
	`, id).Scan(&c.ID, &c.UserID, &c.CourtName, &c.Subject, &c.Description, &c.Status, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByUser returns one user's complaints, newest first.
func (r *ComplaintRepo) ListByUser(ctx context.Context, userID string) ([]domain.Complaint, error) {
	return r.list(ctx, `WHERE user_id = $1`, userID)
}

// ListAll returns every complaint, newest first.
func (r *ComplaintRepo) ListAll(ctx context.Context) ([]domain.Complaint, error) {
	return r.list(ctx, ``)
}

func (r *ComplaintRepo) list(ctx context.Context, where string, args ...any) ([]domain.Complaint, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, user_id, court_name, subject, description, status, created_at
		FROM complaints `+where+`
		ORDER BY created_at DESC, id
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var complaints []domain.Complaint
	for rows.Next() {
		var c domain.Complaint
		if err := rows.Scan(&c.ID, &c.UserID, &c.CourtName, &c.Subject, &c.Description, &c.Status, &c.CreatedAt); err != nil {
			return nil, err
		}
		complaints = append(complaints, c)
	}
	return complaints, rows.Err()
}

// UpdateStatus moves a complaint to a new workflow state.
func (r *ComplaintRepo) UpdateStatus(ctx context.Context, id string, status domain.ComplaintStatus) error {
	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE complaints SET status = $2 WHERE id = $1
	`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
