package postgres

import (
	"context"
	"errors"

	"github.com/geloraapp/gelora/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// BlogRepo implements ports.BlogRepository with pgx.
type BlogRepo struct {
	db *DB
}

// NewBlogRepo creates a new BlogRepo.
func NewBlogRepo(db *DB) *BlogRepo {
	return &BlogRepo{db: db}
}

// Create inserts a post.
func (r *BlogRepo) Create(ctx context.Context, post *domain.BlogPost) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO blog_posts (author, thumbnail_url, title, content)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, post.Author, post.ThumbnailURL, post.Title, post.Content,
	).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
}

// Update replaces a post's attributes.
func (r *BlogRepo) Update(ctx context.Context, post *domain.BlogPost) error {
	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE blog_posts
		SET author = $2, thumbnail_url = $3, title = $4, content = $5, updated_at = now()
		WHERE id = $1
	`, post.ID, post.Author, post.ThumbnailURL, post.Title, post.Content)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a post.
func (r *BlogRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID returns a post.
func (r *BlogRepo) GetByID(ctx context.Context, id string) (*domain.BlogPost, error) {
	var p domain.BlogPost
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, COALESCE(author, ''), COALESCE(thumbnail_url, ''), title, content,
		       created_at, updated_at
		FROM blog_posts WHERE id = $1
	`, id).Scan(&p.ID, &p.Author, &p.ThumbnailURL, &p.Title, &p.Content, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns all posts, newest first.
func (r *BlogRepo) List(ctx context.Context) ([]domain.BlogPost, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, COALESCE(author, ''), COALESCE(thumbnail_url, ''), title, content,
		       created_at, updated_at
		FROM blog_posts
		ORDER BY created_at DESC, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []domain.BlogPost
	for rows.Next() {
		var p domain.BlogPost
		if err := rows.Scan(&p.ID, &p.Author, &p.ThumbnailURL, &p.Title, &p.Content, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}
