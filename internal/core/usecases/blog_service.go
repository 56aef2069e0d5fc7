package usecases

import (
	"context"

	"github.com/geloraapp/gelora/internal/core/domain"
	"github.com/geloraapp/gelora/internal/core/ports"
)

// BlogService handles blog posts. Reads are public; writes are admin-only
// and the handler layer enforces the role before calling in.
type BlogService struct {
	posts ports.BlogRepository
}

// NewBlogService creates a new BlogService.
func NewBlogService(posts ports.BlogRepository) *BlogService {
	return &BlogService{posts: posts}
}

// List returns all posts, newest first.
func (s *BlogService) List(ctx context.Context) ([]domain.BlogPost, error) {
	return s.posts.List(ctx)
}

// GetByID returns a single post.
func (s *BlogService) GetByID(ctx context.Context, id string) (*domain.BlogPost, error) {
	return s.posts.GetByID(ctx, id)
}

// Create publishes a new post. Author defaults to "Admin".
func (s *BlogService) Create(ctx context.Context, post *domain.BlogPost) error {
	if post.Author == "" {
		post.Author = "Admin"
	}
	if err := post.Validate(); err != nil {
		return err
	}
	return s.posts.Create(ctx, post)
}

// Update edits an existing post.
func (s *BlogService) Update(ctx context.Context, id string, post *domain.BlogPost) (*domain.BlogPost, error) {
	existing, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	post.ID = existing.ID
	post.CreatedAt = existing.CreatedAt
	if post.Author == "" {
		post.Author = existing.Author
	}
	if err := post.Validate(); err != nil {
		return nil, err
	}
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete removes a post.
func (s *BlogService) Delete(ctx context.Context, id string) error {
	if _, err := s.posts.GetByID(ctx, id); err != nil {
		return err
	}
	return s.posts.Delete(ctx, id)
}
