package post

import "context"

// Repository defines the post lookup interface
type Repository interface {
	// GetByID returns the post with the given id, or ErrPostNotFound.
	GetByID(ctx context.Context, id int64) (*Post, error)

	// Create persists a post and returns its id.
	Create(ctx context.Context, p *Post) (int64, error)
}
