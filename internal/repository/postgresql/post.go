package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/qanda-labs/engage-backend-go/internal/domain/post"
	"github.com/qanda-labs/engage-backend-go/internal/pkg/database"
)

type postRepository struct {
	db *database.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *database.DB) post.Repository {
	return &postRepository{db: db}
}

// GetByID retrieves a post by ID
func (r *postRepository) GetByID(ctx context.Context, id int64) (*post.Post, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, author_id, post_type, parent_id, title, created_at
		FROM posts
		WHERE id = $1
	`

	var p post.Post
	var postType string

	err := q.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.AuthorID,
		&postType,
		&p.ParentID,
		&p.Title,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, post.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	p.Type = post.Type(postType)
	return &p, nil
}

// Create persists a post and returns its id.
func (r *postRepository) Create(ctx context.Context, p *post.Post) (int64, error) {
	q := GetQuerier(ctx, r.db)

	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO posts (author_id, post_type, parent_id, title, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int64
	err := q.QueryRow(ctx, query,
		p.AuthorID,
		string(p.Type),
		p.ParentID,
		p.Title,
		p.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create post: %w", err)
	}

	p.ID = id
	return id, nil
}
