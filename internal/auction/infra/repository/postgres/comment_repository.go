package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/openmarket/auctions/internal/auction/domain"
)

// CommentRepository implements domain.CommentRepository on PostgreSQL.
type CommentRepository struct {
	pool *pgxpool.Pool
}

func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

func (r *CommentRepository) Insert(ctx context.Context, comment *domain.Comment) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO comments (id, listing_id, user_id, body, created_at) VALUES ($1, $2, $3, $4, $5)`,
		comment.ID, comment.ListingID, comment.UserID, comment.Body, comment.CreatedAt,
	)
	return err
}

func (r *CommentRepository) ListByListing(ctx context.Context, listingID uuid.UUID) ([]*domain.Comment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, listing_id, user_id, body, created_at FROM comments WHERE listing_id = $1 ORDER BY created_at ASC`,
		listingID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*domain.Comment
	for rows.Next() {
		c := &domain.Comment{}
		if err := rows.Scan(&c.ID, &c.ListingID, &c.UserID, &c.Body, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return comments, nil
}
