package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/openmarket/auctions/internal/auction/domain"
)

// WatchlistRepository implements domain.WatchlistRepository on PostgreSQL.
type WatchlistRepository struct {
	pool *pgxpool.Pool
}

func NewWatchlistRepository(pool *pgxpool.Pool) *WatchlistRepository {
	return &WatchlistRepository{pool: pool}
}

func (r *WatchlistRepository) Add(ctx context.Context, userID, listingID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO watchlists (user_id, listing_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		userID, listingID,
	)
	return err
}

func (r *WatchlistRepository) Remove(ctx context.Context, userID, listingID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM watchlists WHERE user_id = $1 AND listing_id = $2`,
		userID, listingID,
	)
	return err
}

func (r *WatchlistRepository) ListListings(ctx context.Context, userID uuid.UUID) ([]*domain.Listing, error) {
	query := `
        SELECT l.id, l.title, l.description, l.image_url, l.category_id, l.owner_id,
            l.starting_price, l.current_price, l.highest_bid_id, l.active, l.winner_id,
            l.created_at, l.updated_at
        FROM listings l
        JOIN watchlists w ON w.listing_id = l.id
        WHERE w.user_id = $1
        ORDER BY l.created_at DESC
    `
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectListings(rows)
}
