package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/openmarket/auctions/internal/auction/domain"
)

// BidRepository implements domain.BidRepository on PostgreSQL. Bid rows are
// append-mostly: they are inserted by admission and removed only by the
// administrative correction path.
type BidRepository struct {
	pool *pgxpool.Pool
}

func NewBidRepository(pool *pgxpool.Pool) *BidRepository {
	return &BidRepository{pool: pool}
}

func (r *BidRepository) Insert(ctx context.Context, tx pgx.Tx, bid *domain.Bid) error {
	query := `
        INSERT INTO bids (id, listing_id, bidder_id, amount, placed_at)
        VALUES ($1, $2, $3, $4, $5)
    `
	_, err := tx.Exec(ctx, query,
		bid.ID,
		bid.ListingID,
		bid.BidderID,
		bid.Amount,
		bid.PlacedAt,
	)
	return err
}

func (r *BidRepository) Delete(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	tag, err := tx.Exec(ctx, `DELETE FROM bids WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBidNotFound
	}
	return nil
}

const bidsByListingQuery = `
        SELECT id, listing_id, bidder_id, amount, placed_at
        FROM bids
        WHERE listing_id = $1
        ORDER BY placed_at ASC
    `

func (r *BidRepository) ListByListing(ctx context.Context, listingID uuid.UUID) ([]*domain.Bid, error) {
	rows, err := r.pool.Query(ctx, bidsByListingQuery, listingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBids(rows)
}

func (r *BidRepository) ListByListingTx(ctx context.Context, tx pgx.Tx, listingID uuid.UUID) ([]*domain.Bid, error) {
	rows, err := tx.Query(ctx, bidsByListingQuery, listingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBids(rows)
}

func collectBids(rows pgx.Rows) ([]*domain.Bid, error) {
	var bids []*domain.Bid
	for rows.Next() {
		bid := &domain.Bid{}
		err := rows.Scan(
			&bid.ID,
			&bid.ListingID,
			&bid.BidderID,
			&bid.Amount,
			&bid.PlacedAt,
		)
		if err != nil {
			return nil, err
		}
		bids = append(bids, bid)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bids, nil
}
