package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/openmarket/auctions/internal/auction/domain"
)

const listingColumns = `id, title, description, image_url, category_id, owner_id,
	starting_price, current_price, highest_bid_id, active, winner_id, created_at, updated_at`

// ListingRepository implements domain.ListingRepository on PostgreSQL.
type ListingRepository struct {
	pool *pgxpool.Pool
}

func NewListingRepository(pool *pgxpool.Pool) *ListingRepository {
	return &ListingRepository{pool: pool}
}

func scanListing(row pgx.Row) (*domain.Listing, error) {
	l := &domain.Listing{}
	err := row.Scan(
		&l.ID,
		&l.Title,
		&l.Description,
		&l.ImageURL,
		&l.CategoryID,
		&l.OwnerID,
		&l.StartingPrice,
		&l.CurrentPrice,
		&l.HighestBidID,
		&l.Active,
		&l.WinnerID,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrListingNotFound
		}
		return nil, err
	}
	return l, nil
}

func (r *ListingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = $1`
	return scanListing(r.pool.QueryRow(ctx, query, id))
}

// GetByIDForUpdate row-locks the listing so concurrent writers on the same
// listing serialize; the bid-set check is then evaluated against post-lock
// state rather than a stale read.
func (r *ListingRepository) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = $1 FOR UPDATE`
	return scanListing(tx.QueryRow(ctx, query, id))
}

// Save upserts the listing row, including the cached current_price and
// highest_bid_id columns, which must always be written in the same
// transaction as the bid mutation that changed them.
func (r *ListingRepository) Save(ctx context.Context, tx pgx.Tx, listing *domain.Listing) error {
	query := `
        INSERT INTO listings (id, title, description, image_url, category_id, owner_id,
            starting_price, current_price, highest_bid_id, active, winner_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        ON CONFLICT (id) DO UPDATE
        SET
            title = EXCLUDED.title,
            description = EXCLUDED.description,
            image_url = EXCLUDED.image_url,
            category_id = EXCLUDED.category_id,
            current_price = EXCLUDED.current_price,
            highest_bid_id = EXCLUDED.highest_bid_id,
            active = EXCLUDED.active,
            winner_id = EXCLUDED.winner_id,
            updated_at = NOW();
    `
	_, err := tx.Exec(ctx, query,
		listing.ID,
		listing.Title,
		listing.Description,
		listing.ImageURL,
		listing.CategoryID,
		listing.OwnerID,
		listing.StartingPrice,
		listing.CurrentPrice,
		listing.HighestBidID,
		listing.Active,
		listing.WinnerID,
	)
	return err
}

func (r *ListingRepository) ListActive(ctx context.Context) ([]*domain.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE active ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectListings(rows)
}

func (r *ListingRepository) ListActiveByCategory(ctx context.Context, categoryID uuid.UUID) ([]*domain.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE active AND category_id = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectListings(rows)
}

func collectListings(rows pgx.Rows) ([]*domain.Listing, error) {
	var listings []*domain.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return listings, nil
}
