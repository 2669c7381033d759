package domain

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ListingRepository interface {
	// GetByID loads the listing row without its bids; the cached price
	// columns are sufficient for read paths.
	GetByID(ctx context.Context, id uuid.UUID) (*Listing, error)
	// GetByIDForUpdate loads and row-locks the listing inside tx so
	// concurrent writers on the same listing serialize.
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*Listing, error)
	Save(ctx context.Context, tx pgx.Tx, listing *Listing) error
	ListActive(ctx context.Context) ([]*Listing, error)
	ListActiveByCategory(ctx context.Context, categoryID uuid.UUID) ([]*Listing, error)
}

type BidRepository interface {
	Insert(ctx context.Context, tx pgx.Tx, bid *Bid) error
	Delete(ctx context.Context, tx pgx.Tx, id uuid.UUID) error
	ListByListing(ctx context.Context, listingID uuid.UUID) ([]*Bid, error)
	// ListByListingTx reads the bid set inside the caller's transaction so
	// admission evaluates against post-lock state, never a stale read.
	ListByListingTx(ctx context.Context, tx pgx.Tx, listingID uuid.UUID) ([]*Bid, error)
}

type CategoryRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Category, error)
	GetByName(ctx context.Context, name string) (*Category, error)
	List(ctx context.Context) ([]*Category, error)
	Insert(ctx context.Context, category *Category) error
}

type CommentRepository interface {
	Insert(ctx context.Context, comment *Comment) error
	ListByListing(ctx context.Context, listingID uuid.UUID) ([]*Comment, error)
}

type WatchlistRepository interface {
	Add(ctx context.Context, userID, listingID uuid.UUID) error
	Remove(ctx context.Context, userID, listingID uuid.UUID) error
	ListListings(ctx context.Context, userID uuid.UUID) ([]*Listing, error)
}
