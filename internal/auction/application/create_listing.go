package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/openmarket/auctions/internal/auction/domain"
	"github.com/openmarket/auctions/internal/shared/money"
)

// CreateListingDTO is the input for opening a new auction listing.
type CreateListingDTO struct {
	OwnerID       uuid.UUID
	Title         string
	Description   string
	ImageURL      string
	CategoryID    uuid.UUID
	StartingPrice money.Money
}

// CreateListingUseCase opens a new listing priced at its starting price.
// The price field is derived state from the start: the listing is created
// with no bids and its cached price equal to the starting price.
type CreateListingUseCase struct {
	listings   domain.ListingRepository
	categories domain.CategoryRepository
	pool       *pgxpool.Pool
}

func NewCreateListingUseCase(listings domain.ListingRepository, categories domain.CategoryRepository, pool *pgxpool.Pool) *CreateListingUseCase {
	return &CreateListingUseCase{
		listings:   listings,
		categories: categories,
		pool:       pool,
	}
}

func (uc *CreateListingUseCase) Execute(ctx context.Context, cmd CreateListingDTO) (*domain.Listing, error) {
	if _, err := uc.categories.GetByID(ctx, cmd.CategoryID); err != nil {
		return nil, fmt.Errorf("create listing: category %s: %w", cmd.CategoryID, err)
	}

	listing := domain.NewListing(uuid.New(), cmd.Title, cmd.Description, cmd.ImageURL, cmd.CategoryID, cmd.OwnerID, cmd.StartingPrice)
	listing.CreatedAt = time.Now().UTC()

	err := inTx(ctx, uc.pool, func(tx pgx.Tx) error {
		return uc.listings.Save(ctx, tx, listing)
	})
	if err != nil {
		return nil, fmt.Errorf("create listing: save: %w", err)
	}

	log.Info("Listing created",
		zap.String("listingID", listing.ID.String()),
		zap.String("ownerID", cmd.OwnerID.String()),
		zap.String("startingPrice", cmd.StartingPrice.String()),
	)
	return listing, nil
}
