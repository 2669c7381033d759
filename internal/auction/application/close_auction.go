package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/openmarket/auctions/internal/auction/domain"
)

// CloseAuctionUseCase freezes a listing's price and fixes its winner. The
// active flag and winner are written in the same transaction so no caller
// sees one without the other.
type CloseAuctionUseCase struct {
	listings domain.ListingRepository
	bids     domain.BidRepository
	pool     *pgxpool.Pool
}

func NewCloseAuctionUseCase(listings domain.ListingRepository, bids domain.BidRepository, pool *pgxpool.Pool) *CloseAuctionUseCase {
	return &CloseAuctionUseCase{
		listings: listings,
		bids:     bids,
		pool:     pool,
	}
}

func (uc *CloseAuctionUseCase) Execute(ctx context.Context, listingID, requesterID uuid.UUID) (*domain.Listing, error) {
	log.Info("Executing CloseAuction",
		zap.String("listingID", listingID.String()),
		zap.String("requesterID", requesterID.String()),
	)

	var closed *domain.Listing
	err := inTx(ctx, uc.pool, func(tx pgx.Tx) error {
		listing, err := uc.listings.GetByIDForUpdate(ctx, tx, listingID)
		if err != nil {
			return fmt.Errorf("close auction: load listing %s: %w", listingID, err)
		}

		bids, err := uc.bids.ListByListingTx(ctx, tx, listingID)
		if err != nil {
			return fmt.Errorf("close auction: load bids for listing %s: %w", listingID, err)
		}
		listing.Bids = bids
		listing.Recompute()

		if err := listing.Close(requesterID); err != nil {
			return fmt.Errorf("close auction: listing %s: %w", listingID, err)
		}
		if err := uc.listings.Save(ctx, tx, listing); err != nil {
			return fmt.Errorf("close auction: save listing %s: %w", listingID, err)
		}
		closed = listing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return closed, nil
}
