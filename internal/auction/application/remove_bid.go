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

// RemoveBidUseCase deletes a bid as an administrative correction. The bid
// row is removed and the listing's cached price re-derived from the
// remaining bids in one transaction, so the cache never observably drifts
// from the live maximum. Historical bid amounts are never edited in place.
type RemoveBidUseCase struct {
	listings domain.ListingRepository
	bids     domain.BidRepository
	pool     *pgxpool.Pool
}

func NewRemoveBidUseCase(listings domain.ListingRepository, bids domain.BidRepository, pool *pgxpool.Pool) *RemoveBidUseCase {
	return &RemoveBidUseCase{
		listings: listings,
		bids:     bids,
		pool:     pool,
	}
}

func (uc *RemoveBidUseCase) Execute(ctx context.Context, listingID, bidID uuid.UUID) error {
	log.Info("Executing RemoveBid",
		zap.String("listingID", listingID.String()),
		zap.String("bidID", bidID.String()),
	)

	return inTx(ctx, uc.pool, func(tx pgx.Tx) error {
		listing, err := uc.listings.GetByIDForUpdate(ctx, tx, listingID)
		if err != nil {
			return fmt.Errorf("remove bid: load listing %s: %w", listingID, err)
		}

		bids, err := uc.bids.ListByListingTx(ctx, tx, listingID)
		if err != nil {
			return fmt.Errorf("remove bid: load bids for listing %s: %w", listingID, err)
		}
		listing.Bids = bids

		if err := listing.RemoveBid(bidID); err != nil {
			return fmt.Errorf("remove bid: listing %s: %w", listingID, err)
		}
		if err := uc.bids.Delete(ctx, tx, bidID); err != nil {
			return fmt.Errorf("remove bid: delete bid %s: %w", bidID, err)
		}
		if err := uc.listings.Save(ctx, tx, listing); err != nil {
			return fmt.Errorf("remove bid: save listing %s: %w", listingID, err)
		}
		return nil
	})
}
