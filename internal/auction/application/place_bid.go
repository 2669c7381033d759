package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/openmarket/auctions/internal/auction/domain"
	"github.com/openmarket/auctions/internal/shared/logger"
	"github.com/openmarket/auctions/internal/shared/money"
)

var log = logger.GetLogger()

// PlaceBidDTO carries the data needed to admit a bid. The amount has
// already passed Money parsing at the transport boundary.
type PlaceBidDTO struct {
	ListingID uuid.UUID
	BidderID  uuid.UUID
	Amount    money.Money
}

// PlaceBidUseCase admits a bid against a listing and persists the bid
// together with the recomputed price cache in one transaction. The listing
// row is locked first, so two simultaneous bids on the same listing
// serialize and the second is re-evaluated against the post-lock price.
type PlaceBidUseCase struct {
	listings domain.ListingRepository
	bids     domain.BidRepository
	pool     *pgxpool.Pool
	policy   domain.BidPolicy
}

func NewPlaceBidUseCase(listings domain.ListingRepository, bids domain.BidRepository, pool *pgxpool.Pool, policy domain.BidPolicy) *PlaceBidUseCase {
	return &PlaceBidUseCase{
		listings: listings,
		bids:     bids,
		pool:     pool,
		policy:   policy,
	}
}

func (uc *PlaceBidUseCase) Execute(ctx context.Context, cmd PlaceBidDTO) (*domain.Bid, error) {
	log.Info("Executing PlaceBid",
		zap.String("listingID", cmd.ListingID.String()),
		zap.String("bidderID", cmd.BidderID.String()),
		zap.String("amount", cmd.Amount.String()),
	)

	var placed *domain.Bid
	err := inTx(ctx, uc.pool, func(tx pgx.Tx) error {
		listing, err := uc.listings.GetByIDForUpdate(ctx, tx, cmd.ListingID)
		if err != nil {
			return fmt.Errorf("place bid: load listing %s: %w", cmd.ListingID, err)
		}

		bids, err := uc.bids.ListByListingTx(ctx, tx, cmd.ListingID)
		if err != nil {
			return fmt.Errorf("place bid: load bids for listing %s: %w", cmd.ListingID, err)
		}
		listing.Bids = bids
		// the bid set is authoritative; re-derive the cache before admission
		listing.Recompute()

		placed, err = listing.PlaceBid(cmd.BidderID, cmd.Amount, uc.policy)
		if err != nil {
			return fmt.Errorf("place bid: listing %s: %w", cmd.ListingID, err)
		}

		if err := uc.bids.Insert(ctx, tx, placed); err != nil {
			return fmt.Errorf("place bid: save bid for listing %s: %w", cmd.ListingID, err)
		}
		if err := uc.listings.Save(ctx, tx, listing); err != nil {
			return fmt.Errorf("place bid: save listing %s: %w", cmd.ListingID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return placed, nil
}
