package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/openmarket/auctions/internal/auction/domain"
	"github.com/openmarket/auctions/internal/shared/money"
)

// ListingStateDTO is the read model exposed to the transport layer.
type ListingStateDTO struct {
	ListingID     uuid.UUID   `json:"listing_id"`
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	ImageURL      string      `json:"image_url,omitempty"`
	CategoryID    uuid.UUID   `json:"category_id"`
	OwnerID       uuid.UUID   `json:"owner_id"`
	StartingPrice money.Money `json:"starting_price"`
	CurrentPrice  money.Money `json:"current_price"`
	Active        bool        `json:"active"`
	WinnerID      *uuid.UUID  `json:"winner_id,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`

	HighestBid *BidDTO `json:"highest_bid,omitempty"`
}

// BidDTO is the wire shape of a single bid.
type BidDTO struct {
	BidID     uuid.UUID   `json:"bid_id"`
	ListingID uuid.UUID   `json:"listing_id"`
	BidderID  uuid.UUID   `json:"bidder_id"`
	Amount    money.Money `json:"amount"`
	PlacedAt  time.Time   `json:"placed_at"`
}

func toBidDTO(b *domain.Bid) *BidDTO {
	if b == nil {
		return nil
	}
	return &BidDTO{
		BidID:     b.ID,
		ListingID: b.ListingID,
		BidderID:  b.BidderID,
		Amount:    b.Amount,
		PlacedAt:  b.PlacedAt,
	}
}

// GetListingUseCase assembles the read model for a single listing,
// including its current price and the bid realizing it.
type GetListingUseCase struct {
	listings domain.ListingRepository
	bids     domain.BidRepository
}

func NewGetListingUseCase(listings domain.ListingRepository, bids domain.BidRepository) *GetListingUseCase {
	return &GetListingUseCase{
		listings: listings,
		bids:     bids,
	}
}

func (uc *GetListingUseCase) Execute(ctx context.Context, listingID uuid.UUID) (*ListingStateDTO, error) {
	listing, err := uc.listings.GetByID(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("get listing %s: %w", listingID, err)
	}

	bids, err := uc.bids.ListByListing(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("get listing %s: load bids: %w", listingID, err)
	}
	listing.Bids = bids
	listing.Recompute()

	return &ListingStateDTO{
		ListingID:     listing.ID,
		Title:         listing.Title,
		Description:   listing.Description,
		ImageURL:      listing.ImageURL,
		CategoryID:    listing.CategoryID,
		OwnerID:       listing.OwnerID,
		StartingPrice: listing.StartingPrice,
		CurrentPrice:  listing.CurrentPrice,
		Active:        listing.Active,
		WinnerID:      listing.WinnerID,
		CreatedAt:     listing.CreatedAt,
		HighestBid:    toBidDTO(listing.HighestBid()),
	}, nil
}
