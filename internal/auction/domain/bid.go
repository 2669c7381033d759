package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/openmarket/auctions/internal/shared/money"
)

// Bid is an amount offered by a user for a listing. Bids are created only
// through admission on the Listing aggregate and are never mutated after
// creation; corrections are modeled as a new bid or an administrative
// removal followed by a ledger recompute.
type Bid struct {
	ID        uuid.UUID
	ListingID uuid.UUID
	BidderID  uuid.UUID
	Amount    money.Money
	PlacedAt  time.Time
}

// NewBid creates a new Bid instance.
func NewBid(id, listingID, bidderID uuid.UUID, amount money.Money, placedAt time.Time) *Bid {
	return &Bid{
		ID:        id,
		ListingID: listingID,
		BidderID:  bidderID,
		Amount:    amount,
		PlacedAt:  placedAt,
	}
}
