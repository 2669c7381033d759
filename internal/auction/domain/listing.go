package domain

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/openmarket/auctions/internal/shared/logger"
	"github.com/openmarket/auctions/internal/shared/money"
)

var log = logger.GetLogger()

// BidPolicy carries the configurable admission rules that are not hard
// invariants of the ledger.
type BidPolicy struct {
	// AllowOwnerBids permits the listing owner to bid on their own listing.
	AllowOwnerBids bool
}

// Listing is the aggregate root of an auction. It exclusively owns its bid
// collection; the CurrentPrice and HighestBidID fields are cached
// read-optimizations that are always re-derivable from the bid set and must
// be persisted in the same transaction as any bid mutation.
type Listing struct {
	ID            uuid.UUID
	Title         string
	Description   string
	ImageURL      string
	CategoryID    uuid.UUID
	OwnerID       uuid.UUID
	StartingPrice money.Money
	CurrentPrice  money.Money
	HighestBidID  *uuid.UUID
	Active        bool
	WinnerID      *uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// guards in-process mutation of the loaded bid set
	mu sync.Mutex
	// bids loaded for this aggregate, ordered by PlacedAt ascending
	Bids []*Bid
}

// NewListing creates an open listing priced at its starting price.
func NewListing(id uuid.UUID, title, description, imageURL string, categoryID, ownerID uuid.UUID, startingPrice money.Money) *Listing {
	return &Listing{
		ID:            id,
		Title:         title,
		Description:   description,
		ImageURL:      imageURL,
		CategoryID:    categoryID,
		OwnerID:       ownerID,
		StartingPrice: startingPrice,
		CurrentPrice:  startingPrice,
		Active:        true,
		Bids:          []*Bid{},
	}
}

// PlaceBid admits a new bid against the listing's current state. The bid
// must be strictly greater than the current price; equality is rejected,
// including against the starting price for the very first bid.
func (l *Listing) PlaceBid(bidderID uuid.UUID, amount money.Money, policy BidPolicy) (*Bid, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.Active {
		log.Warn("Bid rejected: auction closed",
			zap.String("listingID", l.ID.String()),
			zap.String("bidderID", bidderID.String()),
			zap.String("amount", amount.String()),
		)
		return nil, ErrAuctionClosed
	}

	if !policy.AllowOwnerBids && bidderID == l.OwnerID {
		log.Warn("Bid rejected: owner bid not permitted",
			zap.String("listingID", l.ID.String()),
			zap.String("bidderID", bidderID.String()),
		)
		return nil, ErrOwnerBid
	}

	if !amount.GreaterThan(l.CurrentPrice) {
		log.Warn("Bid rejected: amount too low",
			zap.String("listingID", l.ID.String()),
			zap.String("bidderID", bidderID.String()),
			zap.String("amount", amount.String()),
			zap.String("currentPrice", l.CurrentPrice.String()),
		)
		return nil, ErrBidTooLow
	}

	newBid := NewBid(uuid.New(), l.ID, bidderID, amount, time.Now().UTC())
	l.Bids = append(l.Bids, newBid)
	l.recomputeLocked()

	log.Info("Bid placed",
		zap.String("listingID", l.ID.String()),
		zap.String("bidID", newBid.ID.String()),
		zap.String("bidderID", bidderID.String()),
		zap.String("amount", amount.String()),
		zap.String("newCurrentPrice", l.CurrentPrice.String()),
	)

	return newBid, nil
}

// RemoveBid deletes a bid as an administrative correction and re-derives
// the cached price from the remaining bids.
func (l *Listing) RemoveBid(bidID uuid.UUID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := -1
	for i, b := range l.Bids {
		if b.ID == bidID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrBidNotFound
	}
	l.Bids = append(l.Bids[:idx], l.Bids[idx+1:]...)
	l.recomputeLocked()

	log.Info("Bid removed",
		zap.String("listingID", l.ID.String()),
		zap.String("bidID", bidID.String()),
		zap.String("newCurrentPrice", l.CurrentPrice.String()),
	)
	return nil
}

// Close transitions the listing from open to closed. The transition is
// one-way and owner-only; a second close fails rather than no-op. The
// winner is the bidder of the highest standing bid, or unset when the
// listing never received a bid.
func (l *Listing) Close(requesterID uuid.UUID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if requesterID != l.OwnerID {
		log.Warn("Close rejected: requester is not the owner",
			zap.String("listingID", l.ID.String()),
			zap.String("requesterID", requesterID.String()),
		)
		return ErrNotOwner
	}
	if !l.Active {
		log.Warn("Close rejected: already closed",
			zap.String("listingID", l.ID.String()),
		)
		return ErrAlreadyClosed
	}

	l.Active = false
	if top := l.highestBidLocked(); top != nil {
		winner := top.BidderID
		l.WinnerID = &winner
	}

	log.Info("Auction closed",
		zap.String("listingID", l.ID.String()),
		zap.String("finalPrice", l.CurrentPrice.String()),
		zap.Bool("hasWinner", l.WinnerID != nil),
	)
	return nil
}

// Recompute re-derives the cached current price and highest-bid pointer
// from the loaded bid set. It must be invoked, and its result persisted,
// in the same transaction as every mutation of the bid set.
func (l *Listing) Recompute() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.recomputeLocked()
}

func (l *Listing) recomputeLocked() {
	top := l.highestBidLocked()
	if top == nil {
		l.CurrentPrice = l.StartingPrice
		l.HighestBidID = nil
		return
	}
	l.CurrentPrice = top.Amount
	id := top.ID
	l.HighestBidID = &id
}

// HighestBid returns the standing bid that realizes the current price, or
// nil when the listing has no bids.
func (l *Listing) HighestBid() *Bid {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.highestBidLocked()
}

// highestBidLocked scans for the maximum amount; ties break to the earliest
// PlacedAt, since the first bid to reach an amount stands and a later
// equal bid is inadmissible anyway.
func (l *Listing) highestBidLocked() *Bid {
	var top *Bid
	for _, b := range l.Bids {
		if top == nil {
			top = b
			continue
		}
		if b.Amount.GreaterThan(top.Amount) ||
			(b.Amount.Equal(top.Amount) && b.PlacedAt.Before(top.PlacedAt)) {
			top = b
		}
	}
	return top
}
