package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/openmarket/auctions/internal/shared/money"
)

var allowAll = BidPolicy{AllowOwnerBids: true}

func newTestListing(t *testing.T, startingPrice string) *Listing {
	t.Helper()
	return NewListing(
		uuid.New(),
		"Vintage laptop",
		"Working condition.",
		"",
		uuid.New(),
		uuid.New(),
		money.MustParse(startingPrice),
	)
}

func TestPlaceBid_FirstBidMustExceedStartingPrice(t *testing.T) {
	t.Parallel()

	l := newTestListing(t, "100.00")
	bidder := uuid.New()

	// equality against the starting price is not admissible
	_, err := l.PlaceBid(bidder, money.MustParse("100.00"), allowAll)
	require.ErrorIs(t, err, ErrBidTooLow)
	require.Equal(t, "100.00", l.CurrentPrice.String())
	require.Nil(t, l.HighestBid())

	bid, err := l.PlaceBid(bidder, money.MustParse("100.01"), allowAll)
	require.NoError(t, err)
	require.Equal(t, "100.01", l.CurrentPrice.String())
	require.Equal(t, bid.ID, l.HighestBid().ID)
}

func TestPlaceBid_FullScenario(t *testing.T) {
	t.Parallel()

	l := newTestListing(t, "100.00")
	userA := uuid.New()
	userB := uuid.New()

	_, err := l.PlaceBid(userA, money.MustParse("100.00"), allowAll)
	require.ErrorIs(t, err, ErrBidTooLow)

	_, err = l.PlaceBid(userA, money.MustParse("150.00"), allowAll)
	require.NoError(t, err)
	require.Equal(t, "150.00", l.CurrentPrice.String())

	_, err = l.PlaceBid(userB, money.MustParse("120.00"), allowAll)
	require.ErrorIs(t, err, ErrBidTooLow)
	require.Equal(t, "150.00", l.CurrentPrice.String())

	_, err = l.PlaceBid(userB, money.MustParse("200.00"), allowAll)
	require.NoError(t, err)
	require.Equal(t, "200.00", l.CurrentPrice.String())
	require.Equal(t, userB, l.HighestBid().BidderID)

	require.NoError(t, l.Close(l.OwnerID))
	require.False(t, l.Active)
	require.NotNil(t, l.WinnerID)
	require.Equal(t, userB, *l.WinnerID)

	// the price is frozen: every subsequent bid fails before mutation
	_, err = l.PlaceBid(userA, money.MustParse("500.00"), allowAll)
	require.ErrorIs(t, err, ErrAuctionClosed)
	require.Equal(t, "200.00", l.CurrentPrice.String())
	require.Equal(t, userB, *l.WinnerID)
}

func TestPlaceBid_PriceAlwaysMatchesMaximum(t *testing.T) {
	t.Parallel()

	l := newTestListing(t, "10.00")
	amounts := []string{"10.50", "11.00", "25.00", "25.01", "100.00"}
	for _, a := range amounts {
		_, err := l.PlaceBid(uuid.New(), money.MustParse(a), allowAll)
		require.NoError(t, err)
		require.Equal(t, money.MustParse(a).String(), l.CurrentPrice.String())
		require.Equal(t, l.HighestBid().Amount.String(), l.CurrentPrice.String())
	}
}

func TestPlaceBid_OwnerPolicy(t *testing.T) {
	t.Parallel()

	l := newTestListing(t, "50.00")

	_, err := l.PlaceBid(l.OwnerID, money.MustParse("60.00"), BidPolicy{AllowOwnerBids: false})
	require.ErrorIs(t, err, ErrOwnerBid)
	require.Equal(t, "50.00", l.CurrentPrice.String())

	_, err = l.PlaceBid(l.OwnerID, money.MustParse("60.00"), BidPolicy{AllowOwnerBids: true})
	require.NoError(t, err)
	require.Equal(t, "60.00", l.CurrentPrice.String())
}

func TestClose_NoBids(t *testing.T) {
	t.Parallel()

	l := newTestListing(t, "50.00")
	require.NoError(t, l.Close(l.OwnerID))

	require.False(t, l.Active)
	require.Nil(t, l.WinnerID)
	require.Equal(t, "50.00", l.CurrentPrice.String())
}

func TestClose_NotOwner(t *testing.T) {
	t.Parallel()

	l := newTestListing(t, "50.00")
	err := l.Close(uuid.New())
	require.ErrorIs(t, err, ErrNotOwner)
	require.True(t, l.Active)
}

func TestClose_AlreadyClosed(t *testing.T) {
	t.Parallel()

	l := newTestListing(t, "50.00")
	require.NoError(t, l.Close(l.OwnerID))

	err := l.Close(l.OwnerID)
	require.ErrorIs(t, err, ErrAlreadyClosed)
}

func TestRecompute_TieBreaksToEarliestBid(t *testing.T) {
	t.Parallel()

	l := newTestListing(t, "10.00")
	now := time.Now().UTC()
	first := NewBid(uuid.New(), l.ID, uuid.New(), money.MustParse("20.00"), now)
	second := NewBid(uuid.New(), l.ID, uuid.New(), money.MustParse("20.00"), now.Add(time.Second))
	lower := NewBid(uuid.New(), l.ID, uuid.New(), money.MustParse("15.00"), now.Add(2*time.Second))
	l.Bids = []*Bid{second, lower, first}

	l.Recompute()

	require.Equal(t, "20.00", l.CurrentPrice.String())
	require.Equal(t, first.ID, l.HighestBid().ID)
	require.NotNil(t, l.HighestBidID)
	require.Equal(t, first.ID, *l.HighestBidID)
}

func TestRemoveBid_RecomputesPrice(t *testing.T) {
	t.Parallel()

	l := newTestListing(t, "10.00")
	bidderA := uuid.New()
	bidderB := uuid.New()

	lowBid, err := l.PlaceBid(bidderA, money.MustParse("20.00"), allowAll)
	require.NoError(t, err)
	highBid, err := l.PlaceBid(bidderB, money.MustParse("30.00"), allowAll)
	require.NoError(t, err)

	// removing the highest bid falls back to the next-highest
	require.NoError(t, l.RemoveBid(highBid.ID))
	require.Equal(t, "20.00", l.CurrentPrice.String())
	require.Equal(t, lowBid.ID, l.HighestBid().ID)

	// removing the last bid falls back to the starting price
	require.NoError(t, l.RemoveBid(lowBid.ID))
	require.Equal(t, "10.00", l.CurrentPrice.String())
	require.Nil(t, l.HighestBid())
	require.Nil(t, l.HighestBidID)
}

func TestRemoveBid_UnknownBid(t *testing.T) {
	t.Parallel()

	l := newTestListing(t, "10.00")
	err := l.RemoveBid(uuid.New())
	require.True(t, errors.Is(err, ErrBidNotFound))
}

func TestNewListing_StartsAtStartingPrice(t *testing.T) {
	t.Parallel()

	l := newTestListing(t, "75.50")
	require.True(t, l.Active)
	require.Nil(t, l.WinnerID)
	require.Nil(t, l.HighestBidID)
	require.Equal(t, "75.50", l.CurrentPrice.String())
	require.Empty(t, l.Bids)
}
