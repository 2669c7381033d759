package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/openmarket/auctions/internal/auction/application"
	"github.com/openmarket/auctions/internal/auction/domain"
	"github.com/openmarket/auctions/internal/shared/money"
)

// stubService lets each test pin the behavior of the operations it touches.
type stubService struct {
	placeBid     func(cmd application.PlaceBidDTO) (*domain.Bid, error)
	closeAuction func(listingID, requesterID uuid.UUID) (*domain.Listing, error)
	getListing   func(listingID uuid.UUID) (*application.ListingStateDTO, error)
	removeBid    func(listingID, bidID uuid.UUID) error
}

func (s *stubService) CreateListing(_ context.Context, cmd application.CreateListingDTO) (*domain.Listing, error) {
	return domain.NewListing(uuid.New(), cmd.Title, cmd.Description, cmd.ImageURL, cmd.CategoryID, cmd.OwnerID, cmd.StartingPrice), nil
}

func (s *stubService) PlaceBid(_ context.Context, cmd application.PlaceBidDTO) (*domain.Bid, error) {
	return s.placeBid(cmd)
}

func (s *stubService) CloseAuction(_ context.Context, listingID, requesterID uuid.UUID) (*domain.Listing, error) {
	return s.closeAuction(listingID, requesterID)
}

func (s *stubService) RemoveBid(_ context.Context, listingID, bidID uuid.UUID) error {
	return s.removeBid(listingID, bidID)
}

func (s *stubService) GetListing(_ context.Context, listingID uuid.UUID) (*application.ListingStateDTO, error) {
	return s.getListing(listingID)
}

func (s *stubService) ListBids(context.Context, uuid.UUID) ([]*application.BidDTO, error) {
	return nil, nil
}

func (s *stubService) ListActiveListings(context.Context) ([]*domain.Listing, error) {
	return nil, nil
}

func (s *stubService) ListActiveByCategory(context.Context, uuid.UUID) ([]*domain.Listing, error) {
	return nil, nil
}

func (s *stubService) ListCategories(context.Context) ([]*domain.Category, error) {
	return nil, nil
}

func (s *stubService) AddComment(context.Context, uuid.UUID, uuid.UUID, string) (*domain.Comment, error) {
	return nil, nil
}

func (s *stubService) ListComments(context.Context, uuid.UUID) ([]*domain.Comment, error) {
	return nil, nil
}

func (s *stubService) AddToWatchlist(context.Context, uuid.UUID, uuid.UUID) error { return nil }

func (s *stubService) RemoveFromWatchlist(context.Context, uuid.UUID, uuid.UUID) error { return nil }

func (s *stubService) Watchlist(context.Context, uuid.UUID) ([]*domain.Listing, error) {
	return nil, nil
}

// newTestApp mounts the handler with an auth middleware that injects a
// fixed caller identity.
func newTestApp(service application.AuctionService, caller uuid.UUID) *fiber.App {
	app := fiber.New()
	fakeAuth := func(c *fiber.Ctx) error {
		c.Locals("userID", caller)
		return c.Next()
	}
	NewAuctionHandler(service).RegisterRoutes(app.Group("/api"), fakeAuth)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *nethttp.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestPlaceBidHandler_StatusMapping(t *testing.T) {
	caller := uuid.New()
	listingID := uuid.New()

	tests := []struct {
		name       string
		amount     string
		serviceErr error
		wantStatus int
	}{
		{name: "accepted", amount: "150.00", wantStatus: nethttp.StatusCreated},
		{name: "too_low", amount: "50.00", serviceErr: domain.ErrBidTooLow, wantStatus: nethttp.StatusConflict},
		{name: "closed", amount: "500.00", serviceErr: domain.ErrAuctionClosed, wantStatus: nethttp.StatusConflict},
		{name: "owner_bid", amount: "150.00", serviceErr: domain.ErrOwnerBid, wantStatus: nethttp.StatusForbidden},
		{name: "unknown_listing", amount: "150.00", serviceErr: domain.ErrListingNotFound, wantStatus: nethttp.StatusNotFound},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			service := &stubService{
				placeBid: func(cmd application.PlaceBidDTO) (*domain.Bid, error) {
					if tc.serviceErr != nil {
						return nil, fmt.Errorf("place bid: %w", tc.serviceErr)
					}
					return domain.NewBid(uuid.New(), cmd.ListingID, cmd.BidderID, cmd.Amount, time.Now().UTC()), nil
				},
			}
			app := newTestApp(service, caller)

			resp := doJSON(t, app, nethttp.MethodPost, "/api/listings/"+listingID.String()+"/bids",
				PlaceBidRequest{Amount: tc.amount})
			require.Equal(t, tc.wantStatus, resp.StatusCode)
		})
	}
}

func TestPlaceBidHandler_InvalidAmount(t *testing.T) {
	t.Parallel()

	serviceCalled := false
	service := &stubService{
		placeBid: func(application.PlaceBidDTO) (*domain.Bid, error) {
			serviceCalled = true
			return nil, nil
		},
	}
	app := newTestApp(service, uuid.New())

	for _, amount := range []string{"abc", "-5.00", "1.999", ""} {
		resp := doJSON(t, app, nethttp.MethodPost, "/api/listings/"+uuid.NewString()+"/bids",
			PlaceBidRequest{Amount: amount})
		require.Equal(t, nethttp.StatusBadRequest, resp.StatusCode, "amount %q", amount)
	}
	require.False(t, serviceCalled, "service must not be called for malformed amounts")
}

func TestCloseAuctionHandler_StatusMapping(t *testing.T) {
	caller := uuid.New()

	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{name: "closed", wantStatus: nethttp.StatusOK},
		{name: "not_owner", serviceErr: domain.ErrNotOwner, wantStatus: nethttp.StatusForbidden},
		{name: "already_closed", serviceErr: domain.ErrAlreadyClosed, wantStatus: nethttp.StatusConflict},
		{name: "not_found", serviceErr: domain.ErrListingNotFound, wantStatus: nethttp.StatusNotFound},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			service := &stubService{
				closeAuction: func(listingID, requesterID uuid.UUID) (*domain.Listing, error) {
					if tc.serviceErr != nil {
						return nil, fmt.Errorf("close auction: %w", tc.serviceErr)
					}
					l := domain.NewListing(listingID, "t", "", "", uuid.New(), requesterID, money.MustParse("10.00"))
					require.NoError(t, l.Close(requesterID))
					return l, nil
				},
			}
			app := newTestApp(service, caller)

			resp := doJSON(t, app, nethttp.MethodPost, "/api/listings/"+uuid.NewString()+"/close", nil)
			require.Equal(t, tc.wantStatus, resp.StatusCode)
		})
	}
}

func TestGetListingHandler(t *testing.T) {
	t.Parallel()

	listingID := uuid.New()
	service := &stubService{
		getListing: func(id uuid.UUID) (*application.ListingStateDTO, error) {
			if id != listingID {
				return nil, domain.ErrListingNotFound
			}
			return &application.ListingStateDTO{
				ListingID:     id,
				Title:         "Vintage laptop",
				StartingPrice: money.MustParse("100.00"),
				CurrentPrice:  money.MustParse("150.00"),
				Active:        true,
			}, nil
		},
	}
	app := newTestApp(service, uuid.New())

	resp := doJSON(t, app, nethttp.MethodGet, "/api/listings/"+listingID.String(), nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	var state application.ListingStateDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))
	require.Equal(t, listingID, state.ListingID)
	require.Equal(t, "150.00", state.CurrentPrice.String())

	resp = doJSON(t, app, nethttp.MethodGet, "/api/listings/"+uuid.NewString(), nil)
	require.Equal(t, nethttp.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, nethttp.MethodGet, "/api/listings/not-a-uuid", nil)
	require.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
}

func TestRemoveBidHandler(t *testing.T) {
	t.Parallel()

	service := &stubService{
		removeBid: func(listingID, bidID uuid.UUID) error {
			return domain.ErrBidNotFound
		},
	}
	app := newTestApp(service, uuid.New())

	resp := doJSON(t, app, nethttp.MethodDelete,
		"/api/listings/"+uuid.NewString()+"/bids/"+uuid.NewString(), nil)
	require.Equal(t, nethttp.StatusNotFound, resp.StatusCode)
}
