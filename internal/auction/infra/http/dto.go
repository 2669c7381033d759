package http

import (
	"time"

	"github.com/google/uuid"

	"github.com/openmarket/auctions/internal/auction/domain"
	"github.com/openmarket/auctions/internal/shared/money"
)

type CreateListingRequest struct {
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	ImageURL      string    `json:"image_url"`
	CategoryID    uuid.UUID `json:"category_id"`
	StartingPrice string    `json:"starting_price"`
}

type PlaceBidRequest struct {
	Amount string `json:"amount"`
}

type CommentRequest struct {
	Body string `json:"body"`
}

// ListingResponse is the compact wire shape used by list endpoints.
type ListingResponse struct {
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
}

func toListingResponse(l *domain.Listing) ListingResponse {
	return ListingResponse{
		ListingID:     l.ID,
		Title:         l.Title,
		Description:   l.Description,
		ImageURL:      l.ImageURL,
		CategoryID:    l.CategoryID,
		OwnerID:       l.OwnerID,
		StartingPrice: l.StartingPrice,
		CurrentPrice:  l.CurrentPrice,
		Active:        l.Active,
		WinnerID:      l.WinnerID,
		CreatedAt:     l.CreatedAt,
	}
}

func toListingResponses(listings []*domain.Listing) []ListingResponse {
	out := make([]ListingResponse, 0, len(listings))
	for _, l := range listings {
		out = append(out, toListingResponse(l))
	}
	return out
}

type CategoryResponse struct {
	CategoryID uuid.UUID `json:"category_id"`
	Name       string    `json:"name"`
}

type CommentResponse struct {
	CommentID uuid.UUID `json:"comment_id"`
	ListingID uuid.UUID `json:"listing_id"`
	UserID    uuid.UUID `json:"user_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}
