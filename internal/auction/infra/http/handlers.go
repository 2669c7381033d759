package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/openmarket/auctions/internal/auction/application"
	"github.com/openmarket/auctions/internal/shared/logger"
	"github.com/openmarket/auctions/internal/shared/money"
)

var log = logger.GetLogger()

// AuctionHandler exposes the auction module over HTTP. It carries no
// business rules: amounts are parsed at this boundary and every decision is
// delegated to the application service.
type AuctionHandler struct {
	service application.AuctionService
}

func NewAuctionHandler(service application.AuctionService) *AuctionHandler {
	return &AuctionHandler{service: service}
}

// RegisterRoutes mounts the module's routes; protected guards the
// mutating endpoints with authentication.
func (h *AuctionHandler) RegisterRoutes(api fiber.Router, protected fiber.Handler) {
	api.Get("/categories", h.ListCategories)
	api.Get("/listings", h.ListListings)
	api.Get("/listings/:id", h.GetListing)
	api.Get("/listings/:id/bids", h.ListBids)
	api.Get("/listings/:id/comments", h.ListComments)

	api.Post("/listings", protected, h.CreateListing)
	api.Post("/listings/:id/bids", protected, h.PlaceBid)
	api.Post("/listings/:id/close", protected, h.CloseAuction)
	api.Delete("/listings/:id/bids/:bidID", protected, h.RemoveBid)
	api.Post("/listings/:id/comments", protected, h.AddComment)

	api.Get("/watchlist", protected, h.Watchlist)
	api.Put("/watchlist/:id", protected, h.AddToWatchlist)
	api.Delete("/watchlist/:id", protected, h.RemoveFromWatchlist)
}

func callerID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals("userID").(uuid.UUID)
	return id, ok
}

func pathID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Params(name))
}

func (h *AuctionHandler) CreateListing(c *fiber.Ctx) error {
	ownerID, ok := callerID(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	var req CreateListingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "title is required"})
	}

	startingPrice, err := money.Parse(req.StartingPrice)
	if err != nil {
		return sendError(c, err)
	}

	listing, err := h.service.CreateListing(c.Context(), application.CreateListingDTO{
		OwnerID:       ownerID,
		Title:         req.Title,
		Description:   req.Description,
		ImageURL:      req.ImageURL,
		CategoryID:    req.CategoryID,
		StartingPrice: startingPrice,
	})
	if err != nil {
		return sendError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toListingResponse(listing))
}

func (h *AuctionHandler) ListListings(c *fiber.Ctx) error {
	if category := c.Query("category_id"); category != "" {
		categoryID, err := uuid.Parse(category)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid category id"})
		}
		listings, err := h.service.ListActiveByCategory(c.Context(), categoryID)
		if err != nil {
			return sendError(c, err)
		}
		return c.JSON(toListingResponses(listings))
	}

	listings, err := h.service.ListActiveListings(c.Context())
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(toListingResponses(listings))
}

func (h *AuctionHandler) GetListing(c *fiber.Ctx) error {
	listingID, err := pathID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid listing id"})
	}
	state, err := h.service.GetListing(c.Context(), listingID)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(state)
}

func (h *AuctionHandler) ListBids(c *fiber.Ctx) error {
	listingID, err := pathID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid listing id"})
	}
	bids, err := h.service.ListBids(c.Context(), listingID)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(bids)
}

func (h *AuctionHandler) PlaceBid(c *fiber.Ctx) error {
	bidderID, ok := callerID(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	listingID, err := pathID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid listing id"})
	}

	var req PlaceBidRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	amount, err := money.Parse(req.Amount)
	if err != nil {
		return sendError(c, err)
	}

	bid, err := h.service.PlaceBid(c.Context(), application.PlaceBidDTO{
		ListingID: listingID,
		BidderID:  bidderID,
		Amount:    amount,
	})
	if err != nil {
		log.Warn("PlaceBid failed",
			zap.String("listingID", listingID.String()),
			zap.String("bidderID", bidderID.String()),
			zap.Error(err),
		)
		return sendError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"bid_id":     bid.ID,
		"listing_id": bid.ListingID,
		"bidder_id":  bid.BidderID,
		"amount":     bid.Amount,
		"placed_at":  bid.PlacedAt,
	})
}

func (h *AuctionHandler) CloseAuction(c *fiber.Ctx) error {
	requesterID, ok := callerID(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	listingID, err := pathID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid listing id"})
	}

	listing, err := h.service.CloseAuction(c.Context(), listingID, requesterID)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(toListingResponse(listing))
}

func (h *AuctionHandler) RemoveBid(c *fiber.Ctx) error {
	if _, ok := callerID(c); !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	listingID, err := pathID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid listing id"})
	}
	bidID, err := pathID(c, "bidID")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid bid id"})
	}

	if err := h.service.RemoveBid(c.Context(), listingID, bidID); err != nil {
		return sendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AuctionHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.service.ListCategories(c.Context())
	if err != nil {
		return sendError(c, err)
	}
	out := make([]CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		out = append(out, CategoryResponse{CategoryID: cat.ID, Name: cat.Name})
	}
	return c.JSON(out)
}

func (h *AuctionHandler) AddComment(c *fiber.Ctx) error {
	userID, ok := callerID(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	listingID, err := pathID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid listing id"})
	}

	var req CommentRequest
	if err := c.BodyParser(&req); err != nil || req.Body == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "comment body is required"})
	}

	comment, err := h.service.AddComment(c.Context(), listingID, userID, req.Body)
	if err != nil {
		return sendError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(CommentResponse{
		CommentID: comment.ID,
		ListingID: comment.ListingID,
		UserID:    comment.UserID,
		Body:      comment.Body,
		CreatedAt: comment.CreatedAt,
	})
}

func (h *AuctionHandler) ListComments(c *fiber.Ctx) error {
	listingID, err := pathID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid listing id"})
	}
	comments, err := h.service.ListComments(c.Context(), listingID)
	if err != nil {
		return sendError(c, err)
	}
	out := make([]CommentResponse, 0, len(comments))
	for _, cm := range comments {
		out = append(out, CommentResponse{
			CommentID: cm.ID,
			ListingID: cm.ListingID,
			UserID:    cm.UserID,
			Body:      cm.Body,
			CreatedAt: cm.CreatedAt,
		})
	}
	return c.JSON(out)
}

func (h *AuctionHandler) Watchlist(c *fiber.Ctx) error {
	userID, ok := callerID(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	listings, err := h.service.Watchlist(c.Context(), userID)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(toListingResponses(listings))
}

func (h *AuctionHandler) AddToWatchlist(c *fiber.Ctx) error {
	userID, ok := callerID(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	listingID, err := pathID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid listing id"})
	}
	if err := h.service.AddToWatchlist(c.Context(), userID, listingID); err != nil {
		return sendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AuctionHandler) RemoveFromWatchlist(c *fiber.Ctx) error {
	userID, ok := callerID(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	listingID, err := pathID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid listing id"})
	}
	if err := h.service.RemoveFromWatchlist(c.Context(), userID, listingID); err != nil {
		return sendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
