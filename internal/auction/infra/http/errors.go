package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/openmarket/auctions/internal/auction/domain"
	"github.com/openmarket/auctions/internal/shared/money"
)

// statusForError maps the caller-visible domain error taxonomy to HTTP
// status codes. Anything unmapped is treated as an internal error.
func statusForError(err error) int {
	switch {
	case errors.Is(err, money.ErrInvalidAmount):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrBidTooLow),
		errors.Is(err, domain.ErrAuctionClosed),
		errors.Is(err, domain.ErrAlreadyClosed):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrNotOwner),
		errors.Is(err, domain.ErrOwnerBid):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrListingNotFound),
		errors.Is(err, domain.ErrBidNotFound),
		errors.Is(err, domain.ErrCategoryNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// messageForError strips wrapping detail for unexpected errors so internals
// never leak to clients; domain errors pass through verbatim.
func messageForError(err error) string {
	if statusForError(err) == fiber.StatusInternalServerError {
		return "internal server error"
	}
	for _, sentinel := range []error{
		money.ErrInvalidAmount,
		domain.ErrBidTooLow,
		domain.ErrAuctionClosed,
		domain.ErrAlreadyClosed,
		domain.ErrNotOwner,
		domain.ErrOwnerBid,
		domain.ErrListingNotFound,
		domain.ErrBidNotFound,
		domain.ErrCategoryNotFound,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}

func sendError(c *fiber.Ctx, err error) error {
	return c.Status(statusForError(err)).JSON(fiber.Map{"error": messageForError(err)})
}
