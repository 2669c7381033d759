package domain

import "errors"

var (
	ErrListingNotFound  = errors.New("listing not found")
	ErrBidNotFound      = errors.New("bid not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrBidTooLow        = errors.New("bid must be strictly greater than the current price")
	ErrAuctionClosed    = errors.New("auction is closed")
	ErrNotOwner         = errors.New("only the listing owner may do this")
	ErrAlreadyClosed    = errors.New("auction is already closed")
	ErrOwnerBid         = errors.New("owner may not bid on their own listing")
)
