package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category is reference data grouping listings; names are unique.
type Category struct {
	ID   uuid.UUID
	Name string
}

// Comment is a user remark attached to a listing.
type Comment struct {
	ID        uuid.UUID
	ListingID uuid.UUID
	UserID    uuid.UUID
	Body      string
	CreatedAt time.Time
}
