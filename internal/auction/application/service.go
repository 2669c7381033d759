package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/openmarket/auctions/internal/auction/domain"
)

// AuctionService is the application interface of the auction module,
// exposing its use cases to the transport layer.
type AuctionService interface {
	CreateListing(ctx context.Context, cmd CreateListingDTO) (*domain.Listing, error)
	PlaceBid(ctx context.Context, cmd PlaceBidDTO) (*domain.Bid, error)
	CloseAuction(ctx context.Context, listingID, requesterID uuid.UUID) (*domain.Listing, error)
	RemoveBid(ctx context.Context, listingID, bidID uuid.UUID) error
	GetListing(ctx context.Context, listingID uuid.UUID) (*ListingStateDTO, error)
	ListBids(ctx context.Context, listingID uuid.UUID) ([]*BidDTO, error)

	ListActiveListings(ctx context.Context) ([]*domain.Listing, error)
	ListActiveByCategory(ctx context.Context, categoryID uuid.UUID) ([]*domain.Listing, error)
	ListCategories(ctx context.Context) ([]*domain.Category, error)

	AddComment(ctx context.Context, listingID, userID uuid.UUID, body string) (*domain.Comment, error)
	ListComments(ctx context.Context, listingID uuid.UUID) ([]*domain.Comment, error)

	AddToWatchlist(ctx context.Context, userID, listingID uuid.UUID) error
	RemoveFromWatchlist(ctx context.Context, userID, listingID uuid.UUID) error
	Watchlist(ctx context.Context, userID uuid.UUID) ([]*domain.Listing, error)
}

type auctionService struct {
	createListingUC *CreateListingUseCase
	placeBidUC      *PlaceBidUseCase
	closeAuctionUC  *CloseAuctionUseCase
	removeBidUC     *RemoveBidUseCase
	getListingUC    *GetListingUseCase

	listings   domain.ListingRepository
	bids       domain.BidRepository
	categories domain.CategoryRepository
	comments   domain.CommentRepository
	watchlist  domain.WatchlistRepository
}

func NewAuctionService(
	createListingUC *CreateListingUseCase,
	placeBidUC *PlaceBidUseCase,
	closeAuctionUC *CloseAuctionUseCase,
	removeBidUC *RemoveBidUseCase,
	getListingUC *GetListingUseCase,
	listings domain.ListingRepository,
	bids domain.BidRepository,
	categories domain.CategoryRepository,
	comments domain.CommentRepository,
	watchlist domain.WatchlistRepository,
) AuctionService {
	return &auctionService{
		createListingUC: createListingUC,
		placeBidUC:      placeBidUC,
		closeAuctionUC:  closeAuctionUC,
		removeBidUC:     removeBidUC,
		getListingUC:    getListingUC,
		listings:        listings,
		bids:            bids,
		categories:      categories,
		comments:        comments,
		watchlist:       watchlist,
	}
}

func (s *auctionService) CreateListing(ctx context.Context, cmd CreateListingDTO) (*domain.Listing, error) {
	return s.createListingUC.Execute(ctx, cmd)
}

func (s *auctionService) PlaceBid(ctx context.Context, cmd PlaceBidDTO) (*domain.Bid, error) {
	return s.placeBidUC.Execute(ctx, cmd)
}

func (s *auctionService) CloseAuction(ctx context.Context, listingID, requesterID uuid.UUID) (*domain.Listing, error) {
	return s.closeAuctionUC.Execute(ctx, listingID, requesterID)
}

func (s *auctionService) RemoveBid(ctx context.Context, listingID, bidID uuid.UUID) error {
	return s.removeBidUC.Execute(ctx, listingID, bidID)
}

func (s *auctionService) GetListing(ctx context.Context, listingID uuid.UUID) (*ListingStateDTO, error) {
	return s.getListingUC.Execute(ctx, listingID)
}

func (s *auctionService) ListBids(ctx context.Context, listingID uuid.UUID) ([]*BidDTO, error) {
	bids, err := s.bids.ListByListing(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("list bids for listing %s: %w", listingID, err)
	}
	dtos := make([]*BidDTO, 0, len(bids))
	for _, b := range bids {
		dtos = append(dtos, toBidDTO(b))
	}
	return dtos, nil
}

func (s *auctionService) ListActiveListings(ctx context.Context) ([]*domain.Listing, error) {
	return s.listings.ListActive(ctx)
}

func (s *auctionService) ListActiveByCategory(ctx context.Context, categoryID uuid.UUID) ([]*domain.Listing, error) {
	if _, err := s.categories.GetByID(ctx, categoryID); err != nil {
		return nil, fmt.Errorf("list by category %s: %w", categoryID, err)
	}
	return s.listings.ListActiveByCategory(ctx, categoryID)
}

func (s *auctionService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.categories.List(ctx)
}

func (s *auctionService) AddComment(ctx context.Context, listingID, userID uuid.UUID, body string) (*domain.Comment, error) {
	if _, err := s.listings.GetByID(ctx, listingID); err != nil {
		return nil, fmt.Errorf("add comment: listing %s: %w", listingID, err)
	}
	comment := &domain.Comment{
		ID:        uuid.New(),
		ListingID: listingID,
		UserID:    userID,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.comments.Insert(ctx, comment); err != nil {
		return nil, fmt.Errorf("add comment: listing %s: %w", listingID, err)
	}
	return comment, nil
}

func (s *auctionService) ListComments(ctx context.Context, listingID uuid.UUID) ([]*domain.Comment, error) {
	return s.comments.ListByListing(ctx, listingID)
}

func (s *auctionService) AddToWatchlist(ctx context.Context, userID, listingID uuid.UUID) error {
	if _, err := s.listings.GetByID(ctx, listingID); err != nil {
		return fmt.Errorf("watch listing %s: %w", listingID, err)
	}
	return s.watchlist.Add(ctx, userID, listingID)
}

func (s *auctionService) RemoveFromWatchlist(ctx context.Context, userID, listingID uuid.UUID) error {
	return s.watchlist.Remove(ctx, userID, listingID)
}

func (s *auctionService) Watchlist(ctx context.Context, userID uuid.UUID) ([]*domain.Listing, error) {
	return s.watchlist.ListListings(ctx, userID)
}
