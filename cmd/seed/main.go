// Command seed populates the database with test data: categories, a few
// users, open listings, and some bids placed through the real service so
// every seeded price went through admission.
package main

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	auctionapp "github.com/openmarket/auctions/internal/auction/application"
	"github.com/openmarket/auctions/internal/auction/domain"
	auctionpg "github.com/openmarket/auctions/internal/auction/infra/repository/postgres"
	"github.com/openmarket/auctions/internal/shared/auth"
	"github.com/openmarket/auctions/internal/shared/config"
	"github.com/openmarket/auctions/internal/shared/db"
	"github.com/openmarket/auctions/internal/shared/db/migrations"
	"github.com/openmarket/auctions/internal/shared/logger"
	"github.com/openmarket/auctions/internal/shared/money"
	userapp "github.com/openmarket/auctions/internal/user/application"
	userpg "github.com/openmarket/auctions/internal/user/infra/repository/postgres"
)

var categoryNames = []string{
	"Electronics",
	"Fashion",
	"Home & Garden",
	"Sports",
	"Books",
	"Toys",
	"Automotive",
	"Art & Collectibles",
}

func main() {
	log := logger.GetLogger()
	defer log.Sync()

	cfg := config.Load()
	ctx := context.Background()

	if err := migrations.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatal("Database migration failed", zap.Error(err))
	}
	pool, err := db.GetPostgresDBPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Database connection failed", zap.Error(err))
	}
	defer pool.Close()

	listingRepo := auctionpg.NewListingRepository(pool)
	bidRepo := auctionpg.NewBidRepository(pool)
	categoryRepo := auctionpg.NewCategoryRepository(pool)
	userRepo := userpg.NewUserRepository(pool)

	createListing := auctionapp.NewCreateListingUseCase(listingRepo, categoryRepo, pool)
	placeBid := auctionapp.NewPlaceBidUseCase(listingRepo, bidRepo, pool, domain.BidPolicy{AllowOwnerBids: cfg.AllowOwnerBids})
	authService := userapp.NewAuthService(userRepo, auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL))

	// categories
	categories := make(map[string]uuid.UUID)
	for _, name := range categoryNames {
		if err := categoryRepo.Insert(ctx, &domain.Category{ID: uuid.New(), Name: name}); err != nil {
			log.Fatal("Seeding category failed", zap.String("name", name), zap.Error(err))
		}
		cat, err := categoryRepo.GetByName(ctx, name)
		if err != nil {
			log.Fatal("Looking up seeded category failed", zap.String("name", name), zap.Error(err))
		}
		categories[name] = cat.ID
		log.Info("Seeded category", zap.String("name", name))
	}

	// users
	users := make(map[string]uuid.UUID)
	for _, spec := range []struct{ username, email string }{
		{"alice", "alice@example.com"},
		{"bob", "bob@example.com"},
		{"charlie", "charlie@example.com"},
	} {
		u, err := authService.Register(ctx, spec.username, spec.email, "testpass123")
		if err != nil {
			log.Fatal("Seeding user failed", zap.String("username", spec.username), zap.Error(err))
		}
		users[spec.username] = u.ID
	}

	// listings with a short bid history
	laptop, err := createListing.Execute(ctx, auctionapp.CreateListingDTO{
		OwnerID:       users["alice"],
		Title:         "Vintage laptop",
		Description:   "Working condition, original charger included.",
		ImageURL:      "https://example.com/laptop.jpg",
		CategoryID:    categories["Electronics"],
		StartingPrice: money.MustParse("100.00"),
	})
	if err != nil {
		log.Fatal("Seeding listing failed", zap.Error(err))
	}
	for _, b := range []struct {
		bidder string
		amount string
	}{
		{"bob", "150.00"},
		{"charlie", "200.00"},
	} {
		if _, err := placeBid.Execute(ctx, auctionapp.PlaceBidDTO{
			ListingID: laptop.ID,
			BidderID:  users[b.bidder],
			Amount:    money.MustParse(b.amount),
		}); err != nil {
			log.Fatal("Seeding bid failed", zap.String("bidder", b.bidder), zap.Error(err))
		}
	}

	if _, err := createListing.Execute(ctx, auctionapp.CreateListingDTO{
		OwnerID:       users["bob"],
		Title:         "Signed first edition",
		Description:   "Collectible hardcover, excellent condition.",
		CategoryID:    categories["Books"],
		StartingPrice: money.MustParse("50.00"),
	}); err != nil {
		log.Fatal("Seeding listing failed", zap.Error(err))
	}

	log.Info("Seed data created",
		zap.Int("categories", len(categories)),
		zap.Int("users", len(users)),
	)
}
