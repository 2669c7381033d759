package main

import (
	"context"

	"go.uber.org/zap"

	auctionapp "github.com/openmarket/auctions/internal/auction/application"
	"github.com/openmarket/auctions/internal/auction/domain"
	auctionhttp "github.com/openmarket/auctions/internal/auction/infra/http"
	auctionpg "github.com/openmarket/auctions/internal/auction/infra/repository/postgres"
	"github.com/openmarket/auctions/internal/shared/auth"
	"github.com/openmarket/auctions/internal/shared/config"
	"github.com/openmarket/auctions/internal/shared/db"
	"github.com/openmarket/auctions/internal/shared/db/migrations"
	"github.com/openmarket/auctions/internal/shared/httpserver"
	"github.com/openmarket/auctions/internal/shared/logger"
	userapp "github.com/openmarket/auctions/internal/user/application"
	userhttp "github.com/openmarket/auctions/internal/user/infra/http"
	userpg "github.com/openmarket/auctions/internal/user/infra/repository/postgres"
)

func main() {
	log := logger.GetLogger()
	defer log.Sync()

	cfg := config.Load()
	log.Info("Starting auctions server...")

	log.Info("Running database migrations...")
	if err := migrations.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatal("Database migration failed", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := db.GetPostgresDBPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Database connection failed", zap.Error(err))
	}
	defer pool.Close()

	// repositories
	listingRepo := auctionpg.NewListingRepository(pool)
	bidRepo := auctionpg.NewBidRepository(pool)
	categoryRepo := auctionpg.NewCategoryRepository(pool)
	commentRepo := auctionpg.NewCommentRepository(pool)
	watchlistRepo := auctionpg.NewWatchlistRepository(pool)
	userRepo := userpg.NewUserRepository(pool)

	// auction module
	policy := domain.BidPolicy{AllowOwnerBids: cfg.AllowOwnerBids}
	auctionService := auctionapp.NewAuctionService(
		auctionapp.NewCreateListingUseCase(listingRepo, categoryRepo, pool),
		auctionapp.NewPlaceBidUseCase(listingRepo, bidRepo, pool, policy),
		auctionapp.NewCloseAuctionUseCase(listingRepo, bidRepo, pool),
		auctionapp.NewRemoveBidUseCase(listingRepo, bidRepo, pool),
		auctionapp.NewGetListingUseCase(listingRepo, bidRepo),
		listingRepo, bidRepo, categoryRepo, commentRepo, watchlistRepo,
	)

	// user module
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	authService := userapp.NewAuthService(userRepo, tokens)

	// transport
	server := httpserver.NewServer()
	api := server.App().Group("/api")
	userhttp.NewAuthHandler(authService).RegisterRoutes(api)
	auctionhttp.NewAuctionHandler(auctionService).RegisterRoutes(api, httpserver.Protected(tokens))

	if err := server.Start(cfg.HTTPAddr); err != nil {
		log.Fatal("HTTP server failed", zap.Error(err))
	}
}
