package service

import (
	"art-auction-api/internal/entity"
	"art-auction-api/internal/repo"
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Diagnostics interface {
	Ping() error
}

type User interface {
	Authenticate(ctx context.Context, token string) (uuid.UUID, error)
}

type Auction interface {
	CreateAuction(ctx context.Context, callerId uuid.UUID, input *entity.CreateAuctionInput) (*entity.AuctionOutputModel, error)
	GetAuctionByArtworkId(ctx context.Context, artworkId string) (*entity.AuctionOutputModel, error)

	PlaceBid(ctx context.Context, artworkId string, bidderId uuid.UUID, amount decimal.Decimal) (*entity.BidOutputModel, error)

	FinishAuction(ctx context.Context, artworkId string, callerId uuid.UUID) (*entity.FinalizeResult, error)
	FinalizeAuction(ctx context.Context, auctionId uuid.UUID) (*entity.FinalizeResult, error)
	ReconcileExpired(ctx context.Context) (int, error)
}

type Artwork interface {
	GetActiveAuctions(ctx context.Context, pg *entity.PaginationInput) ([]entity.AuctionListingOutputModel, error)
	GetUserAuctions(ctx context.Context, ownerId uuid.UUID) ([]entity.AuctionListingOutputModel, error)
}

type Payment interface {
	HandleCheckoutCompleted(ctx context.Context, event *entity.CheckoutEvent) error
}

type Services struct {
	Diagnostics Diagnostics
	User        User
	Auction     Auction
	Artwork     Artwork
	Payment     Payment
}

func NewServices(repos *repo.Repositories, logger *log.Logger) *Services {
	return &Services{
		Diagnostics: NewDiagnosticsService(repos),
		User:        NewUserService(repos),
		Auction:     NewAuctionService(repos, logger),
		Artwork:     NewArtworkService(repos),
		Payment:     NewPaymentService(repos, logger),
	}
}
