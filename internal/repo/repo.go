package repo

import (
	"art-auction-api/internal/entity"
	"art-auction-api/internal/repo/pgdb"
	"art-auction-api/internal/repo/redisdb"
	"art-auction-api/pkg/postgres"
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

type Diagnostics interface {
	Ping() error
}

type User interface {
	GetUserIdByToken(ctx context.Context, token string) (uuid.UUID, error)
}

type Artwork interface {
	GetArtworkById(ctx context.Context, id string) (*entity.Artwork, error)
	GetArtworkOwner(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
	GetActiveAuctionListings(ctx context.Context, now time.Time, pg *entity.PaginationInput) ([]entity.AuctionListing, error)
	GetOwnerAuctionListings(ctx context.Context, ownerId uuid.UUID) ([]entity.AuctionListing, error)
}

type Auction interface {
	CreateAuction(ctx context.Context, input *entity.CreateAuctionInput) (uuid.UUID, error)
	GetAuctionById(ctx context.Context, id uuid.UUID) (*entity.Auction, error)
	GetAuctionByArtworkId(ctx context.Context, artworkId string) (*entity.Auction, error)
	PlaceBid(ctx context.Context, auctionId uuid.UUID, bidderId uuid.UUID, amount decimal.Decimal) (bool, error)
	GetExpiredActiveAuctions(ctx context.Context, now time.Time) ([]entity.Auction, error)
	GetUnsettledCompletedAuctions(ctx context.Context) ([]entity.Auction, error)
	CompleteAuction(ctx context.Context, auctionId uuid.UUID) (bool, error)
	MarkSettled(ctx context.Context, auctionId uuid.UUID) error
}

// Ownership is the privileged write capability: reassigning an artwork's
// owner and recording the sale. Only the finalizer and the payment webhook
// hold it; request-scoped reads and authorization checks go through Artwork.
type Ownership interface {
	TransferArtworkOwnership(ctx context.Context, artworkId uuid.UUID, newOwnerId uuid.UUID) error
	RecordTransaction(ctx context.Context, input *entity.CreateTransactionInput) error
}

type Events interface {
	MarkProcessed(ctx context.Context, eventId string) (bool, error)
	ClearProcessed(ctx context.Context, eventId string) error
}

type Repositories struct {
	Diagnostics
	User
	Artwork
	Auction
	Ownership
	Events
}

func NewRepositories(p *postgres.Postgres, rdb *redis.Client, eventTTL time.Duration) *Repositories {
	return &Repositories{
		Diagnostics: pgdb.NewDiagnosticsRepo(p),
		User:        pgdb.NewUserRepo(p),
		Artwork:     pgdb.NewArtworkRepo(p),
		Auction:     pgdb.NewAuctionRepo(p),
		Ownership:   pgdb.NewOwnershipRepo(p),
		Events:      redisdb.NewEventsRepo(rdb, eventTTL),
	}
}
