package service

import (
	"art-auction-api/internal/common"
	"art-auction-api/internal/entity"
	"art-auction-api/internal/repo/repo_errors"
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// fakeStore is an in-memory stand-in for the Postgres repos, preserving the
// conditional-update semantics the real ones rely on.
type fakeStore struct {
	auctions map[uuid.UUID]*entity.Auction
	artworks map[uuid.UUID]*entity.Artwork

	transactions []entity.CreateTransactionInput
	transfers    int

	completeErr map[uuid.UUID]error
	transferErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		auctions:    make(map[uuid.UUID]*entity.Auction),
		artworks:    make(map[uuid.UUID]*entity.Artwork),
		completeErr: make(map[uuid.UUID]error),
	}
}

func (f *fakeStore) addArtwork(ownerId uuid.UUID) *entity.Artwork {
	artwork := &entity.Artwork{
		Id:        uuid.New(),
		OwnerId:   ownerId,
		Title:     "untitled",
		CreatedAt: time.Now().Format(time.RFC3339),
	}
	f.artworks[artwork.Id] = artwork

	return artwork
}

func (f *fakeStore) addAuction(artworkId uuid.UUID, startingBid int64, endTime time.Time) *entity.Auction {
	auction := &entity.Auction{
		Id:          uuid.New(),
		ArtworkId:   artworkId,
		StartingBid: decimal.NewFromInt(startingBid),
		EndTime:     endTime,
		Status:      common.AuctionActive,
		CreatedAt:   time.Now().Format(time.RFC3339),
	}
	f.auctions[auction.Id] = auction

	return auction
}

// repo.Artwork

func (f *fakeStore) GetArtworkById(ctx context.Context, id string) (*entity.Artwork, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}

	artwork, ok := f.artworks[uuidForm]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}
	cp := *artwork

	return &cp, nil
}

func (f *fakeStore) GetArtworkOwner(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	artwork, ok := f.artworks[id]
	if !ok {
		return uuid.Nil, repo_errors.ErrNotFound
	}

	return artwork.OwnerId, nil
}

func (f *fakeStore) GetActiveAuctionListings(ctx context.Context, now time.Time, pg *entity.PaginationInput) ([]entity.AuctionListing, error) {
	return nil, nil
}

func (f *fakeStore) GetOwnerAuctionListings(ctx context.Context, ownerId uuid.UUID) ([]entity.AuctionListing, error) {
	return nil, nil
}

// repo.Auction

func (f *fakeStore) CreateAuction(ctx context.Context, input *entity.CreateAuctionInput) (uuid.UUID, error) {
	artworkId, err := uuid.Parse(input.ArtworkId)
	if err != nil {
		return uuid.Nil, err
	}

	for _, auction := range f.auctions {
		if auction.ArtworkId == artworkId && auction.Status == common.AuctionActive {
			return uuid.Nil, repo_errors.ErrConflict
		}
	}

	auction := &entity.Auction{
		Id:          uuid.New(),
		ArtworkId:   artworkId,
		StartingBid: input.StartingBid,
		BuyNowPrice: input.BuyNowPrice,
		EndTime:     input.EndTime,
		Status:      common.AuctionActive,
		CreatedAt:   time.Now().Format(time.RFC3339),
	}
	f.auctions[auction.Id] = auction

	return auction.Id, nil
}

func (f *fakeStore) GetAuctionById(ctx context.Context, id uuid.UUID) (*entity.Auction, error) {
	auction, ok := f.auctions[id]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}
	cp := *auction

	return &cp, nil
}

func (f *fakeStore) GetAuctionByArtworkId(ctx context.Context, artworkId string) (*entity.Auction, error) {
	uuidForm, err := uuid.Parse(artworkId)
	if err != nil {
		return nil, err
	}

	var found *entity.Auction
	for _, auction := range f.auctions {
		if auction.ArtworkId != uuidForm {
			continue
		}
		if found == nil || auction.Status == common.AuctionActive {
			found = auction
		}
	}
	if found == nil {
		return nil, repo_errors.ErrNotFound
	}
	cp := *found

	return &cp, nil
}

func (f *fakeStore) PlaceBid(ctx context.Context, auctionId uuid.UUID, bidderId uuid.UUID, amount decimal.Decimal) (bool, error) {
	auction, ok := f.auctions[auctionId]
	if !ok || auction.Status != common.AuctionActive {
		return false, nil
	}
	if auction.CurrentBid.Valid && !auction.CurrentBid.Decimal.LessThan(amount) {
		return false, nil
	}

	auction.CurrentBid = decimal.NullDecimal{Decimal: amount, Valid: true}
	auction.CurrentBidder = uuid.NullUUID{UUID: bidderId, Valid: true}

	return true, nil
}

func (f *fakeStore) GetExpiredActiveAuctions(ctx context.Context, now time.Time) ([]entity.Auction, error) {
	expired := make([]entity.Auction, 0)
	for _, auction := range f.auctions {
		if auction.Status == common.AuctionActive && !auction.EndTime.After(now) {
			expired = append(expired, *auction)
		}
	}

	return expired, nil
}

func (f *fakeStore) GetUnsettledCompletedAuctions(ctx context.Context) ([]entity.Auction, error) {
	unsettled := make([]entity.Auction, 0)
	for _, auction := range f.auctions {
		if auction.Status == common.AuctionCompleted && auction.CurrentBidder.Valid && !auction.SettledAt.Valid {
			unsettled = append(unsettled, *auction)
		}
	}

	return unsettled, nil
}

func (f *fakeStore) MarkSettled(ctx context.Context, auctionId uuid.UUID) error {
	auction, ok := f.auctions[auctionId]
	if !ok {
		return repo_errors.ErrNotFound
	}
	if !auction.SettledAt.Valid {
		auction.SettledAt = sql.NullTime{Time: time.Now(), Valid: true}
	}

	return nil
}

func (f *fakeStore) CompleteAuction(ctx context.Context, auctionId uuid.UUID) (bool, error) {
	if err, ok := f.completeErr[auctionId]; ok {
		return false, err
	}

	auction, ok := f.auctions[auctionId]
	if !ok || auction.Status != common.AuctionActive {
		return false, nil
	}
	auction.Status = common.AuctionCompleted

	return true, nil
}

// repo.Ownership

func (f *fakeStore) TransferArtworkOwnership(ctx context.Context, artworkId uuid.UUID, newOwnerId uuid.UUID) error {
	if f.transferErr != nil {
		return f.transferErr
	}

	artwork, ok := f.artworks[artworkId]
	if !ok {
		return repo_errors.ErrNotFound
	}
	artwork.OwnerId = newOwnerId
	f.transfers++

	return nil
}

func (f *fakeStore) RecordTransaction(ctx context.Context, input *entity.CreateTransactionInput) error {
	f.transactions = append(f.transactions, *input)

	return nil
}

// repo.Events

type fakeEvents struct {
	processed map[string]bool
}

func newFakeEvents() *fakeEvents {
	return &fakeEvents{processed: make(map[string]bool)}
}

func (f *fakeEvents) MarkProcessed(ctx context.Context, eventId string) (bool, error) {
	if f.processed[eventId] {
		return false, nil
	}
	f.processed[eventId] = true

	return true, nil
}

func (f *fakeEvents) ClearProcessed(ctx context.Context, eventId string) error {
	delete(f.processed, eventId)

	return nil
}
