package service

import (
	"art-auction-api/internal/common"
	"art-auction-api/internal/entity"
	"art-auction-api/internal/repo"
	"art-auction-api/internal/repo/repo_errors"
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AuctionService struct {
	auctionRepo   repo.Auction
	artworkRepo   repo.Artwork
	ownershipRepo repo.Ownership
	logger        *log.Logger
}

func NewAuctionService(repos *repo.Repositories, logger *log.Logger) *AuctionService {
	return &AuctionService{
		auctionRepo:   repos.Auction,
		artworkRepo:   repos.Artwork,
		ownershipRepo: repos.Ownership,
		logger:        logger,
	}
}

func (s *AuctionService) CreateAuction(ctx context.Context, callerId uuid.UUID, input *entity.CreateAuctionInput) (*entity.AuctionOutputModel, error) {
	artwork, err := s.artworkRepo.GetArtworkById(ctx, input.ArtworkId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrArtworkNotFound
		}

		return nil, err
	}

	if artwork.OwnerId != callerId {
		return nil, ErrNotArtworkOwner
	}

	if !input.StartingBid.IsPositive() {
		return nil, ErrInvalidStartingBid
	}

	if input.DurationDays <= 0 {
		input.DurationDays = 1
	}
	input.EndTime = time.Now().Add(time.Duration(input.DurationDays) * 24 * time.Hour)

	auctionId, err := s.auctionRepo.CreateAuction(ctx, input)
	if err != nil {
		if errors.Is(err, repo_errors.ErrConflict) {
			return nil, ErrActiveAuctionExists
		}

		return nil, err
	}

	auction, err := s.auctionRepo.GetAuctionById(ctx, auctionId)
	if err != nil {
		return nil, err
	}

	return mapAuction(auction), nil
}

func (s *AuctionService) GetAuctionByArtworkId(ctx context.Context, artworkId string) (*entity.AuctionOutputModel, error) {
	auction, err := s.auctionRepo.GetAuctionByArtworkId(ctx, artworkId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrAuctionNotFound
		}

		return nil, err
	}

	return mapAuction(auction), nil
}

// PlaceBid validates a proposed bid against the live auction state and, when
// it passes, applies it through the conditional leading-bid update. The first
// bid must reach the starting bid; later bids must beat the current one.
func (s *AuctionService) PlaceBid(ctx context.Context, artworkId string, bidderId uuid.UUID, amount decimal.Decimal) (*entity.BidOutputModel, error) {
	auction, err := s.auctionRepo.GetAuctionByArtworkId(ctx, artworkId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrAuctionNotFound
		}

		return nil, err
	}

	if auction.Status != common.AuctionActive {
		return nil, ErrAuctionEnded
	}

	if time.Now().After(auction.EndTime) {
		return nil, ErrAuctionEnded
	}

	if !amount.IsPositive() {
		return nil, ErrInvalidBidAmount
	}

	if auction.CurrentBid.Valid {
		if amount.LessThanOrEqual(auction.CurrentBid.Decimal) {
			return nil, ErrBidTooLow
		}
	} else if amount.LessThan(auction.StartingBid) {
		return nil, ErrBidTooLow
	}

	applied, err := s.auctionRepo.PlaceBid(ctx, auction.Id, bidderId, amount)
	if err != nil {
		return nil, err
	}
	if !applied {
		// A concurrent bid or finalization got there first.
		return nil, ErrBidTooLow
	}

	updated, err := s.auctionRepo.GetAuctionById(ctx, auction.Id)
	if err != nil {
		return nil, err
	}

	artwork, err := s.artworkRepo.GetArtworkById(ctx, artworkId)
	if err != nil {
		return nil, err
	}

	return &entity.BidOutputModel{
		Success:    true,
		Message:    "Bid placed successfully",
		ArtworkId:  artworkId,
		CurrentBid: updated.CurrentBid.Decimal.String(),
		Artwork:    mapArtwork(artwork),
	}, nil
}

// FinishAuction is the owner-triggered path. The owner may close early once
// someone has bid, or at any point after the end time.
func (s *AuctionService) FinishAuction(ctx context.Context, artworkId string, callerId uuid.UUID) (*entity.FinalizeResult, error) {
	auction, err := s.auctionRepo.GetAuctionByArtworkId(ctx, artworkId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrAuctionNotFound
		}

		return nil, err
	}

	ownerId, err := s.artworkRepo.GetArtworkOwner(ctx, auction.ArtworkId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrArtworkNotFound
		}

		return nil, err
	}

	if ownerId != callerId {
		return nil, ErrNotArtworkOwner
	}

	now := time.Now()
	canFinalize := !now.Before(auction.EndTime) ||
		(auction.Status == common.AuctionActive && auction.CurrentBidder.Valid)
	if !canFinalize {
		return nil, ErrAuctionNotReady
	}

	return s.FinalizeAuction(ctx, auction.Id)
}

// FinalizeAuction closes an auction and settles ownership. The conditional
// active→completed update is the exclusivity gate: once it lands, no bid can
// touch the row, so the winner read afterwards is final. The whole operation
// is safe to re-run; a second call finds the status already flipped and the
// settlement already recorded, and changes nothing.
func (s *AuctionService) FinalizeAuction(ctx context.Context, auctionId uuid.UUID) (*entity.FinalizeResult, error) {
	flipped, err := s.auctionRepo.CompleteAuction(ctx, auctionId)
	if err != nil {
		return nil, fmt.Errorf("failed to close auction %s: %w", auctionId, err)
	}

	auction, err := s.auctionRepo.GetAuctionById(ctx, auctionId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrAuctionNotFound
		}

		return nil, err
	}

	result := &entity.FinalizeResult{
		AuctionId: auction.Id,
		ArtworkId: auction.ArtworkId,
		WinnerId:  auction.CurrentBidder,
		Completed: flipped,
	}

	if !auction.CurrentBidder.Valid {
		s.markSettled(ctx, auction)

		return result, nil
	}

	// settled_at is the record of a finished transfer; once it is set the
	// artwork is never touched again, so a later resale stays with its buyer.
	if auction.SettledAt.Valid {
		return result, nil
	}

	ownerId, err := s.artworkRepo.GetArtworkOwner(ctx, auction.ArtworkId)
	if err != nil {
		return nil, err
	}

	winnerId := auction.CurrentBidder.UUID
	if ownerId == winnerId {
		// The winner already holds the artwork (a concurrent finalizer got
		// there, or the owner won their own auction). Nothing to transfer.
		s.markSettled(ctx, auction)

		return result, nil
	}

	if err := s.ownershipRepo.TransferArtworkOwnership(ctx, auction.ArtworkId, winnerId); err != nil {
		// The status is already completed and settled_at still null; the
		// reconciliation loop picks the auction up again.
		return nil, fmt.Errorf("failed to transfer artwork %s to winner %s: %w", auction.ArtworkId, winnerId, err)
	}
	result.Transferred = true
	s.markSettled(ctx, auction)

	if !flipped {
		s.logger.Printf("repaired pending ownership transfer for auction %s (artwork %s)", auction.Id, auction.ArtworkId)
	}

	transaction := &entity.CreateTransactionInput{
		ArtworkId: auction.ArtworkId.String(),
		SellerId:  ownerId.String(),
		BuyerId:   winnerId.String(),
		Amount:    auction.CurrentBid.Decimal,
	}
	if err := s.ownershipRepo.RecordTransaction(ctx, transaction); err != nil {
		// Bookkeeping only; the sale itself is settled.
		s.logger.Printf("failed to record sale for auction %s: %v", auction.Id, err)
	}

	return result, nil
}

func (s *AuctionService) markSettled(ctx context.Context, auction *entity.Auction) {
	if auction.SettledAt.Valid {
		return
	}
	if err := s.auctionRepo.MarkSettled(ctx, auction.Id); err != nil {
		// The next reconciliation run retries; the owner-equality check above
		// keeps the retry from transferring twice.
		s.logger.Printf("failed to mark auction %s settled: %v", auction.Id, err)
	}
}

// ReconcileExpired is the scheduler entry point. It finalizes every active
// auction past its end time and repairs completed auctions whose transfer
// never landed. One auction failing never stops the rest of the batch.
func (s *AuctionService) ReconcileExpired(ctx context.Context) (int, error) {
	expired, err := s.auctionRepo.GetExpiredActiveAuctions(ctx, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to list expired auctions: %w", err)
	}

	unsettled, err := s.auctionRepo.GetUnsettledCompletedAuctions(ctx)
	if err != nil {
		s.logger.Printf("failed to list unsettled auctions: %v", err)
	}

	finalized := 0
	for _, auction := range append(expired, unsettled...) {
		result, err := s.FinalizeAuction(ctx, auction.Id)
		if err != nil {
			s.logger.Printf("failed to finalize auction %s (artwork %s): %v", auction.Id, auction.ArtworkId, err)
			continue
		}

		finalized++
		switch {
		case result.Transferred:
			s.logger.Printf("auction %s completed, artwork %s transferred to %s",
				result.AuctionId, result.ArtworkId, result.WinnerId.UUID)
		case !result.WinnerId.Valid:
			s.logger.Printf("auction %s completed with no winning bidder", result.AuctionId)
		default:
			s.logger.Printf("auction %s already settled", result.AuctionId)
		}
	}

	return finalized, nil
}
