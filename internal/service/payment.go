package service

import (
	"art-auction-api/internal/entity"
	"art-auction-api/internal/repo"
	"art-auction-api/internal/repo/repo_errors"
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
)

// PaymentService applies completed outright purchases delivered by the
// payment processor's webhook. Structurally this is the same ownership
// transfer the auction finalizer performs, keyed by the processor's event id
// so redeliveries are harmless.
type PaymentService struct {
	ownershipRepo repo.Ownership
	eventsRepo    repo.Events
	logger        *log.Logger
}

func NewPaymentService(repos *repo.Repositories, logger *log.Logger) *PaymentService {
	return &PaymentService{
		ownershipRepo: repos.Ownership,
		eventsRepo:    repos.Events,
		logger:        logger,
	}
}

func (s *PaymentService) HandleCheckoutCompleted(ctx context.Context, event *entity.CheckoutEvent) error {
	if !event.Paid {
		s.logger.Printf("checkout session %s not paid, skipping", event.EventId)
		return nil
	}

	artworkId, err := uuid.Parse(event.ArtworkId)
	if err != nil {
		return fmt.Errorf("invalid artwork id in checkout metadata: %w", err)
	}
	buyerId, err := uuid.Parse(event.BuyerId)
	if err != nil {
		return fmt.Errorf("invalid buyer id in checkout metadata: %w", err)
	}

	first, err := s.eventsRepo.MarkProcessed(ctx, event.EventId)
	if err != nil {
		return err
	}
	if !first {
		s.logger.Printf("checkout event %s already processed, skipping", event.EventId)
		return nil
	}

	if err := s.ownershipRepo.TransferArtworkOwnership(ctx, artworkId, buyerId); err != nil {
		s.clearEvent(ctx, event.EventId)
		if errors.Is(err, repo_errors.ErrNotFound) {
			return ErrArtworkNotFound
		}

		return fmt.Errorf("failed to transfer artwork %s to buyer %s: %w", artworkId, buyerId, err)
	}

	transaction := &entity.CreateTransactionInput{
		ArtworkId: event.ArtworkId,
		SellerId:  event.SellerId,
		BuyerId:   event.BuyerId,
		Amount:    event.Amount,
	}
	if err := s.ownershipRepo.RecordTransaction(ctx, transaction); err != nil {
		s.clearEvent(ctx, event.EventId)
		return fmt.Errorf("failed to record purchase of artwork %s: %w", artworkId, err)
	}

	s.logger.Printf("artwork %s sold to %s (event %s)", event.ArtworkId, event.BuyerId, event.EventId)

	return nil
}

// clearEvent lets the processor's redelivery retry an event whose apply
// failed midway.
func (s *PaymentService) clearEvent(ctx context.Context, eventId string) {
	if err := s.eventsRepo.ClearProcessed(ctx, eventId); err != nil {
		s.logger.Printf("failed to clear processed mark for event %s: %v", eventId, err)
	}
}
