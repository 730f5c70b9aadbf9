package service

import (
	"art-auction-api/internal/entity"
	"art-auction-api/internal/repo"
	"context"
	"time"

	"github.com/google/uuid"
)

type ArtworkService struct {
	artworkRepo repo.Artwork
}

func NewArtworkService(repos *repo.Repositories) *ArtworkService {
	return &ArtworkService{artworkRepo: repos.Artwork}
}

func (s *ArtworkService) GetActiveAuctions(ctx context.Context, pg *entity.PaginationInput) ([]entity.AuctionListingOutputModel, error) {
	listings, err := s.artworkRepo.GetActiveAuctionListings(ctx, time.Now(), pg)
	if err != nil {
		return nil, err
	}

	return mapListings(listings), nil
}

func (s *ArtworkService) GetUserAuctions(ctx context.Context, ownerId uuid.UUID) ([]entity.AuctionListingOutputModel, error) {
	listings, err := s.artworkRepo.GetOwnerAuctionListings(ctx, ownerId)
	if err != nil {
		return nil, err
	}

	return mapListings(listings), nil
}
