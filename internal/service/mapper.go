package service

import (
	"art-auction-api/internal/entity"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func mapArtwork(a *entity.Artwork) *entity.ArtworkOutputModel {
	return &entity.ArtworkOutputModel{
		Id:          a.Id.String(),
		OwnerId:     a.OwnerId.String(),
		Title:       a.Title,
		Description: a.Description,
		ImageUrl:    a.ImageUrl,
		Category:    a.CategoryName,
		Price:       nullDecimalString(a.Price),
		CreatedAt:   a.CreatedAt,
	}
}

func mapAuction(a *entity.Auction) *entity.AuctionOutputModel {
	return &entity.AuctionOutputModel{
		Id:            a.Id.String(),
		ArtworkId:     a.ArtworkId.String(),
		StartingBid:   a.StartingBid.String(),
		CurrentBid:    nullDecimalString(a.CurrentBid),
		CurrentBidder: nullUUIDString(a.CurrentBidder),
		EndTime:       a.EndTime.Format(time.RFC3339),
		Status:        a.Status,
		BuyNowPrice:   nullDecimalString(a.BuyNowPrice),
		CreatedAt:     a.CreatedAt,
	}
}

func mapListing(l *entity.AuctionListing) *entity.AuctionListingOutputModel {
	out := &entity.AuctionListingOutputModel{
		Id:          l.ArtworkId.String(),
		Title:       l.Title,
		Description: l.Description,
		ImageUrl:    l.ImageUrl,
		OwnerId:     l.OwnerId.String(),
		OwnerName:   l.OwnerName,
		Category:    l.CategoryName,
		StartingBid: l.StartingBid.String(),
		CurrentBid:  nullDecimalString(l.CurrentBid),
		BuyNowPrice: nullDecimalString(l.BuyNowPrice),
		AuctionEnd:  l.EndTime,
	}
	if l.CurrentBidder.Valid && l.BidderName.Valid {
		out.CurrentBidder = &entity.BidderInfo{FullName: l.BidderName.String}
	}

	return out
}

func mapListings(listings []entity.AuctionListing) []entity.AuctionListingOutputModel {
	s := make([]entity.AuctionListingOutputModel, 0)
	for _, listing := range listings {
		s = append(s, *mapListing(&listing))
	}

	return s
}

func nullDecimalString(d decimal.NullDecimal) *string {
	if !d.Valid {
		return nil
	}
	s := d.Decimal.String()

	return &s
}

func nullUUIDString(u uuid.NullUUID) *string {
	if !u.Valid {
		return nil
	}
	s := u.UUID.String()

	return &s
}
