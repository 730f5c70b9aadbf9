package pgdb

import (
	"art-auction-api/internal/common"
	"art-auction-api/internal/entity"
	"art-auction-api/internal/repo/repo_errors"
	"art-auction-api/pkg/postgres"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type ArtworkRepo struct {
	*postgres.Postgres
}

func NewArtworkRepo(pgdb *postgres.Postgres) *ArtworkRepo {
	return &ArtworkRepo{pgdb}
}

func (r *ArtworkRepo) GetArtworkById(ctx context.Context, id string) (*entity.Artwork, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}

	getArtworkReq, args, _ := r.SqlBuilder.
		Select("artworks.id", "artworks.owner_id", "artworks.title",
			"coalesce(artworks.description, '')", "coalesce(artworks.image_url, '')",
			"coalesce(categories.name, '')", "artworks.price", "artworks.created_at").
		From("artworks").
		LeftJoin("categories ON categories.id = artworks.category_id").
		Where("artworks.id = ?", uuidForm).
		ToSql()

	var artwork entity.Artwork
	var createdAt time.Time
	row := r.Database.QueryRowContext(ctx, getArtworkReq, args...)
	err = row.Scan(&artwork.Id, &artwork.OwnerId, &artwork.Title, &artwork.Description,
		&artwork.ImageUrl, &artwork.CategoryName, &artwork.Price, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}
	artwork.CreatedAt = createdAt.Format(time.RFC3339)

	return &artwork, nil
}

func (r *ArtworkRepo) GetArtworkOwner(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	getOwnerReq, args, _ := r.SqlBuilder.
		Select("owner_id").
		From("artworks").
		Where("id = ?", id).
		ToSql()

	var ownerId uuid.UUID
	err := r.Database.QueryRowContext(ctx, getOwnerReq, args...).Scan(&ownerId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, repo_errors.ErrNotFound
		}

		return uuid.Nil, err
	}

	return ownerId, nil
}

func (r *ArtworkRepo) GetActiveAuctionListings(ctx context.Context, now time.Time, pg *entity.PaginationInput) ([]entity.AuctionListing, error) {
	req := r.listingQuery().
		Where("auctions.status = ?", common.AuctionActive).
		Where("auctions.end_time > ?", now).
		OrderBy("auctions.end_time ASC")
	if pg != nil && pg.Limit > 0 {
		req = req.Limit(uint64(pg.Limit)).Offset(uint64(pg.Offset))
	}

	getListingsReq, args, _ := req.ToSql()

	return r.queryListings(ctx, getListingsReq, args)
}

func (r *ArtworkRepo) GetOwnerAuctionListings(ctx context.Context, ownerId uuid.UUID) ([]entity.AuctionListing, error) {
	getListingsReq, args, _ := r.listingQuery().
		Where("artworks.owner_id = ?", ownerId).
		Where("auctions.status = ?", common.AuctionActive).
		OrderBy("artworks.created_at DESC").
		ToSql()

	return r.queryListings(ctx, getListingsReq, args)
}

func (r *ArtworkRepo) listingQuery() squirrel.SelectBuilder {
	return r.SqlBuilder.
		Select("artworks.id", "artworks.title", "coalesce(artworks.description, '')",
			"coalesce(artworks.image_url, '')", "artworks.owner_id",
			"coalesce(owners.full_name, '')", "coalesce(categories.name, '')",
			"auctions.starting_bid", "auctions.current_bid", "auctions.current_bidder",
			"bidders.full_name", "auctions.buy_now_price", "auctions.end_time", "auctions.status").
		From("artworks").
		InnerJoin("auctions ON auctions.artwork_id = artworks.id").
		LeftJoin("categories ON categories.id = artworks.category_id").
		LeftJoin("users owners ON owners.id = artworks.owner_id").
		LeftJoin("users bidders ON bidders.id = auctions.current_bidder")
}

func (r *ArtworkRepo) queryListings(ctx context.Context, req string, args []interface{}) ([]entity.AuctionListing, error) {
	rows, err := r.Database.QueryContext(ctx, req, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	listings := make([]entity.AuctionListing, 0)
	for rows.Next() {
		var listing entity.AuctionListing
		var endTime time.Time
		err = rows.Scan(&listing.ArtworkId, &listing.Title, &listing.Description,
			&listing.ImageUrl, &listing.OwnerId, &listing.OwnerName, &listing.CategoryName,
			&listing.StartingBid, &listing.CurrentBid, &listing.CurrentBidder,
			&listing.BidderName, &listing.BuyNowPrice, &endTime, &listing.Status)
		if err != nil {
			return nil, err
		}
		listing.EndTime = endTime.Format(time.RFC3339)

		listings = append(listings, listing)
	}

	return listings, rows.Err()
}
