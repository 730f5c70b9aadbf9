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

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type AuctionRepo struct {
	*postgres.Postgres
}

func NewAuctionRepo(pgdb *postgres.Postgres) *AuctionRepo {
	return &AuctionRepo{pgdb}
}

func (r *AuctionRepo) CreateAuction(ctx context.Context, input *entity.CreateAuctionInput) (uuid.UUID, error) {
	uuidForm, err := uuid.Parse(input.ArtworkId)
	if err != nil {
		return uuid.Nil, err
	}

	createAuctionReq, args, _ := r.SqlBuilder.
		Insert("auctions").
		Columns("artwork_id", "starting_bid", "buy_now_price", "end_time", "status").
		Values(uuidForm, input.StartingBid, input.BuyNowPrice, input.EndTime, common.AuctionActive).
		Suffix("RETURNING id").
		ToSql()

	var auctionId uuid.UUID
	err = r.Database.QueryRowContext(ctx, createAuctionReq, args...).Scan(&auctionId)
	if err != nil {
		// The partial unique index on active auctions rejects a second
		// active auction for the same artwork.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return uuid.Nil, repo_errors.ErrConflict
		}

		return uuid.Nil, err
	}

	return auctionId, nil
}

func (r *AuctionRepo) GetAuctionById(ctx context.Context, id uuid.UUID) (*entity.Auction, error) {
	getAuctionReq, args, _ := r.SqlBuilder.
		Select("id", "artwork_id", "starting_bid", "current_bid", "current_bidder", "end_time", "status", "buy_now_price", "settled_at", "created_at").
		From("auctions").
		Where("id = ?", id).
		ToSql()

	return r.scanAuction(r.Database.QueryRowContext(ctx, getAuctionReq, args...))
}

func (r *AuctionRepo) GetAuctionByArtworkId(ctx context.Context, artworkId string) (*entity.Auction, error) {
	uuidForm, err := uuid.Parse(artworkId)
	if err != nil {
		return nil, err
	}

	// The active auction is the canonical one; completed rows are history.
	getAuctionReq, args, _ := r.SqlBuilder.
		Select("id", "artwork_id", "starting_bid", "current_bid", "current_bidder", "end_time", "status", "buy_now_price", "settled_at", "created_at").
		From("auctions").
		Where("artwork_id = ?", uuidForm).
		OrderBy("status = '" + common.AuctionActive + "' DESC").
		OrderBy("created_at DESC").
		Limit(1).
		ToSql()

	return r.scanAuction(r.Database.QueryRowContext(ctx, getAuctionReq, args...))
}

func (r *AuctionRepo) scanAuction(row *sql.Row) (*entity.Auction, error) {
	var auction entity.Auction
	var createdAt time.Time
	err := row.Scan(&auction.Id, &auction.ArtworkId, &auction.StartingBid, &auction.CurrentBid,
		&auction.CurrentBidder, &auction.EndTime, &auction.Status, &auction.BuyNowPrice, &auction.SettledAt, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}
	auction.CreatedAt = createdAt.Format(time.RFC3339)

	return &auction, nil
}

// PlaceBid applies the leading bid with a single conditional update: the row
// changes only while the auction is still active and the new amount beats the
// recorded one, so concurrent bids cannot regress the leader. Returns whether
// the update matched.
func (r *AuctionRepo) PlaceBid(ctx context.Context, auctionId uuid.UUID, bidderId uuid.UUID, amount decimal.Decimal) (bool, error) {
	placeBidReq, args, _ := r.SqlBuilder.
		Update("auctions").
		Set("current_bid", amount).
		Set("current_bidder", bidderId).
		Set("updated_at", time.Now()).
		Where("id = ?", auctionId).
		Where("status = ?", common.AuctionActive).
		Where("(current_bid IS NULL OR current_bid < ?)", amount).
		ToSql()

	result, err := r.Database.ExecContext(ctx, placeBidReq, args...)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

func (r *AuctionRepo) GetExpiredActiveAuctions(ctx context.Context, now time.Time) ([]entity.Auction, error) {
	getExpiredReq, args, _ := r.SqlBuilder.
		Select("id", "artwork_id", "starting_bid", "current_bid", "current_bidder", "end_time", "status", "buy_now_price", "settled_at", "created_at").
		From("auctions").
		Where("status = ?", common.AuctionActive).
		Where("end_time <= ?", now).
		ToSql()

	rows, err := r.Database.QueryContext(ctx, getExpiredReq, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	auctions := make([]entity.Auction, 0)
	for rows.Next() {
		var auction entity.Auction
		var createdAt time.Time
		err = rows.Scan(&auction.Id, &auction.ArtworkId, &auction.StartingBid, &auction.CurrentBid,
			&auction.CurrentBidder, &auction.EndTime, &auction.Status, &auction.BuyNowPrice, &auction.SettledAt, &createdAt)
		if err != nil {
			return nil, err
		}
		auction.CreatedAt = createdAt.Format(time.RFC3339)

		auctions = append(auctions, auction)
	}

	return auctions, rows.Err()
}

// CompleteAuction flips active to completed and reports whether this call won
// the flip. The conditional write is the exclusivity gate between the
// scheduler and a concurrent manual finalize: exactly one caller observes
// true for a given auction.
func (r *AuctionRepo) CompleteAuction(ctx context.Context, auctionId uuid.UUID) (bool, error) {
	completeReq, args, _ := r.SqlBuilder.
		Update("auctions").
		Set("status", common.AuctionCompleted).
		Set("updated_at", time.Now()).
		Where("id = ?", auctionId).
		Where("status = ?", common.AuctionActive).
		ToSql()

	result, err := r.Database.ExecContext(ctx, completeReq, args...)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

// GetUnsettledCompletedAuctions finds completed auctions that never got a
// settlement mark, i.e. the ownership transfer failed after the status flip.
// The reconciliation loop repairs these. Keyed on settled_at rather than the
// current owner, since the owner legitimately changes again on a resale.
func (r *AuctionRepo) GetUnsettledCompletedAuctions(ctx context.Context) ([]entity.Auction, error) {
	getUnsettledReq, args, _ := r.SqlBuilder.
		Select("id", "artwork_id", "starting_bid", "current_bid",
			"current_bidder", "end_time", "status", "buy_now_price", "settled_at", "created_at").
		From("auctions").
		Where("status = ?", common.AuctionCompleted).
		Where("current_bidder IS NOT NULL").
		Where("settled_at IS NULL").
		ToSql()

	rows, err := r.Database.QueryContext(ctx, getUnsettledReq, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	auctions := make([]entity.Auction, 0)
	for rows.Next() {
		var auction entity.Auction
		var createdAt time.Time
		err = rows.Scan(&auction.Id, &auction.ArtworkId, &auction.StartingBid, &auction.CurrentBid,
			&auction.CurrentBidder, &auction.EndTime, &auction.Status, &auction.BuyNowPrice, &auction.SettledAt, &createdAt)
		if err != nil {
			return nil, err
		}
		auction.CreatedAt = createdAt.Format(time.RFC3339)

		auctions = append(auctions, auction)
	}

	return auctions, rows.Err()
}

// MarkSettled records that ownership for a completed auction is final, either
// transferred to the winner or closed with no bids.
func (r *AuctionRepo) MarkSettled(ctx context.Context, auctionId uuid.UUID) error {
	markReq, args, _ := r.SqlBuilder.
		Update("auctions").
		Set("settled_at", time.Now()).
		Set("updated_at", time.Now()).
		Where("id = ?", auctionId).
		Where("settled_at IS NULL").
		ToSql()

	_, err := r.Database.ExecContext(ctx, markReq, args...)

	return err
}
