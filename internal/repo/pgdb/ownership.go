package pgdb

import (
	"art-auction-api/internal/entity"
	"art-auction-api/internal/repo/repo_errors"
	"art-auction-api/pkg/postgres"
	"context"
	"time"

	"github.com/google/uuid"
)

// OwnershipRepo carries the privileged writes of the marketplace: owner
// reassignment and the sale ledger. It is handed only to the auction
// finalizer and the payment webhook path.
type OwnershipRepo struct {
	*postgres.Postgres
}

func NewOwnershipRepo(pgdb *postgres.Postgres) *OwnershipRepo {
	return &OwnershipRepo{pgdb}
}

func (r *OwnershipRepo) TransferArtworkOwnership(ctx context.Context, artworkId uuid.UUID, newOwnerId uuid.UUID) error {
	transferReq, args, _ := r.SqlBuilder.
		Update("artworks").
		Set("owner_id", newOwnerId).
		Set("updated_at", time.Now()).
		Where("id = ?", artworkId).
		ToSql()

	result, err := r.Database.ExecContext(ctx, transferReq, args...)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repo_errors.ErrNotFound
	}

	return nil
}

func (r *OwnershipRepo) RecordTransaction(ctx context.Context, input *entity.CreateTransactionInput) error {
	artworkId, err := uuid.Parse(input.ArtworkId)
	if err != nil {
		return err
	}
	sellerId, err := uuid.Parse(input.SellerId)
	if err != nil {
		return err
	}
	buyerId, err := uuid.Parse(input.BuyerId)
	if err != nil {
		return err
	}

	recordReq, args, _ := r.SqlBuilder.
		Insert("artwork_transactions").
		Columns("artwork_id", "seller_id", "buyer_id", "amount", "transaction_date").
		Values(artworkId, sellerId, buyerId, input.Amount, time.Now()).
		ToSql()

	_, err = r.Database.ExecContext(ctx, recordReq, args...)

	return err
}
