package pgdb

import (
	"art-auction-api/internal/repo/repo_errors"
	"art-auction-api/pkg/postgres"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

type UserRepo struct {
	*postgres.Postgres
}

func NewUserRepo(pgdb *postgres.Postgres) *UserRepo {
	return &UserRepo{pgdb}
}

// GetUserIdByToken resolves a session token issued by the auth provider.
// Session creation itself lives outside this service.
func (r *UserRepo) GetUserIdByToken(ctx context.Context, token string) (uuid.UUID, error) {
	getSessionReq, args, _ := r.SqlBuilder.
		Select("user_id").
		From("sessions").
		Where("token = ?", token).
		Where("expires_at > ?", time.Now()).
		ToSql()

	var userId uuid.UUID
	err := r.Database.QueryRowContext(ctx, getSessionReq, args...).Scan(&userId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, repo_errors.ErrNotFound
		}

		return uuid.Nil, err
	}

	return userId, nil
}
