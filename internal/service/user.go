package service

import (
	"art-auction-api/internal/repo"
	"art-auction-api/internal/repo/repo_errors"
	"context"
	"errors"

	"github.com/google/uuid"
)

type UserService struct {
	userRepo repo.User
}

func NewUserService(repos *repo.Repositories) *UserService {
	return &UserService{userRepo: repos.User}
}

func (s *UserService) Authenticate(ctx context.Context, token string) (uuid.UUID, error) {
	if token == "" {
		return uuid.Nil, ErrInvalidSession
	}

	userId, err := s.userRepo.GetUserIdByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return uuid.Nil, ErrInvalidSession
		}

		return uuid.Nil, err
	}

	return userId, nil
}
