package repository

import (
	"context"

	"github.com/taskord/taskord-api/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
}
