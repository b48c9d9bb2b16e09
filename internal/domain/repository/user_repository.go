package repository

import (
	"context"

	"github.com/scaleworks/ddt-api/internal/domain/entity"
)

// UserRepository defines the interface for operator account operations
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Create(ctx context.Context, user *entity.User) error
}
