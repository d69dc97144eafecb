package repository

import (
	"context"

	"github.com/turbocafe/turbocafe-api/internal/domain/entity"
)

// UserRepository is the persistence port for UserProfile.
// Lookups return (nil, nil) when no row matches.
type UserRepository interface {
	Create(ctx context.Context, user *entity.UserProfile) error
	GetByID(ctx context.Context, id string) (*entity.UserProfile, error)
	GetByEmail(ctx context.Context, email string) (*entity.UserProfile, error)
	GetByUsername(ctx context.Context, username string) (*entity.UserProfile, error)
	Update(ctx context.Context, user *entity.UserProfile) error
}
