package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/unishowcase/server/internal/model"
	"gorm.io/gorm"
)

// Repository defines the interface for user data access.
type Repository interface {
	Create(ctx context.Context, user *model.User) error
	// GetByID returns nil when the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	// GetByEmail returns nil when no user has the email.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new user repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *repository) first(ctx context.Context, query string, args ...any) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where(query, args...).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}
