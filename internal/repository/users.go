package repository

import (
	"context"

	"habit_tracker/internal/domain"

	"gorm.io/gorm"
)

// UserRepository stores users
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository constructs a UserRepository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts u; a taken username yields domain.ErrDuplicate
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	return uniqueErr(r.db.WithContext(ctx).Create(u).Error)
}

// FindByID returns the user or nil when absent
func (r *UserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	return findOne[domain.User](r.db.WithContext(ctx), id)
}

// FindByUsername returns the user or nil when absent
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return findOne[domain.User](r.db.WithContext(ctx).Where("username = ?", username))
}
