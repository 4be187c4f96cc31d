package repository

import (
	"context"
	"errors"
	"fmt"

	"habit_tracker/internal/domain"

	"gorm.io/gorm"
)

// FrequencyOptionRepository stores frequency options
type FrequencyOptionRepository struct {
	db *gorm.DB
}

// NewFrequencyOptionRepository constructs a FrequencyOptionRepository
func NewFrequencyOptionRepository(db *gorm.DB) *FrequencyOptionRepository {
	return &FrequencyOptionRepository{db: db}
}

// FindByID returns the option or nil when absent
func (r *FrequencyOptionRepository) FindByID(ctx context.Context, id uint) (*domain.FrequencyOption, error) {
	return findOne[domain.FrequencyOption](r.db.WithContext(ctx), id)
}

// ListVisible returns defaults plus the options owned by userID
func (r *FrequencyOptionRepository) ListVisible(ctx context.Context, userID uint) ([]domain.FrequencyOption, error) {
	var options []domain.FrequencyOption
	err := r.db.WithContext(ctx).
		Where("user_id IS NULL OR user_id = ?", userID).
		Order("is_default DESC").
		Order("name ASC").
		Find(&options).Error
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return options, nil
}

// Create inserts o; a taken name yields domain.ErrDuplicate
func (r *FrequencyOptionRepository) Create(ctx context.Context, o *domain.FrequencyOption) error {
	return uniqueErr(r.db.WithContext(ctx).Create(o).Error)
}

// CountHabits counts the habits referencing the option
func (r *FrequencyOptionRepository) CountHabits(ctx context.Context, id uint) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&domain.Habit{}).Where("target_frequency_id = ?", id).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

// Delete removes the option. The RESTRICT constraint yields domain.ErrInUse
// when a habit was attached after CountHabits ran.
func (r *FrequencyOptionRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Delete(&domain.FrequencyOption{}, id).Error
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return fmt.Errorf("%w: %v", domain.ErrInUse, err)
	}
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
