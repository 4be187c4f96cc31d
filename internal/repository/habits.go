package repository

import (
	"context"
	"fmt"

	"habit_tracker/internal/domain"

	"gorm.io/gorm"
)

// HabitRepository stores habits
type HabitRepository struct {
	db *gorm.DB
}

// NewHabitRepository constructs a HabitRepository
func NewHabitRepository(db *gorm.DB) *HabitRepository {
	return &HabitRepository{db: db}
}

// Create inserts h and fills in its id
func (r *HabitRepository) Create(ctx context.Context, h *domain.Habit) error {
	if err := r.db.WithContext(ctx).Create(h).Error; err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// FindByID returns the habit or nil when absent
func (r *HabitRepository) FindByID(ctx context.Context, id uint) (*domain.Habit, error) {
	return findOne[domain.Habit](r.db.WithContext(ctx), id)
}

// Update writes every column of h except created_at. A row that no longer
// exists yields domain.ErrNotFound instead of being inserted again.
func (r *HabitRepository) Update(ctx context.Context, h *domain.Habit) error {
	res := r.db.WithContext(ctx).Model(h).Select("*").Omit("created_at").Updates(h)
	if res.Error != nil {
		return fmt.Errorf("db error: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the habit with the given id
func (r *HabitRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&domain.Habit{}, id).Error; err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// ListByUser returns the user's habits by id, joined with their frequency name
func (r *HabitRepository) ListByUser(ctx context.Context, userID uint) ([]domain.HabitWithFrequency, error) {
	var habits []domain.HabitWithFrequency
	err := r.db.WithContext(ctx).
		Table("habits").
		Select("habits.*, frequency_options.name AS target_frequency_name").
		Joins("LEFT JOIN frequency_options ON frequency_options.id = habits.target_frequency_id").
		Where("habits.user_id = ?", userID).
		Order("habits.id").
		Scan(&habits).Error
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return habits, nil
}
