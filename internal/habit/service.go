// Package habit holds the habit validation and persistence rules.
package habit

import (
	"context"
	"errors"
	"time"

	"habit_tracker/internal/apperr"
	"habit_tracker/internal/domain"
)

// Repository persists habits. FindByID returns nil, nil when the habit does not
// exist; Update returns domain.ErrNotFound when the row is gone.
type Repository interface {
	Create(ctx context.Context, h *domain.Habit) error
	FindByID(ctx context.Context, id uint) (*domain.Habit, error)
	Update(ctx context.Context, h *domain.Habit) error
	Delete(ctx context.Context, id uint) error
	ListByUser(ctx context.Context, userID uint) ([]domain.HabitWithFrequency, error)
}

// FrequencyLookup finds frequency options by primary key, nil, nil when absent.
type FrequencyLookup interface {
	FindByID(ctx context.Context, id uint) (*domain.FrequencyOption, error)
}

// Service applies the habit rules on top of the repositories
type Service struct {
	habits      Repository
	frequencies FrequencyLookup
	now         func() time.Time
}

// NewService constructs a Service.
func NewService(habits Repository, frequencies FrequencyLookup) *Service {
	return &Service{habits: habits, frequencies: frequencies, now: time.Now}
}

// CreateHabit validates p and stores a new habit owned by callerID.
// Identical payloads produce distinct habits.
func (s *Service) CreateHabit(ctx context.Context, callerID uint, p Payload) (*domain.Habit, error) {
	if callerID == 0 {
		return nil, apperr.New(apperr.Unauthenticated, msgUnauthenticated)
	}
	n, err := s.ValidateAndNormalize(ctx, callerID, p)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	h := &domain.Habit{UserID: callerID, CreatedAt: now, UpdatedAt: now}
	n.apply(h)
	if err := s.habits.Create(ctx, h); err != nil {
		return nil, apperr.Storage(err)
	}
	return h, nil
}

// OwnedHabit loads habitID and checks that callerID owns it
func (s *Service) OwnedHabit(ctx context.Context, callerID, habitID uint) (*domain.Habit, error) {
	if callerID == 0 {
		return nil, apperr.New(apperr.Unauthenticated, msgUnauthenticated)
	}
	existing, err := s.habits.FindByID(ctx, habitID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if err := AuthorizeOwnership(existing, callerID); err != nil {
		return nil, err
	}
	return existing, nil
}

// UpdateHabit replaces the editable fields of habitID. Only the owner may
// update; id, owner and created_at are preserved.
func (s *Service) UpdateHabit(ctx context.Context, callerID, habitID uint, p Payload) (*domain.Habit, error) {
	existing, err := s.OwnedHabit(ctx, callerID, habitID)
	if err != nil {
		return nil, err
	}
	n, err := s.ValidateAndNormalize(ctx, callerID, p)
	if err != nil {
		return nil, err
	}
	updated := *existing
	n.apply(&updated)
	updated.UpdatedAt = s.now().UTC()
	if err := s.habits.Update(ctx, &updated); err != nil {
		// deleted between the load and the write
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperr.New(apperr.NotFound, msgHabitNotFound)
		}
		return nil, apperr.Storage(err)
	}
	return &updated, nil
}

// DeleteHabit removes habitID if callerID owns it.
func (s *Service) DeleteHabit(ctx context.Context, callerID, habitID uint) error {
	if _, err := s.OwnedHabit(ctx, callerID, habitID); err != nil {
		return err
	}
	if err := s.habits.Delete(ctx, habitID); err != nil {
		return apperr.Storage(err)
	}
	return nil
}

// ListHabits returns the caller's habits in insertion order, each with the
// name of its frequency option.
func (s *Service) ListHabits(ctx context.Context, callerID uint) ([]domain.HabitWithFrequency, error) {
	if callerID == 0 {
		return nil, apperr.New(apperr.Unauthenticated, msgUnauthenticated)
	}
	habits, err := s.habits.ListByUser(ctx, callerID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if habits == nil {
		habits = []domain.HabitWithFrequency{}
	}
	return habits, nil
}
