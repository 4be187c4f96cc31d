// Package frequency manages the recurrence options habits refer to.
package frequency

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"habit_tracker/internal/apperr"
	"habit_tracker/internal/domain"
)

const maxNameLength = 50

// Repository persists frequency options. FindByID returns nil, nil when absent.
type Repository interface {
	ListVisible(ctx context.Context, userID uint) ([]domain.FrequencyOption, error)
	FindByID(ctx context.Context, id uint) (*domain.FrequencyOption, error)
	Create(ctx context.Context, o *domain.FrequencyOption) error
	Delete(ctx context.Context, id uint) error
	CountHabits(ctx context.Context, id uint) (int64, error)
}

// CreateInput is the body of a custom option
type CreateInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// Service implements listing and custom option management
type Service struct {
	repo Repository
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns the defaults and the caller's own options, defaults first, then by name.
func (s *Service) List(ctx context.Context, callerID uint) ([]domain.FrequencyOption, error) {
	if callerID == 0 {
		return nil, apperr.New(apperr.Unauthenticated, "Not authenticated.")
	}
	options, err := s.repo.ListVisible(ctx, callerID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if options == nil {
		options = []domain.FrequencyOption{}
	}
	return options, nil
}

// Create adds a custom option owned by callerID
func (s *Service) Create(ctx context.Context, callerID uint, in CreateInput) (*domain.FrequencyOption, error) {
	if callerID == 0 {
		return nil, apperr.New(apperr.Unauthenticated, "Not authenticated.")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperr.New(apperr.MissingRequiredField, "Required fields are missing.")
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return nil, apperr.New(apperr.InvalidRequest, "name must be at most 50 characters.")
	}
	var description *string
	if in.Description != nil {
		if d := strings.TrimSpace(*in.Description); d != "" {
			description = &d
		}
	}
	owner := callerID
	option := &domain.FrequencyOption{
		Name:        name,
		Description: description,
		UserID:      &owner,
		IsDefault:   false,
	}
	if err := s.repo.Create(ctx, option); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperr.Wrap(apperr.Conflict, "A frequency option with this name already exists.", err)
		}
		return nil, apperr.Storage(err)
	}
	return option, nil
}

// Delete removes a custom option. Defaults and options still used by a habit stay.
func (s *Service) Delete(ctx context.Context, callerID, id uint) error {
	if callerID == 0 {
		return apperr.New(apperr.Unauthenticated, "Not authenticated.")
	}
	option, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return apperr.Storage(err)
	}
	if option == nil {
		return apperr.New(apperr.NotFound, "Frequency option not found.")
	}
	if !option.IsOwnedBy(callerID) {
		return apperr.New(apperr.Forbidden, "Not allowed.")
	}
	used, err := s.repo.CountHabits(ctx, id)
	if err != nil {
		return apperr.Storage(err)
	}
	if used > 0 {
		return apperr.New(apperr.Conflict, "The frequency option is still used by a habit.")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrInUse) {
			return apperr.Wrap(apperr.Conflict, "The frequency option is still used by a habit.", err)
		}
		return apperr.Storage(err)
	}
	return nil
}
