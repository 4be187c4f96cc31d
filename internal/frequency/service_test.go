package frequency

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habit_tracker/internal/apperr"
	"habit_tracker/internal/domain"
	"habit_tracker/internal/repository/memory"
)

type brokenRepo struct{}

func (brokenRepo) ListVisible(context.Context, uint) ([]domain.FrequencyOption, error) {
	return nil, errors.New("down")
}
func (brokenRepo) FindByID(context.Context, uint) (*domain.FrequencyOption, error) {
	return nil, errors.New("down")
}
func (brokenRepo) Create(context.Context, *domain.FrequencyOption) error { return errors.New("down") }
func (brokenRepo) Delete(context.Context, uint) error                    { return errors.New("down") }
func (brokenRepo) CountHabits(context.Context, uint) (int64, error)      { return 0, errors.New("down") }

func ptr(s string) *string { return &s }

func TestList_DefaultsThenOwn(t *testing.T) {
	store := memory.NewSeededStore()
	svc := NewService(store.FrequencyOptions())
	ctx := context.Background()

	_, err := svc.Create(ctx, 7, CreateInput{Name: "3日ごと"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, 8, CreateInput{Name: "平日"})
	require.NoError(t, err)

	options, err := svc.List(ctx, 7)

	require.NoError(t, err)
	require.Len(t, options, len(domain.DefaultFrequencyNames)+1)
	for _, o := range options[:len(domain.DefaultFrequencyNames)] {
		assert.True(t, o.IsDefault)
		assert.Nil(t, o.UserID)
	}
	last := options[len(options)-1]
	assert.Equal(t, "3日ごと", last.Name)
	assert.False(t, last.IsDefault)
}

func TestList_Empty(t *testing.T) {
	svc := NewService(memory.NewStore().FrequencyOptions())

	options, err := svc.List(context.Background(), 7)

	require.NoError(t, err)
	assert.NotNil(t, options)
	assert.Empty(t, options)
}

func TestCreate(t *testing.T) {
	svc := NewService(memory.NewSeededStore().FrequencyOptions())

	o, err := svc.Create(context.Background(), 7, CreateInput{Name: "  Weekdays ", Description: ptr("  ")})

	require.NoError(t, err)
	assert.NotZero(t, o.ID)
	assert.Equal(t, "Weekdays", o.Name)
	assert.Nil(t, o.Description)
	require.NotNil(t, o.UserID)
	assert.Equal(t, uint(7), *o.UserID)
	assert.False(t, o.IsDefault)
}

func TestCreate_Rejections(t *testing.T) {
	tests := []struct {
		name string
		in   CreateInput
		want apperr.Kind
	}{
		{"blank name", CreateInput{Name: " "}, apperr.MissingRequiredField},
		{"too long", CreateInput{Name: strings.Repeat("あ", 51)}, apperr.InvalidRequest},
		{"duplicate of default", CreateInput{Name: domain.DefaultFrequencyNames[0]}, apperr.Conflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(memory.NewSeededStore().FrequencyOptions())

			_, err := svc.Create(context.Background(), 7, tt.in)

			assert.Equal(t, tt.want, apperr.KindOf(err))
		})
	}
}

func TestDelete(t *testing.T) {
	store := memory.NewSeededStore()
	svc := NewService(store.FrequencyOptions())
	ctx := context.Background()
	own, err := svc.Create(ctx, 7, CreateInput{Name: "Weekdays"})
	require.NoError(t, err)

	assert.Equal(t, apperr.Forbidden, apperr.KindOf(svc.Delete(ctx, 7, 1)))
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(svc.Delete(ctx, 8, own.ID)))
	assert.Equal(t, apperr.NotFound, apperr.KindOf(svc.Delete(ctx, 7, 9999)))
	assert.Equal(t, apperr.Unauthenticated, apperr.KindOf(svc.Delete(ctx, 0, own.ID)))

	require.NoError(t, svc.Delete(ctx, 7, own.ID))
	found, err := store.FrequencyOptions().FindByID(ctx, own.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestDelete_InUse(t *testing.T) {
	store := memory.NewSeededStore()
	svc := NewService(store.FrequencyOptions())
	ctx := context.Background()
	own, err := svc.Create(ctx, 7, CreateInput{Name: "Weekdays"})
	require.NoError(t, err)
	require.NoError(t, store.Habits().Create(ctx, &domain.Habit{
		UserID: 7, Name: "Run", Description: "5k", Category: "Fitness",
		HabitType: domain.HabitTypeBoolean, TargetFrequencyID: own.ID,
	}))

	err = svc.Delete(ctx, 7, own.ID)

	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))
}

func TestStorageFailures(t *testing.T) {
	svc := NewService(brokenRepo{})
	ctx := context.Background()

	_, err := svc.List(ctx, 7)
	assert.Equal(t, apperr.StorageFailure, apperr.KindOf(err))
	_, err = svc.Create(ctx, 7, CreateInput{Name: "x"})
	assert.Equal(t, apperr.StorageFailure, apperr.KindOf(err))
	assert.Equal(t, apperr.StorageFailure, apperr.KindOf(svc.Delete(ctx, 7, 1)))
}
