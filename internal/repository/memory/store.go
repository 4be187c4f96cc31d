// Package memory keeps users, habits and frequency options in process memory.
// It is used when no database is configured and as a test double.
package memory

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"habit_tracker/internal/domain"
)

// ErrForeignKey mirrors the storage layer rejecting a dangling reference
var ErrForeignKey = errors.New("foreign key constraint fails")

// Store holds every table behind one lock
type Store struct {
	mu      sync.RWMutex
	users   map[uint]domain.User
	habits  map[uint]domain.Habit
	options map[uint]domain.FrequencyOption
	nextID  uint
}

// NewStore returns an empty store
func NewStore() *Store {
	return &Store{
		users:   make(map[uint]domain.User),
		habits:  make(map[uint]domain.Habit),
		options: make(map[uint]domain.FrequencyOption),
	}
}

// NewSeededStore returns a store holding the default frequency options
func NewSeededStore() *Store {
	s := NewStore()
	for _, name := range domain.DefaultFrequencyNames {
		o := domain.FrequencyOption{Name: name, IsDefault: true}
		_ = s.FrequencyOptions().Create(context.Background(), &o)
	}
	return s
}

func (s *Store) id() uint {
	s.nextID++
	return s.nextID
}

func stamp(created, updated *time.Time) {
	now := time.Now().UTC()
	if created.IsZero() {
		*created = now
	}
	if updated.IsZero() {
		*updated = now
	}
}

// Users returns the user table view
func (s *Store) Users() *Users { return &Users{s} }

// Habits returns the habit table view
func (s *Store) Habits() *Habits { return &Habits{s} }

// FrequencyOptions returns the frequency option table view
func (s *Store) FrequencyOptions() *FrequencyOptions { return &FrequencyOptions{s} }

// Users implements the user repository
type Users struct{ s *Store }

func (r *Users) Create(_ context.Context, u *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Username == u.Username {
			return domain.ErrDuplicate
		}
	}
	u.ID = r.s.id()
	stamp(&u.CreatedAt, &u.UpdatedAt)
	r.s.users[u.ID] = *u
	return nil
}

func (r *Users) FindByID(_ context.Context, id uint) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *Users) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, nil
}

// Delete removes a user together with its habits and custom options
func (r *Users) Delete(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.users, id)
	for hid, h := range r.s.habits {
		if h.UserID == id {
			delete(r.s.habits, hid)
		}
	}
	for oid, o := range r.s.options {
		if o.IsOwnedBy(id) {
			delete(r.s.options, oid)
		}
	}
	return nil
}

// Habits implements the habit repository
type Habits struct{ s *Store }

func (r *Habits) Create(_ context.Context, h *domain.Habit) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.options[h.TargetFrequencyID]; !ok {
		return ErrForeignKey
	}
	h.ID = r.s.id()
	stamp(&h.CreatedAt, &h.UpdatedAt)
	r.s.habits[h.ID] = *h
	return nil
}

func (r *Habits) FindByID(_ context.Context, id uint) (*domain.Habit, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	h, ok := r.s.habits[id]
	if !ok {
		return nil, nil
	}
	return &h, nil
}

func (r *Habits) Update(_ context.Context, h *domain.Habit) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.habits[h.ID]; !ok {
		return domain.ErrNotFound
	}
	if _, ok := r.s.options[h.TargetFrequencyID]; !ok {
		return ErrForeignKey
	}
	r.s.habits[h.ID] = *h
	return nil
}

func (r *Habits) Delete(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.habits, id)
	return nil
}

func (r *Habits) ListByUser(_ context.Context, userID uint) ([]domain.HabitWithFrequency, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []domain.HabitWithFrequency
	for _, h := range r.s.habits {
		if h.UserID != userID {
			continue
		}
		out = append(out, domain.HabitWithFrequency{Habit: h, TargetFrequencyName: r.s.options[h.TargetFrequencyID].Name})
	}
	slices.SortFunc(out, func(a, b domain.HabitWithFrequency) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

// FrequencyOptions implements the frequency option repository
type FrequencyOptions struct{ s *Store }

func (r *FrequencyOptions) Create(_ context.Context, o *domain.FrequencyOption) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.options {
		if existing.Name == o.Name {
			return domain.ErrDuplicate
		}
	}
	o.ID = r.s.id()
	stamp(&o.CreatedAt, &o.UpdatedAt)
	r.s.options[o.ID] = *o
	return nil
}

func (r *FrequencyOptions) FindByID(_ context.Context, id uint) (*domain.FrequencyOption, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	o, ok := r.s.options[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (r *FrequencyOptions) ListVisible(_ context.Context, userID uint) ([]domain.FrequencyOption, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []domain.FrequencyOption
	for _, o := range r.s.options {
		if o.UserID == nil || *o.UserID == userID {
			out = append(out, o)
		}
	}
	slices.SortFunc(out, func(a, b domain.FrequencyOption) int {
		if a.IsDefault != b.IsDefault {
			if a.IsDefault {
				return -1
			}
			return 1
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return out, nil
}

func (r *FrequencyOptions) CountHabits(_ context.Context, id uint) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for _, h := range r.s.habits {
		if h.TargetFrequencyID == id {
			n++
		}
	}
	return n, nil
}

func (r *FrequencyOptions) Delete(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, h := range r.s.habits {
		if h.TargetFrequencyID == id {
			return domain.ErrInUse
		}
	}
	delete(r.s.options, id)
	return nil
}
