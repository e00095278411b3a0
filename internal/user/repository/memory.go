package repository

import (
	"context"
	"sync"

	"github.com/fairwaylabs/launchpoint/internal/user/domain"
)

// MemRepository is the default backing store: volatile maps guarded by one
// mutex. Username matching is exact and case-sensitive.
type MemRepository struct {
	mu         sync.RWMutex
	users      map[int64]domain.User
	byUsername map[string]int64
	byEmail    map[string]int64
	nextID     int64
}

func NewMemRepository() *MemRepository {
	return &MemRepository{
		users:      make(map[int64]domain.User),
		byUsername: make(map[string]int64),
		byEmail:    make(map[string]int64),
		nextID:     1,
	}
}

func (r *MemRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byUsername[user.Username]; exists {
		return domain.User{}, ErrUsernameExists
	}
	if _, exists := r.byEmail[user.Email]; exists {
		return domain.User{}, ErrEmailExists
	}

	user.ID = r.nextID
	r.nextID++

	r.users[user.ID] = user
	r.byUsername[user.Username] = user.ID
	r.byEmail[user.Email] = user.ID

	return user, nil
}

func (r *MemRepository) FindByID(ctx context.Context, id int64) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return domain.User{}, ErrUserNotFound
	}
	return user, nil
}

func (r *MemRepository) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUsername[username]
	if !ok {
		return domain.User{}, ErrUserNotFound
	}
	return r.users[id], nil
}

func (r *MemRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return domain.User{}, ErrUserNotFound
	}
	return r.users[id], nil
}

func (r *MemRepository) UpdateStep(ctx context.Context, id int64, currentStep int) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return domain.User{}, ErrUserNotFound
	}

	user.CurrentStep = currentStep
	r.users[id] = user
	return user, nil
}

func (r *MemRepository) UpdateSubscription(ctx context.Context, id int64, paymentAdded bool) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return domain.User{}, ErrUserNotFound
	}

	user.PaymentAdded = paymentAdded
	r.users[id] = user
	return user, nil
}
