package repository

import (
	"context"
	"errors"

	"github.com/fairwaylabs/launchpoint/internal/user/domain"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrUsernameExists = errors.New("username already exists")
	ErrEmailExists    = errors.New("email already in use")
)

// Repository owns the user record lifecycle. Create assigns the id and
// enforces username/email uniqueness atomically, so callers never need a
// separate check-then-create step.
type Repository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByID(ctx context.Context, id int64) (domain.User, error)
	FindByUsername(ctx context.Context, username string) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	UpdateStep(ctx context.Context, id int64, currentStep int) (domain.User, error)
	UpdateSubscription(ctx context.Context, id int64, paymentAdded bool) (domain.User, error)
}
