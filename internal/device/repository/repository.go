package repository

import (
	"context"
	"errors"

	"github.com/fairwaylabs/launchpoint/internal/device/domain"
)

var (
	ErrDeviceNotFound = errors.New("device not found")
	ErrDeviceIDExists = errors.New("device id already registered")
)

type Repository interface {
	Create(ctx context.Context, device domain.Device) (domain.Device, error)
	FindByID(ctx context.Context, id int64) (domain.Device, error)
	FindByUserID(ctx context.Context, userID int64) ([]domain.Device, error)
	Update(ctx context.Context, device domain.Device) (domain.Device, error)
}
