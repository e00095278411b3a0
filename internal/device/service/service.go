package service

import (
	"context"
	"errors"

	"github.com/fairwaylabs/launchpoint/internal/common/logger"
	"github.com/fairwaylabs/launchpoint/internal/device/domain"
	"github.com/fairwaylabs/launchpoint/internal/device/repository"
	"github.com/fairwaylabs/launchpoint/internal/observability/metrics"
)

var ErrNotOwner = errors.New("device does not belong to user")

type RegisterInput struct {
	DeviceName      string
	DeviceID        string
	FirmwareVersion string
}

type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

func NewService(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

func (s *Service) Register(ctx context.Context, ownerID int64, input RegisterInput) (domain.Device, error) {
	device := domain.Device{
		UserID:          ownerID,
		DeviceName:      input.DeviceName,
		DeviceID:        input.DeviceID,
		FirmwareVersion: input.FirmwareVersion,
		Connected:       false,
		Calibrated:      false,
	}

	created, err := s.repo.Create(ctx, device)
	if err != nil {
		return domain.Device{}, err
	}

	metrics.DevicesRegistered.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"user_id":   ownerID,
		"device_id": created.DeviceID,
		"action":    "device_registered",
	}).Info("device registered")

	return created, nil
}

func (s *Service) List(ctx context.Context, ownerID int64) ([]domain.Device, error) {
	return s.repo.FindByUserID(ctx, ownerID)
}

// Update applies a partial update after checking the caller owns the record.
func (s *Service) Update(ctx context.Context, ownerID int64, id int64, params domain.UpdateParams) (domain.Device, error) {
	device, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Device{}, err
	}

	if device.UserID != ownerID {
		s.log.WithFields(ctx, logger.Fields{
			"user_id":   ownerID,
			"device_id": device.DeviceID,
			"action":    "device_update_denied",
		}).Warn("device update denied: not owner")
		return domain.Device{}, ErrNotOwner
	}

	return s.repo.Update(ctx, params.Apply(device))
}
