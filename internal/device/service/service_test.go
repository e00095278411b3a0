package service

import (
	"context"
	"errors"
	"testing"

	"github.com/fairwaylabs/launchpoint/internal/common/logger"
	"github.com/fairwaylabs/launchpoint/internal/device/domain"
	"github.com/fairwaylabs/launchpoint/internal/device/repository"
)

func newTestService(t *testing.T) (*Service, *repository.MemRepository) {
	t.Helper()
	log, err := logger.New("", "test", "critical")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	repo := repository.NewMemRepository()
	return NewService(repo, log), repo
}

func TestService_Register(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Register(ctx, 1, RegisterInput{
		DeviceName:      "Garage Monitor",
		DeviceID:        "LM-0001",
		FirmwareVersion: "1.2.0",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if created.ID == 0 {
		t.Error("expected device id to be assigned")
	}
	if created.UserID != 1 {
		t.Errorf("expected owner 1, got %d", created.UserID)
	}
	if created.Connected || created.Calibrated {
		t.Error("expected new device to start disconnected and uncalibrated")
	}
}

func TestService_Register_DuplicateDeviceID(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, 1, RegisterInput{DeviceID: "LM-0001"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, err := svc.Register(ctx, 2, RegisterInput{DeviceID: "LM-0001"}); !errors.Is(err, repository.ErrDeviceIDExists) {
		t.Errorf("expected ErrDeviceIDExists, got %v", err)
	}
}

func TestService_List_FiltersByOwner(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, 1, RegisterInput{DeviceID: "LM-0001"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := svc.Register(ctx, 2, RegisterInput{DeviceID: "LM-0002"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := svc.Register(ctx, 1, RegisterInput{DeviceID: "LM-0003"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	devices, err := svc.List(ctx, 1)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(devices) != 2 {
		t.Fatalf("expected 2 devices, got %d", len(devices))
	}
	if devices[0].DeviceID != "LM-0001" || devices[1].DeviceID != "LM-0003" {
		t.Errorf("expected owner's devices in insertion order, got %v", devices)
	}
}

func TestService_Update(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Register(ctx, 1, RegisterInput{DeviceID: "LM-0001", FirmwareVersion: "1.0.0"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	connected := true
	firmware := "1.1.0"
	updated, err := svc.Update(ctx, 1, created.ID, domain.UpdateParams{
		Connected:       &connected,
		FirmwareVersion: &firmware,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !updated.Connected {
		t.Error("expected device to be connected")
	}
	if updated.FirmwareVersion != "1.1.0" {
		t.Errorf("expected firmware 1.1.0, got %s", updated.FirmwareVersion)
	}
	if updated.Calibrated {
		t.Error("expected untouched field to keep its value")
	}
}

func TestService_Update_NotOwner(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	created, err := svc.Register(ctx, 1, RegisterInput{DeviceID: "LM-0001"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	connected := true
	if _, err := svc.Update(ctx, 2, created.ID, domain.UpdateParams{Connected: &connected}); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}

	persisted, err := repo.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if persisted.Connected {
		t.Error("expected denied update to leave the device untouched")
	}
}

func TestService_Update_NotFound(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	connected := true
	if _, err := svc.Update(ctx, 1, 99, domain.UpdateParams{Connected: &connected}); !errors.Is(err, repository.ErrDeviceNotFound) {
		t.Errorf("expected ErrDeviceNotFound, got %v", err)
	}
}
