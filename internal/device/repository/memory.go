package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/fairwaylabs/launchpoint/internal/device/domain"
)

type MemRepository struct {
	mu         sync.RWMutex
	devices    map[int64]domain.Device
	byDeviceID map[string]int64
	nextID     int64
}

func NewMemRepository() *MemRepository {
	return &MemRepository{
		devices:    make(map[int64]domain.Device),
		byDeviceID: make(map[string]int64),
		nextID:     1,
	}
}

func (r *MemRepository) Create(ctx context.Context, device domain.Device) (domain.Device, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byDeviceID[device.DeviceID]; exists {
		return domain.Device{}, ErrDeviceIDExists
	}

	device.ID = r.nextID
	r.nextID++

	r.devices[device.ID] = device
	r.byDeviceID[device.DeviceID] = device.ID

	return device, nil
}

func (r *MemRepository) FindByID(ctx context.Context, id int64) (domain.Device, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	device, ok := r.devices[id]
	if !ok {
		return domain.Device{}, ErrDeviceNotFound
	}
	return device, nil
}

func (r *MemRepository) FindByUserID(ctx context.Context, userID int64) ([]domain.Device, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var devices []domain.Device
	for _, d := range r.devices {
		if d.UserID == userID {
			devices = append(devices, d)
		}
	}

	sort.Slice(devices, func(i, j int) bool { return devices[i].ID < devices[j].ID })
	return devices, nil
}

func (r *MemRepository) Update(ctx context.Context, device domain.Device) (domain.Device, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.devices[device.ID]; !ok {
		return domain.Device{}, ErrDeviceNotFound
	}

	r.devices[device.ID] = device
	return device, nil
}
