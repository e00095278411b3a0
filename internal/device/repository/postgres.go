package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/fairwaylabs/launchpoint/internal/device/domain"
)

const deviceColumns = `id, user_id, device_name, device_id, firmware_version,
	connected, calibrated, ceiling_height`

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Create(ctx context.Context, device domain.Device) (domain.Device, error) {
	row := r.pool.QueryRow(
		ctx,
		`INSERT INTO devices (user_id, device_name, device_id, firmware_version,
			connected, calibrated, ceiling_height)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		device.UserID,
		device.DeviceName,
		device.DeviceID,
		device.FirmwareVersion,
		device.Connected,
		device.Calibrated,
		device.CeilingHeight,
	)

	if err := row.Scan(&device.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.Device{}, ErrDeviceIDExists
		}
		return domain.Device{}, fmt.Errorf("failed to create device: %w", err)
	}

	return device, nil
}

func (r *PgRepository) FindByID(ctx context.Context, id int64) (domain.Device, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+deviceColumns+` FROM devices WHERE id = $1`, id)

	device, err := scanDevice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Device{}, ErrDeviceNotFound
		}
		return domain.Device{}, fmt.Errorf("failed to find device: %w", err)
	}

	return device, nil
}

func (r *PgRepository) FindByUserID(ctx context.Context, userID int64) ([]domain.Device, error) {
	rows, err := r.pool.Query(
		ctx,
		`SELECT `+deviceColumns+` FROM devices WHERE user_id = $1 ORDER BY id ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}
	defer rows.Close()

	var devices []domain.Device
	for rows.Next() {
		device, err := scanDevice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan device: %w", err)
		}
		devices = append(devices, device)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("rows iteration error: %w", rows.Err())
	}

	return devices, nil
}

func (r *PgRepository) Update(ctx context.Context, device domain.Device) (domain.Device, error) {
	tag, err := r.pool.Exec(
		ctx,
		`UPDATE devices
		 SET device_name = $2, firmware_version = $3, connected = $4,
			 calibrated = $5, ceiling_height = $6
		 WHERE id = $1`,
		device.ID,
		device.DeviceName,
		device.FirmwareVersion,
		device.Connected,
		device.Calibrated,
		device.CeilingHeight,
	)
	if err != nil {
		return domain.Device{}, fmt.Errorf("failed to update device: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.Device{}, ErrDeviceNotFound
	}

	return device, nil
}

func scanDevice(row pgx.Row) (domain.Device, error) {
	var device domain.Device
	err := row.Scan(
		&device.ID,
		&device.UserID,
		&device.DeviceName,
		&device.DeviceID,
		&device.FirmwareVersion,
		&device.Connected,
		&device.Calibrated,
		&device.CeilingHeight,
	)
	return device, err
}
