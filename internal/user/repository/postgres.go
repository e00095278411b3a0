package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/fairwaylabs/launchpoint/internal/user/domain"
)

const userColumns = `id, username, email, password_hash, full_name, receive_updates,
	current_step, trial_active, trial_start_date, trial_end_date, payment_added, created_at`

// PgRepository backs the user store with Postgres. Uniqueness comes from the
// users_username_key and users_email_key constraints, so concurrent creates
// serialize in the database rather than in the gateway.
type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	row := r.pool.QueryRow(
		ctx,
		`INSERT INTO users (username, email, password_hash, full_name, receive_updates,
			current_step, trial_active, trial_start_date, trial_end_date, payment_added, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id`,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.FullName,
		user.ReceiveUpdates,
		user.CurrentStep,
		user.TrialActive,
		user.TrialStartDate,
		user.TrialEndDate,
		user.PaymentAdded,
		user.CreatedAt,
	)

	if err := row.Scan(&user.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "users_username_key":
				return domain.User{}, ErrUsernameExists
			case "users_email_key":
				return domain.User{}, ErrEmailExists
			}
		}
		return domain.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func (r *PgRepository) FindByID(ctx context.Context, id int64) (domain.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *PgRepository) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

func (r *PgRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *PgRepository) UpdateStep(ctx context.Context, id int64, currentStep int) (domain.User, error) {
	return r.findOne(
		ctx,
		`UPDATE users SET current_step = $2 WHERE id = $1 RETURNING `+userColumns,
		id,
		currentStep,
	)
}

func (r *PgRepository) UpdateSubscription(ctx context.Context, id int64, paymentAdded bool) (domain.User, error) {
	return r.findOne(
		ctx,
		`UPDATE users SET payment_added = $2 WHERE id = $1 RETURNING `+userColumns,
		id,
		paymentAdded,
	)
}

func (r *PgRepository) findOne(ctx context.Context, query string, args ...any) (domain.User, error) {
	row := r.pool.QueryRow(ctx, query, args...)

	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.FullName,
		&user.ReceiveUpdates,
		&user.CurrentStep,
		&user.TrialActive,
		&user.TrialStartDate,
		&user.TrialEndDate,
		&user.PaymentAdded,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("failed to query user: %w", err)
	}

	return user, nil
}
