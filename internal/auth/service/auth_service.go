package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fairwaylabs/launchpoint/internal/common/clock"
	"github.com/fairwaylabs/launchpoint/internal/common/constants"
	commoncrypto "github.com/fairwaylabs/launchpoint/internal/common/crypto"
	"github.com/fairwaylabs/launchpoint/internal/common/logger"
	userdomain "github.com/fairwaylabs/launchpoint/internal/user/domain"
	userrepo "github.com/fairwaylabs/launchpoint/internal/user/repository"
)

// AuthService orchestrates registration, login and the bearer-token gate.
// It never stores or logs a plaintext password, and credential failures
// collapse into one generic error so usernames cannot be enumerated.
type AuthService struct {
	repo        userrepo.Repository
	hasher      commoncrypto.PasswordHasher
	tokens      *TokenIssuer
	clock       clock.Clock
	trialPeriod time.Duration
	log         *logger.Logger
}

func NewAuthService(
	repo userrepo.Repository,
	hasher commoncrypto.PasswordHasher,
	tokens *TokenIssuer,
	clk clock.Clock,
	trialPeriod time.Duration,
	log *logger.Logger,
) *AuthService {
	return &AuthService{
		repo:        repo,
		hasher:      hasher,
		tokens:      tokens,
		clock:       clk,
		trialPeriod: trialPeriod,
		log:         log,
	}
}

type RegisterInput struct {
	Username       string
	Email          string
	Password       string
	FullName       string
	ReceiveUpdates bool
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (userdomain.User, string, error) {
	s.log.WithFields(ctx, logger.Fields{
		"username": input.Username,
		"action":   "register_attempt",
	}).Info("register attempt")

	if err := validateRegistration(input.Username, input.Email, input.Password); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_validation_failed",
		}).Warnf("register validation failed: %v", err)
		return userdomain.User{}, "", err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_hash_failed",
		}).Errorf("register failed: password hash error: %v", err)
		return userdomain.User{}, "", fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.clock.Now()
	user := userdomain.User{
		Username:       input.Username,
		Email:          input.Email,
		PasswordHash:   hash,
		FullName:       input.FullName,
		ReceiveUpdates: input.ReceiveUpdates,
		CurrentStep:    constants.OnboardingFirstStep,
		TrialActive:    true,
		TrialStartDate: now,
		TrialEndDate:   now.Add(s.trialPeriod),
		PaymentAdded:   false,
		CreatedAt:      now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		switch {
		case errors.Is(err, userrepo.ErrUsernameExists):
			s.log.WithFields(ctx, logger.Fields{
				"username": input.Username,
				"action":   "register_username_exists",
			}).Warn("register failed: username exists")
			return userdomain.User{}, "", ErrUsernameTaken
		case errors.Is(err, userrepo.ErrEmailExists):
			s.log.WithFields(ctx, logger.Fields{
				"username": input.Username,
				"action":   "register_email_exists",
			}).Warn("register failed: email in use")
			return userdomain.User{}, "", ErrEmailTaken
		}
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_create_failed",
		}).Errorf("register failed: %v", err)
		return userdomain.User{}, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokens.Issue(created)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"user_id":  created.ID,
			"action":   "register_token_issue_failed",
		}).Errorf("register failed: token issue error: %v", err)
		return userdomain.User{}, "", err
	}

	incrementUsersRegistered()
	s.log.WithFields(ctx, logger.Fields{
		"username": created.Username,
		"user_id":  created.ID,
		"action":   "register_success",
	}).Info("register success")

	return created, token, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (userdomain.User, string, error) {
	s.log.WithFields(ctx, logger.Fields{
		"username": username,
		"action":   "login_attempt",
	}).Info("login attempt")

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"username": username,
				"action":   "login_user_not_found",
			}).Warn("login failed: not found")
			incrementLoginsFailed()
			return userdomain.User{}, "", ErrInvalidCredentials
		}
		s.log.WithFields(ctx, logger.Fields{
			"username": username,
			"action":   "login_fetch_failed",
		}).Errorf("login failed: %v", err)
		return userdomain.User{}, "", fmt.Errorf("failed to fetch user: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": username,
			"action":   "login_invalid_password",
		}).Warn("login failed: invalid password")
		incrementLoginsFailed()
		return userdomain.User{}, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": username,
			"user_id":  user.ID,
			"action":   "login_token_issue_failed",
		}).Errorf("login failed: token issue error: %v", err)
		return userdomain.User{}, "", err
	}

	incrementLoginsSucceeded()
	s.log.WithFields(ctx, logger.Fields{
		"username": user.Username,
		"user_id":  user.ID,
		"action":   "login_success",
	}).Info("login success")

	return user, token, nil
}

// Authenticate validates a raw bearer token and re-resolves the user record.
// The token's claims are only a lookup hint: a user deleted since issuance is
// rejected even though the signature still verifies.
func (s *AuthService) Authenticate(ctx context.Context, rawToken string) (userdomain.User, error) {
	if rawToken == "" {
		return userdomain.User{}, ErrNoToken
	}

	claims, err := s.tokens.Parse(rawToken)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"action": "token_rejected",
		}).Warnf("token rejected: %v", err)
		return userdomain.User{}, err
	}

	user, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"user_id": claims.UserID,
				"action":  "token_user_not_found",
			}).Warn("token rejected: user no longer exists")
			return userdomain.User{}, ErrUserNotFound
		}
		return userdomain.User{}, fmt.Errorf("failed to fetch user: %w", err)
	}

	return user, nil
}
