package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/fairwaylabs/launchpoint/internal/common/constants"
	"github.com/fairwaylabs/launchpoint/internal/common/logger"
	"github.com/fairwaylabs/launchpoint/internal/user/domain"
	"github.com/fairwaylabs/launchpoint/internal/user/repository"
)

var ErrInvalidStep = errors.New("invalid onboarding step")

// Service covers the account-side onboarding state: which wizard step the
// user is on and whether a payment method has been added.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

func NewService(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

func (s *Service) UpdateStep(ctx context.Context, userID int64, currentStep int) (domain.User, error) {
	if currentStep < constants.OnboardingFirstStep || currentStep > constants.OnboardingLastStep {
		return domain.User{}, fmt.Errorf("%w: %d", ErrInvalidStep, currentStep)
	}

	user, err := s.repo.UpdateStep(ctx, userID, currentStep)
	if err != nil {
		return domain.User{}, err
	}

	s.log.WithFields(ctx, logger.Fields{
		"user_id": userID,
		"step":    currentStep,
		"action":  "onboarding_step_updated",
	}).Info("onboarding step updated")

	return user, nil
}

func (s *Service) UpdateSubscription(ctx context.Context, userID int64, paymentAdded bool) (domain.User, error) {
	user, err := s.repo.UpdateSubscription(ctx, userID, paymentAdded)
	if err != nil {
		return domain.User{}, err
	}

	s.log.WithFields(ctx, logger.Fields{
		"user_id":       userID,
		"payment_added": paymentAdded,
		"action":        "subscription_updated",
	}).Info("subscription updated")

	return user, nil
}
