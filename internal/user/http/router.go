package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	authhttp "github.com/fairwaylabs/launchpoint/internal/auth/http"
	commonhttp "github.com/fairwaylabs/launchpoint/internal/common/http"
	"github.com/fairwaylabs/launchpoint/internal/common/logger"
	"github.com/fairwaylabs/launchpoint/internal/user/repository"
	"github.com/fairwaylabs/launchpoint/internal/user/service"
)

type updateStepRequest struct {
	CurrentStep int `json:"currentStep"`
}

type updateSubscriptionRequest struct {
	PaymentAdded bool `json:"paymentAdded"`
}

type Handler struct {
	users   *service.Service
	log     *logger.Logger
	timeout time.Duration
}

func NewHandler(users *service.Service, timeout time.Duration, log *logger.Logger) *Handler {
	return &Handler{users: users, log: log, timeout: timeout}
}

func (h *Handler) Register(mux *http.ServeMux, requireAuth func(http.Handler) http.Handler) {
	mux.Handle("/api/user/step", requireAuth(http.HandlerFunc(h.updateStep)))
	mux.Handle("/api/user/subscription", requireAuth(http.HandlerFunc(h.updateSubscription)))
}

func (h *Handler) updateStep(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	user, ok := authhttp.CurrentUser(r.Context())
	if !ok {
		commonhttp.WriteError(w, http.StatusInternalServerError, "Authentication failed")
		return
	}

	var req updateStepRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		commonhttp.WriteError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	updated, err := h.users.UpdateStep(ctx, user.ID, req.CurrentStep)
	if err != nil {
		h.writeError(w, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) updateSubscription(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	user, ok := authhttp.CurrentUser(r.Context())
	if !ok {
		commonhttp.WriteError(w, http.StatusInternalServerError, "Authentication failed")
		return
	}

	var req updateSubscriptionRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		commonhttp.WriteError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	updated, err := h.users.UpdateSubscription(ctx, user.ID, req.PaymentAdded)
	if err != nil {
		h.writeError(w, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidStep):
		commonhttp.WriteError(w, http.StatusBadRequest, "Invalid onboarding step")
	case errors.Is(err, repository.ErrUserNotFound):
		commonhttp.WriteError(w, http.StatusNotFound, "User not found")
	default:
		h.log.Errorf("user request failed: %v", err)
		commonhttp.WriteError(w, http.StatusInternalServerError, "Internal server error")
	}
}
