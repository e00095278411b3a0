package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/fairwaylabs/launchpoint/internal/auth/service"
	commonhttp "github.com/fairwaylabs/launchpoint/internal/common/http"
	"github.com/fairwaylabs/launchpoint/internal/common/logger"
	userdomain "github.com/fairwaylabs/launchpoint/internal/user/domain"
)

type registerRequest struct {
	Username       string `json:"username"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	FullName       string `json:"fullName"`
	ReceiveUpdates bool   `json:"receiveUpdates"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	User  userdomain.User `json:"user"`
	Token string          `json:"token"`
}

type Handler struct {
	auth    *service.AuthService
	log     *logger.Logger
	timeout time.Duration
}

func NewHandler(auth *service.AuthService, timeout time.Duration, log *logger.Logger) *Handler {
	return &Handler{auth: auth, log: log, timeout: timeout}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/register", h.register)
	mux.HandleFunc("/api/login", h.login)
	mux.Handle("/api/user", RequireAuth(h.auth, h.log)(http.HandlerFunc(h.currentUser)))
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req registerRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("register failed: invalid json: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	user, token, err := h.auth.Register(ctx, service.RegisterInput{
		Username:       req.Username,
		Email:          req.Email,
		Password:       req.Password,
		FullName:       req.FullName,
		ReceiveUpdates: req.ReceiveUpdates,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, authResponse{User: user, Token: token})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req loginRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("login failed: invalid json: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	user, token, err := h.auth.Login(ctx, req.Username, req.Password)
	if err != nil {
		h.writeError(w, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, authResponse{User: user, Token: token})
}

func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	user, ok := CurrentUser(r.Context())
	if !ok {
		commonhttp.WriteError(w, http.StatusInternalServerError, "Authentication failed")
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, user)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		commonhttp.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUsernameTaken):
		commonhttp.WriteError(w, http.StatusBadRequest, "Username already exists")
	case errors.Is(err, service.ErrEmailTaken):
		commonhttp.WriteError(w, http.StatusBadRequest, "Email already in use")
	case errors.Is(err, service.ErrInvalidCredentials):
		commonhttp.WriteError(w, http.StatusUnauthorized, "Invalid username or password")
	default:
		h.log.Errorf("auth request failed: %v", err)
		commonhttp.WriteError(w, http.StatusInternalServerError, "Internal server error")
	}
}
