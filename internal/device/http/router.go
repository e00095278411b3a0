package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	authhttp "github.com/fairwaylabs/launchpoint/internal/auth/http"
	commonhttp "github.com/fairwaylabs/launchpoint/internal/common/http"
	"github.com/fairwaylabs/launchpoint/internal/common/logger"
	"github.com/fairwaylabs/launchpoint/internal/device/domain"
	"github.com/fairwaylabs/launchpoint/internal/device/repository"
	"github.com/fairwaylabs/launchpoint/internal/device/service"
)

type createDeviceRequest struct {
	DeviceName      string `json:"deviceName"`
	DeviceID        string `json:"deviceId" validate:"required,max=64"`
	FirmwareVersion string `json:"firmwareVersion"`
}

type Handler struct {
	devices  *service.Service
	validate *validator.Validate
	log      *logger.Logger
	timeout  time.Duration
}

func NewHandler(devices *service.Service, timeout time.Duration, log *logger.Logger) *Handler {
	return &Handler{
		devices:  devices,
		validate: validator.New(),
		log:      log,
		timeout:  timeout,
	}
}

func (h *Handler) Register(mux *http.ServeMux, requireAuth func(http.Handler) http.Handler) {
	mux.Handle("/api/devices", requireAuth(http.HandlerFunc(h.devicesRoot)))
	mux.Handle("/api/devices/", requireAuth(http.HandlerFunc(h.updateDevice)))
}

func (h *Handler) devicesRoot(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.createDevice(w, r)
	case http.MethodGet:
		h.listDevices(w, r)
	default:
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *Handler) createDevice(w http.ResponseWriter, r *http.Request) {
	user, ok := authhttp.CurrentUser(r.Context())
	if !ok {
		commonhttp.WriteError(w, http.StatusInternalServerError, "Authentication failed")
		return
	}

	var req createDeviceRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		commonhttp.WriteError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		commonhttp.WriteError(w, http.StatusBadRequest, "Device id is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	device, err := h.devices.Register(ctx, user.ID, service.RegisterInput{
		DeviceName:      req.DeviceName,
		DeviceID:        req.DeviceID,
		FirmwareVersion: req.FirmwareVersion,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, device)
}

func (h *Handler) listDevices(w http.ResponseWriter, r *http.Request) {
	user, ok := authhttp.CurrentUser(r.Context())
	if !ok {
		commonhttp.WriteError(w, http.StatusInternalServerError, "Authentication failed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	devices, err := h.devices.List(ctx, user.ID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if devices == nil {
		devices = []domain.Device{}
	}
	commonhttp.WriteJSON(w, http.StatusOK, devices)
}

func (h *Handler) updateDevice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	user, ok := authhttp.CurrentUser(r.Context())
	if !ok {
		commonhttp.WriteError(w, http.StatusInternalServerError, "Authentication failed")
		return
	}

	idRaw := strings.TrimPrefix(r.URL.Path, "/api/devices/")
	id, err := strconv.ParseInt(idRaw, 10, 64)
	if err != nil || id <= 0 {
		commonhttp.WriteError(w, http.StatusBadRequest, "Invalid device id")
		return
	}

	var params domain.UpdateParams
	if err := commonhttp.DecodeJSON(r, &params); err != nil {
		commonhttp.WriteError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	device, err := h.devices.Update(ctx, user.ID, id, params)
	if err != nil {
		h.writeError(w, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, device)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrDeviceIDExists):
		commonhttp.WriteError(w, http.StatusBadRequest, "Device id already registered")
	case errors.Is(err, repository.ErrDeviceNotFound):
		commonhttp.WriteError(w, http.StatusNotFound, "Device not found")
	case errors.Is(err, service.ErrNotOwner):
		commonhttp.WriteError(w, http.StatusForbidden, "Device does not belong to user")
	default:
		h.log.Errorf("device request failed: %v", err)
		commonhttp.WriteError(w, http.StatusInternalServerError, "Internal server error")
	}
}
