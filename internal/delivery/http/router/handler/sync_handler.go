package handler

import (
	"log/slog"
	"net/http"

	"loyaltysync/internal/delivery/http/response"
	"loyaltysync/internal/usecase"

	"github.com/labstack/echo/v4"
)

// SyncHandler holds dependencies for sync-session handlers
type SyncHandler struct {
	uc     usecase.SyncUsecase
	logger *slog.Logger
}

// NewSyncHandler is the constructor for SyncHandler
func NewSyncHandler(uc usecase.SyncUsecase, logger *slog.Logger) *SyncHandler {
	return &SyncHandler{
		uc:     uc,
		logger: logger,
	}
}

// RegisterSession starts a link handshake and returns the sync token, its
// deadline, and the login entry point.
func (h *SyncHandler) RegisterSession(c echo.Context) error {
	var req usecase.RegisterSyncSessionInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid sync registration input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.uc.RegisterSyncSession(c.Request().Context(), &req)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, output, "Sync session registered")
}

// GetSession reports handshake state with expiry already applied, so pollers
// never see a stale waiting status.
func (h *SyncHandler) GetSession(c echo.Context) error {
	syncID := c.Param("syncId")

	output, err := h.uc.GetSession(c.Request().Context(), syncID)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, output, "Sync session retrieved")
}

// ConfirmLink is the loyalty platform's callback completing the handshake.
func (h *SyncHandler) ConfirmLink(c echo.Context) error {
	var req usecase.ConfirmLinkInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid link confirmation input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.uc.ConfirmLink(c.Request().Context(), &req)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, output, "Link confirmed")
}
