package handler

import (
	"log/slog"
	"net/http"

	"loyaltysync/internal/delivery/http/response"
	"loyaltysync/internal/usecase"

	"github.com/labstack/echo/v4"
)

// LinkHandler holds dependencies for link-registry handlers
type LinkHandler struct {
	uc     usecase.LinkUsecase
	logger *slog.Logger
}

// NewLinkHandler is the constructor for LinkHandler
func NewLinkHandler(uc usecase.LinkUsecase, logger *slog.Logger) *LinkHandler {
	return &LinkHandler{
		uc:     uc,
		logger: logger,
	}
}

// CheckLink answers whether an identity is paired with a loyalty account.
// An unlinked identity is a successful response with is_linked false, not an
// error.
func (h *LinkHandler) CheckLink(c echo.Context) error {
	var req usecase.CheckLinkInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid link check input")
	}

	output, err := h.uc.CheckLink(c.Request().Context(), &req)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, output, "Link status retrieved")
}
