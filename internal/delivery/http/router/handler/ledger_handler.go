package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"loyaltysync/internal/delivery/http/response"
	"loyaltysync/internal/usecase"

	"github.com/labstack/echo/v4"
)

// LedgerHandler holds dependencies for transaction-history handlers
type LedgerHandler struct {
	uc     usecase.LedgerUsecase
	logger *slog.Logger
}

// NewLedgerHandler is the constructor for LedgerHandler
func NewLedgerHandler(uc usecase.LedgerUsecase, logger *slog.Logger) *LedgerHandler {
	return &LedgerHandler{
		uc:     uc,
		logger: logger,
	}
}

// ListTransactions returns one page of ledger history for the account
// resolved from the supplied identifier.
func (h *LedgerHandler) ListTransactions(c echo.Context) error {
	input := &usecase.ListTransactionsInput{
		ExternalID: c.QueryParam("external_id"),
		Username:   c.QueryParam("username"),
		Type:       c.QueryParam("type"),
	}

	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return response.BadRequest(c, "VALIDATION_FAILED", "limit must be an integer")
		}
		input.Limit = limit
	}

	if raw := c.QueryParam("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			return response.BadRequest(c, "VALIDATION_FAILED", "offset must be an integer")
		}
		input.Offset = offset
	}

	if raw := c.QueryParam("date_from"); raw != "" {
		from, _, err := parseDateBound(raw)
		if err != nil {
			return response.BadRequest(c, "VALIDATION_FAILED", "date_from must be RFC3339 or YYYY-MM-DD")
		}
		input.DateFrom = &from
	}

	if raw := c.QueryParam("date_to"); raw != "" {
		to, dateOnly, err := parseDateBound(raw)
		if err != nil {
			return response.BadRequest(c, "VALIDATION_FAILED", "date_to must be RFC3339 or YYYY-MM-DD")
		}
		// A bare date as upper bound covers that whole day.
		if dateOnly {
			to = to.Add(24*time.Hour - time.Nanosecond)
		}
		input.DateTo = &to
	}

	output, err := h.uc.ListTransactions(c.Request().Context(), input)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, output, "Transactions retrieved")
}

// parseDateBound accepts RFC3339 timestamps or bare dates. The second return
// reports which form was supplied.
func parseDateBound(raw string) (time.Time, bool, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, false, nil
	}

	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, false, err
	}

	return t, true, nil
}
