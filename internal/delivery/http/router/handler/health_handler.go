// Package handler contains the HTTP endpoint handlers.
package handler

import (
	"net/http"

	"loyaltysync/internal/delivery/http/response"

	"github.com/labstack/echo/v4"
)

// HealthCheck reports liveness for load balancers and probes.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]any{
		"status": "ok",
	}, "Service healthy")
}
