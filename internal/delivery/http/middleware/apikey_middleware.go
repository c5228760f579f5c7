package middleware

import (
	"crypto/subtle"

	"loyaltysync/config"
	"loyaltysync/internal/delivery/http/response"

	"github.com/labstack/echo/v4"
)

// HeaderXAPIKey is the HTTP header callers present their key in.
const HeaderXAPIKey = "X-Api-Key"

// APIKeyMiddleware guards mutating routes with a shared key. When no key is
// configured the check is disabled and all requests pass.
type APIKeyMiddleware struct {
	apiKey string
}

// NewAPIKeyMiddleware creates a new API key middleware
func NewAPIKeyMiddleware(cfg *config.Config) *APIKeyMiddleware {
	return &APIKeyMiddleware{apiKey: cfg.APIKey}
}

// Authenticate rejects requests whose key does not match the configured one.
func (m *APIKeyMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if m.apiKey == "" {
			return next(c)
		}

		provided := c.Request().Header.Get(HeaderXAPIKey)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(m.apiKey)) != 1 {
			return response.Unauthorized(c, "UNAUTHORIZED", "missing or invalid API key")
		}

		return next(c)
	}
}
