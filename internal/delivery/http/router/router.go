// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"loyaltysync/internal/delivery/http/middleware"
	"loyaltysync/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	LinkHandler      *handler.LinkHandler
	LedgerHandler    *handler.LedgerHandler
	SyncHandler      *handler.SyncHandler
	APIKeyMiddleware *middleware.APIKeyMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	linkHandler      *handler.LinkHandler
	ledgerHandler    *handler.LedgerHandler
	syncHandler      *handler.SyncHandler
	apiKeyMiddleware *middleware.APIKeyMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		linkHandler:      params.LinkHandler,
		ledgerHandler:    params.LedgerHandler,
		syncHandler:      params.SyncHandler,
		apiKeyMiddleware: params.APIKeyMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")
	api.Use(r.apiKeyMiddleware.Authenticate)
	{
		api.POST("/link/check", r.linkHandler.CheckLink)
		api.POST("/link/confirm", r.syncHandler.ConfirmLink)

		api.GET("/transactions", r.ledgerHandler.ListTransactions)

		api.POST("/sync/register", r.syncHandler.RegisterSession)
		api.GET("/sync/:syncId", r.syncHandler.GetSession)
	}
}
