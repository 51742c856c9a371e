package main

import (
	"net/http"

	"bursar/internal/shared/config"
	"bursar/internal/shared/middleware"
)

// SetupRoutes configures all HTTP routes and returns the final handler
// with middleware applied.
func SetupRoutes(deps *Dependencies, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", deps.HealthHandler.HandleHealth)

	// Public auth routes
	mux.HandleFunc("POST /api/auth/register", deps.AuthHandler.HandleRegister)
	mux.HandleFunc("POST /api/auth/login", deps.AuthHandler.HandleLogin)

	// Protected routes
	authMiddleware := middleware.Auth(deps.JWT, deps.UserRepo)
	protected := func(h http.HandlerFunc) http.Handler {
		return authMiddleware(h)
	}

	mux.Handle("GET /api/auth/me", protected(deps.AuthHandler.HandleMe))

	mux.Handle("GET /api/transactions", protected(deps.TransactionHandler.HandleList))
	mux.Handle("POST /api/transactions", protected(deps.TransactionHandler.HandleCreate))
	mux.Handle("GET /api/transactions/stats", protected(deps.TransactionHandler.HandleStats))
	mux.Handle("PUT /api/transactions/{id}", protected(deps.TransactionHandler.HandleUpdate))
	mux.Handle("DELETE /api/transactions/{id}", protected(deps.TransactionHandler.HandleDelete))

	mux.Handle("GET /api/reminders", protected(deps.ReminderHandler.HandleList))
	mux.Handle("POST /api/reminders", protected(deps.ReminderHandler.HandleCreate))
	mux.Handle("GET /api/reminders/upcoming", protected(deps.ReminderHandler.HandleUpcoming))
	mux.Handle("PUT /api/reminders/{id}", protected(deps.ReminderHandler.HandleUpdate))
	mux.Handle("DELETE /api/reminders/{id}", protected(deps.ReminderHandler.HandleDelete))

	mux.Handle("GET /api/budget", protected(deps.BudgetHandler.HandleGet))
	mux.Handle("PUT /api/budget", protected(deps.BudgetHandler.HandleUpdate))

	mux.Handle("GET /api/analytics/expenses", protected(deps.AnalyticsHandler.HandleExpenses))
	mux.Handle("GET /api/analytics/budget-vs-actual", protected(deps.AnalyticsHandler.HandleBudgetVsActual))
	mux.Handle("GET /api/analytics/overview", protected(deps.AnalyticsHandler.HandleOverview))

	// Global middleware, innermost first
	handler := middleware.Logging(middleware.CORS(mux))
	if cfg.Telemetry.Enabled {
		handler = middleware.Telemetry(handler)
	}

	return handler
}
