package http

import (
	"net/http"

	"bursar/internal/domain/analytics"
	"bursar/internal/domain/transaction"
	"bursar/internal/shared/middleware"
)

type AnalyticsHandler struct {
	service *analytics.Service
}

func NewAnalyticsHandler(service *analytics.Service) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// HandleExpenses returns the bucketed expense breakdown for the range
// selected by the timeRange query parameter. Unknown values fall back
// to the current month.
func (h *AnalyticsHandler) HandleExpenses(w http.ResponseWriter, r *http.Request) {
	u := middleware.CurrentUser(r.Context())

	timeRange := transaction.ParseTimeRange(r.URL.Query().Get("timeRange"))

	breakdown, err := h.service.ExpenseBreakdown(r.Context(), u.ID, timeRange)
	if err != nil {
		respondStorageError(w, "Failed to load expense breakdown", err)
		return
	}

	respondJSON(w, http.StatusOK, breakdown)
}

// HandleBudgetVsActual returns planned caps next to current-month
// spending per bucket.
func (h *AnalyticsHandler) HandleBudgetVsActual(w http.ResponseWriter, r *http.Request) {
	u := middleware.CurrentUser(r.Context())

	comparison, err := h.service.BudgetVsActual(r.Context(), u.ID)
	if err != nil {
		respondStorageError(w, "Failed to load budget comparison", err)
		return
	}

	respondJSON(w, http.StatusOK, comparison)
}

// HandleOverview returns the current-month totals for the dashboard
// header.
func (h *AnalyticsHandler) HandleOverview(w http.ResponseWriter, r *http.Request) {
	u := middleware.CurrentUser(r.Context())

	stats, err := h.service.Overview(r.Context(), u.ID)
	if err != nil {
		respondStorageError(w, "Failed to load overview", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"stats": stats})
}
