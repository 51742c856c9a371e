package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"bursar/internal/domain/analytics"
	"bursar/internal/domain/budget"
	"bursar/internal/domain/transaction"
	"bursar/internal/domain/user"

	"github.com/shopspring/decimal"
)

func TestHandleExpenses(t *testing.T) {
	tests := []struct {
		name          string
		query         string
		expectedRange transaction.TimeRange
	}{
		{name: "Default", query: "", expectedRange: transaction.RangeThisMonth},
		{name: "LastMonth", query: "?timeRange=last_month", expectedRange: transaction.RangeLastMonth},
		{name: "Semester", query: "?timeRange=this_semester", expectedRange: transaction.RangeThisSemester},
		{name: "Unknown", query: "?timeRange=next_year", expectedRange: transaction.RangeThisMonth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotRange transaction.TimeRange
			txRepo := &MockTransactionRepo{
				ExpenseSumsByCategoryFunc: func(ctx context.Context, userID int64, timeRange transaction.TimeRange) ([]transaction.CategorySum, error) {
					gotRange = timeRange
					return []transaction.CategorySum{
						{Category: "food", Total: decimal.NewFromInt(80)},
					}, nil
				},
			}
			handler := NewAnalyticsHandler(analytics.NewService(txRepo, &MockBudgetRepo{}))

			req := httptest.NewRequest(http.MethodGet, "/api/analytics/expenses"+tt.query, nil)
			req = withUser(req, &user.User{ID: 1})
			rec := httptest.NewRecorder()

			handler.HandleExpenses(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
			}
			if gotRange != tt.expectedRange {
				t.Errorf("expected range %q, got %q", tt.expectedRange, gotRange)
			}

			var resp analytics.Breakdown
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if len(resp.Data) != len(resp.Labels) {
				t.Errorf("data length %d does not match labels length %d", len(resp.Data), len(resp.Labels))
			}
		})
	}
}

func TestHandleBudgetVsActual(t *testing.T) {
	txRepo := &MockTransactionRepo{
		SpendingSumsByCategoryFunc: func(ctx context.Context, userID int64) ([]transaction.CategorySum, error) {
			return []transaction.CategorySum{
				{Category: "rent", Total: decimal.NewFromInt(280)},
			}, nil
		},
	}
	budgetRepo := &MockBudgetRepo{
		GetFunc: func(ctx context.Context, userID int64) (*budget.Settings, error) {
			return &budget.Settings{UserID: userID, RentBudget: decimal.NewFromInt(300)}, nil
		},
	}
	handler := NewAnalyticsHandler(analytics.NewService(txRepo, budgetRepo))

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/budget-vs-actual", nil)
	req = withUser(req, &user.User{ID: 1})
	rec := httptest.NewRecorder()

	handler.HandleBudgetVsActual(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp analytics.BudgetVsActual
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Planned[0].Equal(decimal.NewFromInt(300)) {
		t.Errorf("expected planned rent 300, got %s", resp.Planned[0])
	}
	if !resp.Actual[0].Equal(decimal.NewFromInt(280)) {
		t.Errorf("expected actual rent 280, got %s", resp.Actual[0])
	}
}

func TestHandleBudgetVsActualStorageError(t *testing.T) {
	txRepo := &MockTransactionRepo{
		SpendingSumsByCategoryFunc: func(ctx context.Context, userID int64) ([]transaction.CategorySum, error) {
			return nil, errors.New("pq: connection refused")
		},
	}
	handler := NewAnalyticsHandler(analytics.NewService(txRepo, &MockBudgetRepo{}))

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/budget-vs-actual", nil)
	req = withUser(req, &user.User{ID: 1})
	rec := httptest.NewRecorder()

	handler.HandleBudgetVsActual(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["error"] != "Failed to load budget comparison" {
		t.Errorf("expected generic error message, got %q", resp["error"])
	}
}

func TestHandleOverview(t *testing.T) {
	txRepo := &MockTransactionRepo{
		MonthlyStatsFunc: func(ctx context.Context, userID int64) (*transaction.Stats, error) {
			return &transaction.Stats{
				Income:   decimal.NewFromInt(900),
				Expenses: decimal.NewFromInt(300),
				Savings:  decimal.NewFromInt(150),
				Balance:  decimal.NewFromInt(450),
			}, nil
		},
	}
	handler := NewAnalyticsHandler(analytics.NewService(txRepo, &MockBudgetRepo{}))

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/overview", nil)
	req = withUser(req, &user.User{ID: 1})
	rec := httptest.NewRecorder()

	handler.HandleOverview(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Stats transaction.Stats `json:"stats"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Stats.Balance.Equal(decimal.NewFromInt(450)) {
		t.Errorf("expected balance 450, got %s", resp.Stats.Balance)
	}
}
