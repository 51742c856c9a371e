package http

import (
	"encoding/json"
	"net/http"

	"bursar/internal/domain/budget"
	"bursar/internal/shared/middleware"

	"github.com/shopspring/decimal"
)

type BudgetHandler struct {
	budgetRepo budget.Repository
}

func NewBudgetHandler(budgetRepo budget.Repository) *BudgetHandler {
	return &BudgetHandler{budgetRepo: budgetRepo}
}

// budgetAmount decodes like decimal.Decimal but coerces values it
// cannot parse to zero, so a malformed cap resets that bucket instead
// of failing the whole request.
type budgetAmount struct {
	decimal.Decimal
}

func (a *budgetAmount) UnmarshalJSON(data []byte) error {
	if err := a.Decimal.UnmarshalJSON(data); err != nil {
		a.Decimal = decimal.Zero
	}
	return nil
}

// BudgetRequest carries the six caps. Missing and non-numeric fields
// decode as zero, so a partial payload resets the omitted buckets.
type BudgetRequest struct {
	RentBudget      budgetAmount `json:"rent_budget"`
	FoodBudget      budgetAmount `json:"food_budget"`
	TransportBudget budgetAmount `json:"transport_budget"`
	TuitionBudget   budgetAmount `json:"tuition_budget"`
	SavingsBudget   budgetAmount `json:"savings_budget"`
	OtherBudget     budgetAmount `json:"other_budget"`
}

// HandleGet returns the user's budget settings, creating the zero row
// on first access.
func (h *BudgetHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	u := middleware.CurrentUser(r.Context())

	settings, err := h.budgetRepo.GetOrCreate(r.Context(), u.ID)
	if err != nil {
		respondStorageError(w, "Failed to load budget settings", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"budget": settings})
}

// HandleUpdate replaces all six caps at once.
func (h *BudgetHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	u := middleware.CurrentUser(r.Context())

	var req BudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	for _, v := range []decimal.Decimal{
		req.RentBudget.Decimal, req.FoodBudget.Decimal, req.TransportBudget.Decimal,
		req.TuitionBudget.Decimal, req.SavingsBudget.Decimal, req.OtherBudget.Decimal,
	} {
		if v.IsNegative() {
			respondError(w, http.StatusBadRequest, "Budget values must not be negative")
			return
		}
	}

	settings, err := h.budgetRepo.Upsert(r.Context(), u.ID, budget.UpdateSettingsParams{
		RentBudget:      req.RentBudget.Decimal,
		FoodBudget:      req.FoodBudget.Decimal,
		TransportBudget: req.TransportBudget.Decimal,
		TuitionBudget:   req.TuitionBudget.Decimal,
		SavingsBudget:   req.SavingsBudget.Decimal,
		OtherBudget:     req.OtherBudget.Decimal,
	})
	if err != nil {
		respondStorageError(w, "Failed to save budget settings", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message": "Budget updated successfully",
		"budget":  settings,
	})
}
