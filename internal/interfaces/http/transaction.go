package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"bursar/internal/domain/transaction"
	"bursar/internal/shared/middleware"

	"github.com/shopspring/decimal"
)

type TransactionHandler struct {
	transactionRepo transaction.Repository
}

func NewTransactionHandler(transactionRepo transaction.Repository) *TransactionHandler {
	return &TransactionHandler{transactionRepo: transactionRepo}
}

type TransactionRequest struct {
	Type            string          `json:"type"`
	Title           string          `json:"title"`
	Amount          decimal.Decimal `json:"amount"`
	Category        string          `json:"category"`
	TransactionDate string          `json:"transaction_date"`
	Description     string          `json:"description"`
}

func (req *TransactionRequest) validate() (time.Time, string) {
	switch req.Type {
	case transaction.TypeIncome, transaction.TypeExpense, transaction.TypeSavings:
	default:
		return time.Time{}, "type must be income, expense or savings"
	}
	if req.Title == "" {
		return time.Time{}, "title is required"
	}
	if !req.Amount.IsPositive() {
		return time.Time{}, "amount must be positive"
	}
	if req.Category == "" {
		return time.Time{}, "category is required"
	}

	date, err := time.Parse("2006-01-02", req.TransactionDate)
	if err != nil {
		return time.Time{}, "invalid transaction_date format (use YYYY-MM-DD)"
	}
	return date, ""
}

// HandleList returns the user's transactions, newest first, optionally
// capped by a positive limit query parameter. A non-numeric or
// non-positive limit is ignored.
func (h *TransactionHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	u := middleware.CurrentUser(r.Context())

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	transactions, err := h.transactionRepo.ListByUserID(r.Context(), u.ID, limit)
	if err != nil {
		respondStorageError(w, "Failed to load transactions", err)
		return
	}
	if transactions == nil {
		transactions = []*transaction.Transaction{}
	}

	respondJSON(w, http.StatusOK, map[string]any{"transactions": transactions})
}

func (h *TransactionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	u := middleware.CurrentUser(r.Context())

	var req TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	date, msg := req.validate()
	if msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	t, err := h.transactionRepo.Create(r.Context(), transaction.CreateTransactionParams{
		UserID:          u.ID,
		Type:            req.Type,
		Title:           req.Title,
		Amount:          req.Amount,
		Category:        req.Category,
		TransactionDate: date,
		Description:     req.Description,
	})
	if err != nil {
		respondStorageError(w, "Failed to create transaction", err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{"transaction": t})
}

func (h *TransactionHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	u := middleware.CurrentUser(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid transaction ID")
		return
	}

	var req TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	date, msg := req.validate()
	if msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	t, err := h.transactionRepo.Update(r.Context(), u.ID, id, transaction.UpdateTransactionParams{
		Type:            req.Type,
		Title:           req.Title,
		Amount:          req.Amount,
		Category:        req.Category,
		TransactionDate: date,
		Description:     req.Description,
	})
	if err != nil {
		if errors.Is(err, transaction.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Transaction not found")
			return
		}
		respondStorageError(w, "Failed to update transaction", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"transaction": t})
}

func (h *TransactionHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	u := middleware.CurrentUser(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid transaction ID")
		return
	}

	if err := h.transactionRepo.Delete(r.Context(), u.ID, id); err != nil {
		if errors.Is(err, transaction.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Transaction not found")
			return
		}
		respondStorageError(w, "Failed to delete transaction", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Transaction deleted successfully"})
}

// HandleStats returns the current calendar month aggregate.
func (h *TransactionHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	u := middleware.CurrentUser(r.Context())

	stats, err := h.transactionRepo.MonthlyStats(r.Context(), u.ID)
	if err != nil {
		respondStorageError(w, "Failed to load statistics", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"stats": stats})
}
