package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"bursar/internal/domain/reminder"
	"bursar/internal/shared/middleware"

	"github.com/shopspring/decimal"
)

type ReminderHandler struct {
	reminderRepo reminder.Repository
}

func NewReminderHandler(reminderRepo reminder.Repository) *ReminderHandler {
	return &ReminderHandler{reminderRepo: reminderRepo}
}

type ReminderRequest struct {
	Title       string          `json:"title"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	DueDate     string          `json:"due_date"`
	Notes       string          `json:"notes"`
	IsRecurring bool            `json:"is_recurring"`
	IsCompleted bool            `json:"is_completed"`
}

func (req *ReminderRequest) validate() (time.Time, string) {
	if req.Title == "" {
		return time.Time{}, "title is required"
	}
	if req.Amount.IsNegative() {
		return time.Time{}, "amount must not be negative"
	}
	if req.Category == "" {
		return time.Time{}, "category is required"
	}

	due, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		return time.Time{}, "invalid due_date format (use YYYY-MM-DD)"
	}
	return due, ""
}

// ReminderResponse decorates a reminder with its urgency relative to
// the current clock.
type ReminderResponse struct {
	*reminder.Reminder
	DaysUntilDue int                `json:"days_until_due"`
	DueStatus    reminder.DueStatus `json:"due_status"`
}

func decorateReminders(reminders []*reminder.Reminder, now time.Time) []ReminderResponse {
	out := make([]ReminderResponse, 0, len(reminders))
	for _, rem := range reminders {
		days := reminder.DaysUntil(rem.DueDate, now)
		out = append(out, ReminderResponse{
			Reminder:     rem,
			DaysUntilDue: days,
			DueStatus:    reminder.Classify(days),
		})
	}
	return out
}

// HandleList returns the user's active reminders ordered by due date.
func (h *ReminderHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	u := middleware.CurrentUser(r.Context())

	reminders, err := h.reminderRepo.ListActive(r.Context(), u.ID)
	if err != nil {
		respondStorageError(w, "Failed to load reminders", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"reminders": decorateReminders(reminders, time.Now()),
	})
}

// HandleUpcoming returns active reminders due within the next week.
func (h *ReminderHandler) HandleUpcoming(w http.ResponseWriter, r *http.Request) {
	u := middleware.CurrentUser(r.Context())

	reminders, err := h.reminderRepo.ListUpcoming(r.Context(), u.ID)
	if err != nil {
		respondStorageError(w, "Failed to load upcoming reminders", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"reminders": decorateReminders(reminders, time.Now()),
	})
}

func (h *ReminderHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	u := middleware.CurrentUser(r.Context())

	var req ReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	due, msg := req.validate()
	if msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	rem, err := h.reminderRepo.Create(r.Context(), reminder.CreateReminderParams{
		UserID:      u.ID,
		Title:       req.Title,
		Amount:      req.Amount,
		Category:    req.Category,
		DueDate:     due,
		Notes:       req.Notes,
		IsRecurring: req.IsRecurring,
	})
	if err != nil {
		respondStorageError(w, "Failed to create reminder", err)
		return
	}

	days := reminder.DaysUntil(rem.DueDate, time.Now())
	respondJSON(w, http.StatusCreated, map[string]any{
		"reminder": ReminderResponse{
			Reminder:     rem,
			DaysUntilDue: days,
			DueStatus:    reminder.Classify(days),
		},
	})
}

func (h *ReminderHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	u := middleware.CurrentUser(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid reminder ID")
		return
	}

	var req ReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	due, msg := req.validate()
	if msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	rem, err := h.reminderRepo.Update(r.Context(), u.ID, id, reminder.UpdateReminderParams{
		Title:       req.Title,
		Amount:      req.Amount,
		Category:    req.Category,
		DueDate:     due,
		Notes:       req.Notes,
		IsRecurring: req.IsRecurring,
		IsCompleted: req.IsCompleted,
	})
	if err != nil {
		if errors.Is(err, reminder.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Reminder not found")
			return
		}
		respondStorageError(w, "Failed to update reminder", err)
		return
	}

	days := reminder.DaysUntil(rem.DueDate, time.Now())
	respondJSON(w, http.StatusOK, map[string]any{
		"reminder": ReminderResponse{
			Reminder:     rem,
			DaysUntilDue: days,
			DueStatus:    reminder.Classify(days),
		},
	})
}

func (h *ReminderHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	u := middleware.CurrentUser(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid reminder ID")
		return
	}

	if err := h.reminderRepo.Delete(r.Context(), u.ID, id); err != nil {
		if errors.Is(err, reminder.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Reminder not found")
			return
		}
		respondStorageError(w, "Failed to delete reminder", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Reminder deleted successfully"})
}
