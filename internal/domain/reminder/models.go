package reminder

import (
	"errors"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a reminder does not exist or belongs to
// another user.
var ErrNotFound = errors.New("reminder not found")

type Reminder struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	Title       string          `json:"title"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	DueDate     time.Time       `json:"due_date"`
	Notes       string          `json:"notes"`
	IsRecurring bool            `json:"is_recurring"`
	IsCompleted bool            `json:"is_completed"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type CreateReminderParams struct {
	UserID      int64
	Title       string
	Amount      decimal.Decimal
	Category    string
	DueDate     time.Time
	Notes       string
	IsRecurring bool
}

// UpdateReminderParams carries full replacement values, including the
// completion and recurrence toggles.
type UpdateReminderParams struct {
	Title       string
	Amount      decimal.Decimal
	Category    string
	DueDate     time.Time
	Notes       string
	IsRecurring bool
	IsCompleted bool
}

// DueStatus classifies how urgent a reminder is relative to its due date.
type DueStatus string

const (
	StatusOverdue   DueStatus = "overdue"
	StatusDueToday  DueStatus = "due_today"
	StatusDueSoon   DueStatus = "due_soon"  // 1-3 days, warning tier
	StatusUpcoming  DueStatus = "upcoming"  // 4-7 days, info tier
	StatusScheduled DueStatus = "scheduled" // beyond a week, no tier
)

// DaysUntil returns the whole-day distance from now to the due date,
// ceiling-rounded so a due date later today still counts as 0 and
// tomorrow counts as 1.
func DaysUntil(dueDate, now time.Time) int {
	diff := dueDate.Sub(now)
	return int(math.Ceil(diff.Hours() / 24))
}

// Classify maps the day distance to a due status.
func Classify(days int) DueStatus {
	switch {
	case days < 0:
		return StatusOverdue
	case days == 0:
		return StatusDueToday
	case days <= 3:
		return StatusDueSoon
	case days <= 7:
		return StatusUpcoming
	default:
		return StatusScheduled
	}
}

// Status is a convenience wrapper combining DaysUntil and Classify.
func (r *Reminder) Status(now time.Time) (int, DueStatus) {
	days := DaysUntil(r.DueDate, now)
	return days, Classify(days)
}
