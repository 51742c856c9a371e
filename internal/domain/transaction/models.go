package transaction

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a transaction does not exist or is not
// owned by the acting user. Ownership failures are indistinguishable
// from missing rows on purpose.
var ErrNotFound = errors.New("transaction not found")

// Transaction types.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
	TypeSavings = "savings"
)

type Transaction struct {
	ID              int64           `json:"id"`
	UserID          int64           `json:"user_id"`
	Type            string          `json:"type"`
	Title           string          `json:"title"`
	Amount          decimal.Decimal `json:"amount"`
	Category        string          `json:"category"`
	TransactionDate time.Time       `json:"transaction_date"`
	Description     string          `json:"description"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type CreateTransactionParams struct {
	UserID          int64
	Type            string
	Title           string
	Amount          decimal.Decimal
	Category        string
	TransactionDate time.Time
	Description     string
}

// UpdateTransactionParams carries the full replacement values for the
// mutable fields. Updates are full-replace, not patch.
type UpdateTransactionParams struct {
	Type            string
	Title           string
	Amount          decimal.Decimal
	Category        string
	TransactionDate time.Time
	Description     string
}

// Stats aggregates the current calendar month for one user.
// Balance = income - (expenses + savings).
type Stats struct {
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Savings  decimal.Decimal `json:"savings"`
	Balance  decimal.Decimal `json:"balance"`
}

// CategorySum is one row of a per-category aggregate query.
type CategorySum struct {
	Category string
	Total    decimal.Decimal
}

// TimeRange selects the window for expense analytics.
type TimeRange string

const (
	RangeThisMonth    TimeRange = "this_month"
	RangeLastMonth    TimeRange = "last_month"
	RangeThisSemester TimeRange = "this_semester"
)

// ParseTimeRange maps a query-string value to a TimeRange, defaulting
// unknown values to this_month like the rest of the API.
func ParseTimeRange(s string) TimeRange {
	switch TimeRange(s) {
	case RangeLastMonth:
		return RangeLastMonth
	case RangeThisSemester:
		return RangeThisSemester
	default:
		return RangeThisMonth
	}
}
