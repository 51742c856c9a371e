package budget

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settings holds the six per-bucket monthly caps. Exactly one row
// exists per user, created lazily on first read or at registration.
type Settings struct {
	ID              int64           `json:"id"`
	UserID          int64           `json:"user_id"`
	RentBudget      decimal.Decimal `json:"rent_budget"`
	FoodBudget      decimal.Decimal `json:"food_budget"`
	TransportBudget decimal.Decimal `json:"transport_budget"`
	TuitionBudget   decimal.Decimal `json:"tuition_budget"`
	SavingsBudget   decimal.Decimal `json:"savings_budget"`
	OtherBudget     decimal.Decimal `json:"other_budget"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type UpdateSettingsParams struct {
	RentBudget      decimal.Decimal
	FoodBudget      decimal.Decimal
	TransportBudget decimal.Decimal
	TuitionBudget   decimal.Decimal
	SavingsBudget   decimal.Decimal
	OtherBudget     decimal.Decimal
}

// Caps returns the six budget values in the fixed bucket label order:
// Rent, Food, Transport, School Fees, Savings, Other.
func (s *Settings) Caps() []decimal.Decimal {
	return []decimal.Decimal{
		s.RentBudget,
		s.FoodBudget,
		s.TransportBudget,
		s.TuitionBudget,
		s.SavingsBudget,
		s.OtherBudget,
	}
}

// ZeroSettings returns an all-zero planned series for users without a
// stored budget row.
func ZeroSettings(userID int64) *Settings {
	return &Settings{UserID: userID}
}
