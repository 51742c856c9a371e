package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bursar/internal/domain/budget"
)

type BudgetRepository struct {
	db *DB
}

func NewBudgetRepository(db *DB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

const budgetColumns = `id, user_id, rent_budget, food_budget, transport_budget, tuition_budget, savings_budget, other_budget, created_at, updated_at`

func scanSettings(row interface{ Scan(...any) error }) (*budget.Settings, error) {
	var s budget.Settings

	err := row.Scan(
		&s.ID, &s.UserID, &s.RentBudget, &s.FoodBudget, &s.TransportBudget,
		&s.TuitionBudget, &s.SavingsBudget, &s.OtherBudget,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *BudgetRepository) Get(ctx context.Context, userID int64) (*budget.Settings, error) {
	query := `SELECT ` + budgetColumns + ` FROM budget_settings WHERE user_id = $1`

	s, err := scanSettings(r.db.QueryRowContext(ctx, query, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get budget settings: %w", err)
	}

	return s, nil
}

// GetOrCreate returns the user's settings, lazily inserting a
// zero-valued row first. The insert ignores conflicts so concurrent
// first reads cannot create duplicates.
func (r *BudgetRepository) GetOrCreate(ctx context.Context, userID int64) (*budget.Settings, error) {
	if err := r.CreateDefault(ctx, userID); err != nil {
		return nil, err
	}

	s, err := r.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("budget settings missing after create for user %d", userID)
	}

	return s, nil
}

func (r *BudgetRepository) CreateDefault(ctx context.Context, userID int64) error {
	query := `
		INSERT INTO budget_settings (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO NOTHING
	`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to create default budget settings: %w", err)
	}

	return nil
}

func (r *BudgetRepository) Upsert(ctx context.Context, userID int64, params budget.UpdateSettingsParams) (*budget.Settings, error) {
	query := `
		INSERT INTO budget_settings (user_id, rent_budget, food_budget, transport_budget, tuition_budget, savings_budget, other_budget)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET
		    rent_budget = EXCLUDED.rent_budget,
		    food_budget = EXCLUDED.food_budget,
		    transport_budget = EXCLUDED.transport_budget,
		    tuition_budget = EXCLUDED.tuition_budget,
		    savings_budget = EXCLUDED.savings_budget,
		    other_budget = EXCLUDED.other_budget,
		    updated_at = CURRENT_TIMESTAMP
		RETURNING ` + budgetColumns

	s, err := scanSettings(r.db.QueryRowContext(
		ctx, query,
		userID, params.RentBudget, params.FoodBudget, params.TransportBudget,
		params.TuitionBudget, params.SavingsBudget, params.OtherBudget,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert budget settings: %w", err)
	}

	return s, nil
}
