package analytics

import (
	"context"
	"errors"
	"testing"

	"bursar/internal/domain/budget"
	"bursar/internal/domain/transaction"

	"github.com/shopspring/decimal"
)

// MockTransactionRepo implements transaction.Repository for testing
type MockTransactionRepo struct {
	CreateFunc                 func(ctx context.Context, params transaction.CreateTransactionParams) (*transaction.Transaction, error)
	ListByUserIDFunc           func(ctx context.Context, userID int64, limit int) ([]*transaction.Transaction, error)
	UpdateFunc                 func(ctx context.Context, userID, id int64, params transaction.UpdateTransactionParams) (*transaction.Transaction, error)
	DeleteFunc                 func(ctx context.Context, userID, id int64) error
	MonthlyStatsFunc           func(ctx context.Context, userID int64) (*transaction.Stats, error)
	ExpenseSumsByCategoryFunc  func(ctx context.Context, userID int64, timeRange transaction.TimeRange) ([]transaction.CategorySum, error)
	SpendingSumsByCategoryFunc func(ctx context.Context, userID int64) ([]transaction.CategorySum, error)
}

func (m *MockTransactionRepo) Create(ctx context.Context, params transaction.CreateTransactionParams) (*transaction.Transaction, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *MockTransactionRepo) ListByUserID(ctx context.Context, userID int64, limit int) ([]*transaction.Transaction, error) {
	if m.ListByUserIDFunc != nil {
		return m.ListByUserIDFunc(ctx, userID, limit)
	}
	return nil, nil
}

func (m *MockTransactionRepo) Update(ctx context.Context, userID, id int64, params transaction.UpdateTransactionParams) (*transaction.Transaction, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, userID, id, params)
	}
	return nil, nil
}

func (m *MockTransactionRepo) Delete(ctx context.Context, userID, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, id)
	}
	return nil
}

func (m *MockTransactionRepo) MonthlyStats(ctx context.Context, userID int64) (*transaction.Stats, error) {
	if m.MonthlyStatsFunc != nil {
		return m.MonthlyStatsFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockTransactionRepo) ExpenseSumsByCategory(ctx context.Context, userID int64, timeRange transaction.TimeRange) ([]transaction.CategorySum, error) {
	if m.ExpenseSumsByCategoryFunc != nil {
		return m.ExpenseSumsByCategoryFunc(ctx, userID, timeRange)
	}
	return nil, nil
}

func (m *MockTransactionRepo) SpendingSumsByCategory(ctx context.Context, userID int64) ([]transaction.CategorySum, error) {
	if m.SpendingSumsByCategoryFunc != nil {
		return m.SpendingSumsByCategoryFunc(ctx, userID)
	}
	return nil, nil
}

// MockBudgetRepo implements budget.Repository for testing
type MockBudgetRepo struct {
	GetOrCreateFunc   func(ctx context.Context, userID int64) (*budget.Settings, error)
	GetFunc           func(ctx context.Context, userID int64) (*budget.Settings, error)
	UpsertFunc        func(ctx context.Context, userID int64, params budget.UpdateSettingsParams) (*budget.Settings, error)
	CreateDefaultFunc func(ctx context.Context, userID int64) error
}

func (m *MockBudgetRepo) GetOrCreate(ctx context.Context, userID int64) (*budget.Settings, error) {
	if m.GetOrCreateFunc != nil {
		return m.GetOrCreateFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockBudgetRepo) Get(ctx context.Context, userID int64) (*budget.Settings, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockBudgetRepo) Upsert(ctx context.Context, userID int64, params budget.UpdateSettingsParams) (*budget.Settings, error) {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, userID, params)
	}
	return nil, nil
}

func (m *MockBudgetRepo) CreateDefault(ctx context.Context, userID int64) error {
	if m.CreateDefaultFunc != nil {
		return m.CreateDefaultFunc(ctx, userID)
	}
	return nil
}

func TestExpenseBreakdown(t *testing.T) {
	txRepo := &MockTransactionRepo{
		ExpenseSumsByCategoryFunc: func(ctx context.Context, userID int64, timeRange transaction.TimeRange) ([]transaction.CategorySum, error) {
			if timeRange != transaction.RangeThisMonth {
				t.Errorf("unexpected time range %q", timeRange)
			}
			return []transaction.CategorySum{
				{Category: "rent", Total: decimal.NewFromInt(500)},
				{Category: "books", Total: decimal.NewFromInt(30)},
			}, nil
		},
	}

	svc := NewService(txRepo, &MockBudgetRepo{})
	got, err := svc.ExpenseBreakdown(context.Background(), 1, transaction.RangeThisMonth)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got.Data) != 6 || len(got.Labels) != 6 {
		t.Fatalf("got %d values / %d labels, want 6 / 6", len(got.Data), len(got.Labels))
	}
	if !got.Data[0].Equal(decimal.NewFromInt(500)) {
		t.Errorf("Rent bucket = %s, want 500", got.Data[0])
	}
	if !got.Data[5].Equal(decimal.NewFromInt(30)) {
		t.Errorf("Other bucket = %s, want 30", got.Data[5])
	}
}

func TestBudgetVsActual(t *testing.T) {
	txRepo := &MockTransactionRepo{
		SpendingSumsByCategoryFunc: func(ctx context.Context, userID int64) ([]transaction.CategorySum, error) {
			return []transaction.CategorySum{
				{Category: "food", Total: decimal.NewFromInt(120)},
				{Category: "investment", Total: decimal.NewFromInt(80)},
			}, nil
		},
	}
	budgetRepo := &MockBudgetRepo{
		GetFunc: func(ctx context.Context, userID int64) (*budget.Settings, error) {
			return &budget.Settings{
				UserID:     userID,
				RentBudget: decimal.NewFromInt(600),
				FoodBudget: decimal.NewFromInt(200),
			}, nil
		},
	}

	svc := NewService(txRepo, budgetRepo)
	got, err := svc.BudgetVsActual(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !got.Planned[0].Equal(decimal.NewFromInt(600)) {
		t.Errorf("planned Rent = %s, want 600", got.Planned[0])
	}
	if !got.Actual[1].Equal(decimal.NewFromInt(120)) {
		t.Errorf("actual Food = %s, want 120", got.Actual[1])
	}
	if !got.Actual[4].Equal(decimal.NewFromInt(80)) {
		t.Errorf("actual Savings = %s, want 80", got.Actual[4])
	}
}

func TestBudgetVsActualNoBudgetRow(t *testing.T) {
	budgetRepo := &MockBudgetRepo{
		GetFunc: func(ctx context.Context, userID int64) (*budget.Settings, error) {
			return nil, nil // no row for this user
		},
	}

	svc := NewService(&MockTransactionRepo{}, budgetRepo)
	got, err := svc.BudgetVsActual(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, v := range got.Planned {
		if !v.IsZero() {
			t.Errorf("planned[%d] = %s, want 0", i, v)
		}
	}
}

func TestBudgetVsActualPropagatesErrors(t *testing.T) {
	wantErr := errors.New("db down")
	txRepo := &MockTransactionRepo{
		SpendingSumsByCategoryFunc: func(ctx context.Context, userID int64) ([]transaction.CategorySum, error) {
			return nil, wantErr
		},
	}

	svc := NewService(txRepo, &MockBudgetRepo{})
	if _, err := svc.BudgetVsActual(context.Background(), 1); !errors.Is(err, wantErr) {
		t.Errorf("got error %v, want %v", err, wantErr)
	}
}
