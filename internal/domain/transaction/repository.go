package transaction

import "context"

// Repository defines the interface for transaction data access
type Repository interface {
	Create(ctx context.Context, params CreateTransactionParams) (*Transaction, error)
	// ListByUserID returns the user's transactions ordered by
	// transaction_date descending, then created_at descending.
	// limit <= 0 means no limit.
	ListByUserID(ctx context.Context, userID int64, limit int) ([]*Transaction, error)
	// Update replaces the mutable fields of the transaction owned by
	// userID. Returns ErrNotFound when the row does not exist or
	// belongs to another user.
	Update(ctx context.Context, userID, id int64, params UpdateTransactionParams) (*Transaction, error)
	// Delete removes the transaction owned by userID. Returns
	// ErrNotFound under the same ownership semantics as Update.
	Delete(ctx context.Context, userID, id int64) error
	// MonthlyStats aggregates the current calendar month.
	MonthlyStats(ctx context.Context, userID int64) (*Stats, error)
	// ExpenseSumsByCategory sums expense transactions per raw category
	// within the given range.
	ExpenseSumsByCategory(ctx context.Context, userID int64, timeRange TimeRange) ([]CategorySum, error)
	// SpendingSumsByCategory sums expense and savings transactions per
	// raw category for the current calendar month.
	SpendingSumsByCategory(ctx context.Context, userID int64) ([]CategorySum, error)
}
