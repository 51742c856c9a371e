package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bursar/internal/domain/transaction"
)

type TransactionRepository struct {
	db *DB
}

func NewTransactionRepository(db *DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = `id, user_id, type, title, amount, category, transaction_date, description, created_at, updated_at`

func scanTransaction(row interface{ Scan(...any) error }) (*transaction.Transaction, error) {
	var t transaction.Transaction
	var description sql.NullString

	err := row.Scan(
		&t.ID, &t.UserID, &t.Type, &t.Title, &t.Amount, &t.Category,
		&t.TransactionDate, &description, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.Description = description.String
	return &t, nil
}

func (r *TransactionRepository) Create(ctx context.Context, params transaction.CreateTransactionParams) (*transaction.Transaction, error) {
	query := `
		INSERT INTO transactions (user_id, type, title, amount, category, transaction_date, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + transactionColumns

	t, err := scanTransaction(r.db.QueryRowContext(
		ctx, query,
		params.UserID, params.Type, params.Title, params.Amount,
		params.Category, params.TransactionDate, params.Description,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return t, nil
}

func (r *TransactionRepository) ListByUserID(ctx context.Context, userID int64, limit int) ([]*transaction.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1
		ORDER BY transaction_date DESC, created_at DESC
	`
	args := []any{userID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*transaction.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return transactions, nil
}

// Update replaces the mutable fields in one conditional statement so the
// ownership check and the write cannot race.
func (r *TransactionRepository) Update(ctx context.Context, userID, id int64, params transaction.UpdateTransactionParams) (*transaction.Transaction, error) {
	query := `
		UPDATE transactions
		SET type = $1,
		    title = $2,
		    amount = $3,
		    category = $4,
		    transaction_date = $5,
		    description = $6,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $7 AND user_id = $8
		RETURNING ` + transactionColumns

	t, err := scanTransaction(r.db.QueryRowContext(
		ctx, query,
		params.Type, params.Title, params.Amount, params.Category,
		params.TransactionDate, params.Description, id, userID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, transaction.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	return t, nil
}

func (r *TransactionRepository) Delete(ctx context.Context, userID, id int64) error {
	query := `DELETE FROM transactions WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rows == 0 {
		return transaction.ErrNotFound
	}

	return nil
}

func (r *TransactionRepository) MonthlyStats(ctx context.Context, userID int64) (*transaction.Stats, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE 0 END), 0) AS income,
			COALESCE(SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END), 0) AS expenses,
			COALESCE(SUM(CASE WHEN type = 'savings' THEN amount ELSE 0 END), 0) AS savings,
			COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE 0 END), 0) -
			COALESCE(SUM(CASE WHEN type IN ('expense', 'savings') THEN amount ELSE 0 END), 0) AS balance
		FROM transactions
		WHERE user_id = $1
		  AND date_trunc('month', transaction_date) = date_trunc('month', CURRENT_DATE)
	`

	var stats transaction.Stats
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&stats.Income, &stats.Expenses, &stats.Savings, &stats.Balance,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get monthly stats: %w", err)
	}

	return &stats, nil
}

func (r *TransactionRepository) ExpenseSumsByCategory(ctx context.Context, userID int64, timeRange transaction.TimeRange) ([]transaction.CategorySum, error) {
	var dateCondition string
	switch timeRange {
	case transaction.RangeLastMonth:
		dateCondition = `AND transaction_date >= CURRENT_DATE - INTERVAL '1 month' AND transaction_date < CURRENT_DATE`
	case transaction.RangeThisSemester:
		dateCondition = `AND transaction_date >= CURRENT_DATE - INTERVAL '6 months'`
	default: // this_month
		dateCondition = `AND date_trunc('month', transaction_date) = date_trunc('month', CURRENT_DATE)`
	}

	query := `
		SELECT category, SUM(amount) AS total_amount
		FROM transactions
		WHERE user_id = $1
		  AND type = 'expense'
		  ` + dateCondition + `
		GROUP BY category
		ORDER BY total_amount DESC
	`

	return r.sumsByCategory(ctx, query, userID)
}

func (r *TransactionRepository) SpendingSumsByCategory(ctx context.Context, userID int64) ([]transaction.CategorySum, error) {
	query := `
		SELECT category, SUM(amount) AS total_amount
		FROM transactions
		WHERE user_id = $1
		  AND type IN ('expense', 'savings')
		  AND date_trunc('month', transaction_date) = date_trunc('month', CURRENT_DATE)
		GROUP BY category
	`

	return r.sumsByCategory(ctx, query, userID)
}

func (r *TransactionRepository) sumsByCategory(ctx context.Context, query string, userID int64) ([]transaction.CategorySum, error) {
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum transactions by category: %w", err)
	}
	defer rows.Close()

	var sums []transaction.CategorySum
	for rows.Next() {
		var s transaction.CategorySum
		if err := rows.Scan(&s.Category, &s.Total); err != nil {
			return nil, fmt.Errorf("failed to scan category sum: %w", err)
		}
		sums = append(sums, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category sums: %w", err)
	}

	return sums, nil
}
