package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bursar/internal/domain/reminder"
)

type ReminderRepository struct {
	db *DB
}

func NewReminderRepository(db *DB) *ReminderRepository {
	return &ReminderRepository{db: db}
}

const reminderColumns = `id, user_id, title, amount, category, due_date, notes, is_recurring, is_completed, created_at, updated_at`

func scanReminder(row interface{ Scan(...any) error }) (*reminder.Reminder, error) {
	var rem reminder.Reminder
	var notes sql.NullString

	err := row.Scan(
		&rem.ID, &rem.UserID, &rem.Title, &rem.Amount, &rem.Category,
		&rem.DueDate, &notes, &rem.IsRecurring, &rem.IsCompleted,
		&rem.CreatedAt, &rem.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	rem.Notes = notes.String
	return &rem, nil
}

func (r *ReminderRepository) Create(ctx context.Context, params reminder.CreateReminderParams) (*reminder.Reminder, error) {
	query := `
		INSERT INTO payment_reminders (user_id, title, amount, category, due_date, notes, is_recurring)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + reminderColumns

	rem, err := scanReminder(r.db.QueryRowContext(
		ctx, query,
		params.UserID, params.Title, params.Amount, params.Category,
		params.DueDate, params.Notes, params.IsRecurring,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create reminder: %w", err)
	}

	return rem, nil
}

func (r *ReminderRepository) ListActive(ctx context.Context, userID int64) ([]*reminder.Reminder, error) {
	query := `
		SELECT ` + reminderColumns + `
		FROM payment_reminders
		WHERE user_id = $1 AND is_completed = FALSE
		ORDER BY due_date ASC
	`

	return r.list(ctx, query, userID)
}

func (r *ReminderRepository) ListUpcoming(ctx context.Context, userID int64) ([]*reminder.Reminder, error) {
	query := `
		SELECT ` + reminderColumns + `
		FROM payment_reminders
		WHERE user_id = $1
		  AND is_completed = FALSE
		  AND due_date BETWEEN CURRENT_DATE AND CURRENT_DATE + INTERVAL '7 days'
		ORDER BY due_date ASC
	`

	return r.list(ctx, query, userID)
}

func (r *ReminderRepository) ListAllUpcoming(ctx context.Context) ([]*reminder.Reminder, error) {
	query := `
		SELECT ` + reminderColumns + `
		FROM payment_reminders
		WHERE is_completed = FALSE
		  AND due_date BETWEEN CURRENT_DATE AND CURRENT_DATE + INTERVAL '7 days'
		ORDER BY due_date ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming reminders: %w", err)
	}
	defer rows.Close()

	return collectReminders(rows)
}

func (r *ReminderRepository) list(ctx context.Context, query string, userID int64) ([]*reminder.Reminder, error) {
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	defer rows.Close()

	return collectReminders(rows)
}

func collectReminders(rows *sql.Rows) ([]*reminder.Reminder, error) {
	var reminders []*reminder.Reminder
	for rows.Next() {
		rem, err := scanReminder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", err)
		}
		reminders = append(reminders, rem)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reminders: %w", err)
	}

	return reminders, nil
}

// Update replaces the mutable fields, including the completion and
// recurrence flags, in one conditional statement.
func (r *ReminderRepository) Update(ctx context.Context, userID, id int64, params reminder.UpdateReminderParams) (*reminder.Reminder, error) {
	query := `
		UPDATE payment_reminders
		SET title = $1,
		    amount = $2,
		    category = $3,
		    due_date = $4,
		    notes = $5,
		    is_recurring = $6,
		    is_completed = $7,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $8 AND user_id = $9
		RETURNING ` + reminderColumns

	rem, err := scanReminder(r.db.QueryRowContext(
		ctx, query,
		params.Title, params.Amount, params.Category, params.DueDate,
		params.Notes, params.IsRecurring, params.IsCompleted, id, userID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, reminder.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update reminder: %w", err)
	}

	return rem, nil
}

func (r *ReminderRepository) Delete(ctx context.Context, userID, id int64) error {
	query := `DELETE FROM payment_reminders WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rows == 0 {
		return reminder.ErrNotFound
	}

	return nil
}
