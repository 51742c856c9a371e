package reminder

import "context"

// Repository defines the interface for payment reminder data access
type Repository interface {
	Create(ctx context.Context, params CreateReminderParams) (*Reminder, error)
	// ListActive returns the user's not-completed reminders ordered by
	// due date ascending.
	ListActive(ctx context.Context, userID int64) ([]*Reminder, error)
	// ListUpcoming returns active reminders due within [today, today+7d]
	// inclusive for one user.
	ListUpcoming(ctx context.Context, userID int64) ([]*Reminder, error)
	// ListAllUpcoming returns active reminders due within the next 7
	// days across every user. Used by the notification poller.
	ListAllUpcoming(ctx context.Context) ([]*Reminder, error)
	// Update replaces the mutable fields of the reminder owned by
	// userID. Returns ErrNotFound when the row does not exist or
	// belongs to another user.
	Update(ctx context.Context, userID, id int64, params UpdateReminderParams) (*Reminder, error)
	// Delete removes the reminder owned by userID, with the same
	// ownership semantics as Update.
	Delete(ctx context.Context, userID, id int64) error
}
