package budget

import "context"

// Repository defines the interface for budget settings data access
type Repository interface {
	// GetOrCreate returns the user's settings row, creating a
	// zero-valued one first when none exists.
	GetOrCreate(ctx context.Context, userID int64) (*Settings, error)
	// Get returns the row or nil when absent. Read-only: never creates.
	Get(ctx context.Context, userID int64) (*Settings, error)
	// Upsert inserts or fully replaces the six caps.
	Upsert(ctx context.Context, userID int64, params UpdateSettingsParams) (*Settings, error)
	// CreateDefault inserts a zero-valued row, ignoring conflicts.
	// Called at registration.
	CreateDefault(ctx context.Context, userID int64) error
}
