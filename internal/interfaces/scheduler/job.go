package scheduler

import "context"

// Job is a unit of work processed by the worker pool.
type Job interface {
	// Execute runs the job. The context carries the pool's cancellation
	// and a per-job timeout.
	Execute(ctx context.Context) error

	// UserID identifies whose data the job touches, for logging.
	UserID() string

	// Description is a short human-readable label.
	Description() string
}
