package user

import "context"

// Repository defines the interface for user data access
type Repository interface {
	Create(ctx context.Context, params CreateUserParams) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByStudentID(ctx context.Context, studentID string) (*User, error)
	ExistsByStudentIDOrEmail(ctx context.Context, studentID, email string) (bool, error)
}
