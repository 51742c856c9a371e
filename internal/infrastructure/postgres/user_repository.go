package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bursar/internal/domain/user"

	"github.com/lib/pq"
)

type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, student_id, first_name, last_name, email, phone, avatar_initials, password_hash, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*user.User, error) {
	var u user.User
	var phone, initials sql.NullString

	err := row.Scan(
		&u.ID, &u.StudentID, &u.FirstName, &u.LastName, &u.Email,
		&phone, &initials, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	u.Phone = phone.String
	u.AvatarInitials = initials.String
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, params user.CreateUserParams) (*user.User, error) {
	query := `
		INSERT INTO users (student_id, first_name, last_name, email, phone, avatar_initials, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + userColumns

	u, err := scanUser(r.db.QueryRowContext(
		ctx, query,
		params.StudentID, params.FirstName, params.LastName, params.Email,
		params.Phone, params.AvatarInitials, params.PasswordHash,
	))
	if err != nil {
		// The handler's pre-insert existence check can race a concurrent
		// registration; the unique constraints are the authority.
		if isUniqueViolation(err) {
			return nil, user.ErrDuplicate
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return u, nil
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	u, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, user.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

func (r *UserRepository) GetByStudentID(ctx context.Context, studentID string) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE student_id = $1`

	u, err := scanUser(r.db.QueryRowContext(ctx, query, studentID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, user.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by student ID: %w", err)
	}

	return u, nil
}

func (r *UserRepository) ExistsByStudentIDOrEmail(ctx context.Context, studentID, email string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE student_id = $1 OR email = $2)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, studentID, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}

	return exists, nil
}
