package user

import (
	"errors"
	"strings"
	"time"
)

// ErrNotFound is returned when no user matches the lookup.
var ErrNotFound = errors.New("user not found")

// ErrDuplicate is returned when the student ID or email is already registered.
var ErrDuplicate = errors.New("student ID or email already exists")

type User struct {
	ID             int64     `json:"id"`
	StudentID      string    `json:"student_id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	AvatarInitials string    `json:"avatar_initials"`
	PasswordHash   string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type CreateUserParams struct {
	StudentID      string
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	PasswordHash   string
	AvatarInitials string
}

// AvatarInitials derives the avatar label from the first letters of the
// first and last names, uppercased.
func AvatarInitials(firstName, lastName string) string {
	var b strings.Builder
	if firstName != "" {
		b.WriteString(string([]rune(firstName)[0]))
	}
	if lastName != "" {
		b.WriteString(string([]rune(lastName)[0]))
	}
	return strings.ToUpper(b.String())
}
