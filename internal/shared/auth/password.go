package auth

import "golang.org/x/crypto/bcrypt"

// hashCost is the bcrypt work factor for new password hashes. Existing
// hashes keep the cost they were created with.
const hashCost = bcrypt.DefaultCost

// HashPassword returns the bcrypt hash of a plain text password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword compares a stored bcrypt hash against a candidate
// password, returning nil on a match.
func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
