package services

import "golang.org/x/crypto/bcrypt"

// HashPassword produces a salted bcrypt hash of the raw password.
func HashPassword(raw string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword reports whether raw matches the stored bcrypt hash.
// A wrong password is a false return, never an error.
func VerifyPassword(raw, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(raw)) == nil
}
