package utils

import "golang.org/x/crypto/bcrypt"

// dummyHash is compared against when the account does not exist so sign-in
// takes the same time for unknown emails.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("petmeet-dummy-password"), bcrypt.DefaultCost)

// HashPassword returns the bcrypt hash of the password using a cost that balances security and performance.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares the bcrypt hashed password with its possible plaintext equivalent.
// An empty hash is checked against a dummy value and always fails.
func CheckPassword(hash, password string) bool {
	if hash == "" {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
