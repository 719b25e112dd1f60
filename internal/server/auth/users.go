package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/daylog/internal/common"
)

// Users is the static credential table: username to bcrypt password hash.
// The journal is a personal app; accounts are provisioned via configuration,
// there is no self-registration.
type Users map[string]string

// Authenticate checks a username/password pair against the table.
func (u Users) Authenticate(username, password string) error {
	hash, ok := u[username]
	if !ok {
		// unknown user costs the same as a wrong password
		_ = bcrypt.CompareHashAndPassword([]byte("$2a$10$N9qo8uLOickgx2ZMRZoMye"), []byte(password))
		return common.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return common.ErrInvalidCredentials
	}
	return nil
}

// HashPassword produces a bcrypt hash for provisioning the user table.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
