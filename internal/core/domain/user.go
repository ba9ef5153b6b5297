package domain

import (
	"errors"
	"time"
)

var ErrUserNotFound = errors.New("user does not exist")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("email and password are required")
var ErrWrongPassword = errors.New("incorrect password")
var ErrInvalidEmail = errors.New("invalid email format")
var ErrInvalidToken = errors.New("invalid or expired token")

// User models an account. Accounts are created by an approval step carrying
// only an email; the password hash stays empty until the first login, when
// the supplied password is adopted (invite-then-claim).
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Domain       string    `json:"domain,omitempty"`
	OTP          string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
