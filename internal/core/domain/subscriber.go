package domain

import (
	"errors"
	"time"
)

var ErrAlreadySubscribed = errors.New("email is already subscribed")

// Subscriber is a newsletter signup. Emails are unique.
type Subscriber struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
