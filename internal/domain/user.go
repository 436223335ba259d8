package domain

import "time"

// User is the identity record. Created on registration, read during login,
// never updated or deleted by this service. PasswordHash must never leave
// the process in a response body.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
