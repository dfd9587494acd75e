package domain

import "time"

// User is the domain model for platform accounts. PasswordHash holds the
// bcrypt digest of the credential; the plaintext is never persisted.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
