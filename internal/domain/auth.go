package domain

import "time"

// Token represents issued authentication token metadata. Tokens are
// stateless; nothing here is persisted, and no revocation store exists --
// a token stays valid until ExpiresAt regardless of later account changes.
type Token struct {
	SubjectID string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
