package models

import "time"

// LinkToken is a one-per-user password reset token. Issuing a new one
// replaces the previous row for the same user.
type LinkToken struct {
	ID        int64
	UserID    int64
	Token     string
	CreatedAt time.Time
}
