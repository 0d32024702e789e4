package model

import "time"

// User is a registered account. Users are created on signup and read on
// login; they are never updated or deleted.
type User struct {
	ID           int64
	Username     string // unique login name
	PasswordHash string // bcrypt hash
	CreatedAt    time.Time
}
