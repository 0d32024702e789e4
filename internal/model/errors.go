package model

import "errors"

// Common errors used across the application
var (
	// User errors
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already taken")

	// Entry errors
	ErrEntryNotFound = errors.New("entry not found")
	ErrNotEntryOwner = errors.New("entry belongs to another user")

	// Comment errors
	ErrCommentNotFound = errors.New("comment not found")
	ErrNotCommentOwner = errors.New("comment belongs to another user")
	ErrCommentMismatch = errors.New("comment does not belong to this entry")
)
