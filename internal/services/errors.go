package services

import "errors"

var (
	ErrBadCreds     = errors.New("invalid account or password")
	ErrAccountTaken = errors.New("account already exists")

	// ErrNotFound covers missing products, cart lines and orders alike; the
	// HTTP layer decides the user-facing message per operation.
	ErrNotFound = errors.New("not found")
)
