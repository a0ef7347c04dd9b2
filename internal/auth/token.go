package auth

import "github.com/google/uuid"

// NewToken generates a fresh opaque bearer token. Tokens carry no claims;
// they are only meaningful as a lookup key into the sessions store.
func NewToken() string {
	return uuid.New().String()
}

// NewID generates a unique identifier for a record.
func NewID() string {
	return uuid.New().String()
}
