package models

import "time"

// User is an account record. Email is the login key and unique across all
// users; PasswordHash is a bcrypt digest, never the plaintext.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
}
