package model

import "time"

// User is an account that owns job applications. Email is stored
// normalized (trimmed, lower-cased) and is unique across the system.
// PasswordHash is the opaque bcrypt secret and is never serialized.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
