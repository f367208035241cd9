package model

import "time"

// User represents a row in the `users` table. Both Username and APIKey are
// unique and never change after registration.
type User struct {
	ID        int64     `db:"id"`         // users.id
	Username  string    `db:"username"`   // users.username
	APIKey    string    `db:"api_key"`    // users.api_key (opaque UUIDv4)
	CreatedAt time.Time `db:"created_at"` // users.created_at
}

// Identity is what a resolved API key proves about the caller.
type Identity struct {
	UserID   int64
	Username string
}
