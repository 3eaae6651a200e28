package database

import (
	"time"
)

// Session keys written at login and cleared at logout
const (
	KeyToken    = "token"
	KeyUsername = "username"
	KeyEmail    = "email"

	// KeyUserEmail carries the address between the steps of registration and password reset
	KeyUserEmail = "userEmail"
)

// SessionKeys are removed together on logout
var SessionKeys = []string{KeyToken, KeyUsername, KeyEmail}

// Entry is one persisted key/value pair
type Entry struct {
	Key          string    `db:"name"`
	Value        string    `db:"value"`
	LastModified time.Time `db:"lastmodified"`
}
