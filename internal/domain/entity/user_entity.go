package entity

import (
	"time"
)

// User is the aggregate root for the identity domain
// Passwords are stored as bcrypt hashes in Password field.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
