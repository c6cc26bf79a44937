package user

import "time"

// User is a row in the users table.
type User struct {
	ID           int64
	Name         string
	Email        string
	Phone        string
	Country      string
	Address      string
	PasswordHash string
	CreatedAt    time.Time
}
