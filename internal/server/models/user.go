package models

import "time"

// User is a job provider account. Passwords are stored as bcrypt hashes.
type User struct {
	ID           string
	UserName     string
	PasswordHash []byte
	CreatedAt    time.Time
}
