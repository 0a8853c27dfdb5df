package account

import "time"

// User is a registered account. PasswordHash never leaves the service.
type User struct {
	ID              int64
	Name            string
	Email           string
	PasswordHash    []byte
	CreatedAt       time.Time
	LoginAt         *time.Time
	ProfileImageURL *string
}
