package domain

import "time"

// User is a registered account that can own tasks.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FullName joins first and last name with a single space. Empty parts are
// kept as-is, so a missing last name yields a trailing space.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}
