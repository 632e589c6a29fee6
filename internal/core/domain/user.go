package domain

import "time"

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// User models a registered shop account. Email is the identity key and is
// never changed after registration.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Claims is the identity carried by an access token.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	Name  string `json:"name,omitempty"`
}

// ClaimsFor derives token claims from the user record as it is now.
func ClaimsFor(u *User) Claims {
	return Claims{Email: u.Email, Role: u.Role, Name: u.Name}
}
