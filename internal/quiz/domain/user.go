package domain

import "time"

// RoleAdmin and RoleUser are the role names seeded by the initial migration.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string // argon2id encoded
	Enabled      bool
	Roles        []string // role names, unordered set
	Points       int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasRole reports whether the user holds the named role.
func (u User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r == name {
			return true
		}
	}
	return false
}

type Role struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
