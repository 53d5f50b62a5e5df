package domain

import "time"

// User is an account holder. Role and OrgID stay empty until the user
// founds or joins an organization; the two fields always change
// together.
type User struct {
	ID           string
	Name         string
	Email        string // globally unique, compared case-insensitively
	PasswordHash string // argon2id encoded
	Role         Role
	OrgID        string // empty while the user has no organization
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasOrg reports whether the user belongs to an organization.
func (u User) HasOrg() bool { return u.OrgID != "" }
