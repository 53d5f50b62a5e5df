package domain

import "time"

// Organization is an isolated tenant. Membership is recorded on the
// user rows (OrgID), which keeps the member-set and the user's tenant
// reference consistent by construction.
type Organization struct {
	ID        string
	Name      string // globally unique
	CreatedAt time.Time
	UpdatedAt time.Time
}
