package domain

import "time"

// Invite is a one-time code scoped to an organization and a target
// role. Only the SHA-256 fingerprint of the code is stored; the invite
// row is deleted at the moment it is redeemed, so a consumed code can
// never be replayed.
type Invite struct {
	ID        string
	CodeHash  string
	OrgID     string
	Role      Role   // manager or member, never admin
	Email     string // optional target address
	CreatedBy string
	CreatedAt time.Time
}
