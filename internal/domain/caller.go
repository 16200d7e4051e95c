package domain

// Role of the authenticated caller
type Role string

const (
	RoleAdmin Role = "admin"
	RoleClub  Role = "club"
)

// Caller is the identity resolved by the auth layer before the core runs
type Caller struct {
	UserID int64
	Role   Role
	ClubID *int64 // set for club representatives
}

// IsAdmin returns true for portal administrators
func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// CanActForClub returns true if the caller may submit or read data on behalf of the club
func (c Caller) CanActForClub(clubID int64) bool {
	if c.IsAdmin() {
		return true
	}
	return c.Role == RoleClub && c.ClubID != nil && *c.ClubID == clubID
}
