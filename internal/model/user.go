package model

import "strings"

type Role string

const (
	RoleMember Role = "MEMBER"
	RoleAdmin  Role = "ADMIN"
)

// ParseRole maps wire roles onto the two known roles. Anything that is not
// ADMIN is a member.
func ParseRole(s string) Role {
	if strings.EqualFold(strings.TrimSpace(s), string(RoleAdmin)) {
		return RoleAdmin
	}
	return RoleMember
}

type User struct {
	ID       int64
	Username string
	Email    string
	Role     Role
}

func (u User) Identity() Identity {
	return Identity{ID: u.ID, DisplayName: u.Username, Role: u.Role}
}

// Identity is the resolved requester. A nil *Identity is the anonymous
// requester.
type Identity struct {
	ID          int64
	DisplayName string
	Role        Role
}

func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}

func (i *Identity) Is(userID int64) bool {
	return i != nil && i.ID == userID
}
