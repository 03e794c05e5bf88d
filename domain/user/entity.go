// Package user provides the domain entity for application users.
package user

import (
	"strings"

	"gorm.io/gorm"
)

// AdminRole is the role name that grants access to mutating routes.
const AdminRole = "ADMIN"

// User represents a row in the usuario table. Users are read-only from the
// API's perspective; rows are provisioned by seeding or out of band.
type User struct {
	ID    uint   `gorm:"primarykey" json:"id"`
	Login string `gorm:"size:100;uniqueIndex;not null" json:"login"`
	Senha string `gorm:"size:100;not null" json:"-"`
	Nome  string `gorm:"size:255" json:"nome"`
	Roles string `gorm:"size:255" json:"roles"`

	// roleSet is the Roles column parsed once on load. Only ';' is a
	// recognized delimiter.
	roleSet []string
}

// TableName returns the table name for the User entity.
func (User) TableName() string {
	return "usuario"
}

// AfterFind parses the delimited roles column into the role set so that
// authorization checks do not re-split the string per request.
func (u *User) AfterFind(_ *gorm.DB) error {
	u.roleSet = parseRoles(u.Roles)
	return nil
}

// RoleSet returns the parsed role names.
func (u *User) RoleSet() []string {
	if u.roleSet == nil {
		u.roleSet = parseRoles(u.Roles)
	}
	return u.roleSet
}

// HasRole reports whether the user carries the exact role name.
func (u *User) HasRole(role string) bool {
	for _, r := range u.RoleSet() {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the user carries the ADMIN role.
func (u *User) IsAdmin() bool {
	return u.HasRole(AdminRole)
}

func parseRoles(roles string) []string {
	if roles == "" {
		return []string{}
	}
	parts := strings.Split(roles, ";")
	set := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			set = append(set, p)
		}
	}
	return set
}
