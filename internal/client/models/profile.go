// Package models defines the client-side data models of the HR console.
package models

import "github.com/dmitrijs2005/hrconsole/internal/common"

// Role is the single effective role the console routes on.
type Role string

const (
	RoleNone     Role = ""
	RoleEmployee Role = common.RoleEmployee
	RoleHR       Role = common.RoleHR
)

// Profile is the identity returned by GET /Auth/me. It is never persisted;
// the console re-fetches it whenever the session changes.
type Profile struct {
	// Sub is the subject (user id) of the access token.
	Sub string `json:"sub"`

	// UserName is the login name, usually the e-mail address.
	UserName string `json:"userName"`

	// FullName is the display name.
	FullName string `json:"fullName"`

	// BusinessEntityID links the user to an employee record, if any.
	BusinessEntityID *int `json:"businessEntityID"`

	// Roles holds the raw role labels as sent by the server.
	Roles []string `json:"roles"`
}

// Role returns the effective role. HR wins over Employee whenever both are
// present, regardless of order. Unknown labels are ignored.
func (p *Profile) Role() Role {
	if p == nil {
		return RoleNone
	}

	effective := RoleNone
	for _, r := range p.Roles {
		switch Role(r) {
		case RoleHR:
			return RoleHR
		case RoleEmployee:
			effective = RoleEmployee
		}
	}
	return effective
}

// HasAnyRole reports whether the profile carries at least one of roles.
// A nil profile has none.
func (p *Profile) HasAnyRole(roles ...Role) bool {
	if p == nil {
		return false
	}
	for _, have := range p.Roles {
		for _, want := range roles {
			if Role(have) == want {
				return true
			}
		}
	}
	return false
}

// DisplayName prefers the full name and falls back to the user name.
func (p *Profile) DisplayName() string {
	if p == nil {
		return ""
	}
	if p.FullName != "" {
		return p.FullName
	}
	return p.UserName
}
