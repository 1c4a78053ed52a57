// Package models holds the server-side records of the HR API and the
// request bodies its handlers decode.
package models

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/hrconsole/internal/common"
)

// User is an API account. Roles are stored as a comma-separated list.
type User struct {
	ID               string
	Email            string
	UserName         string
	FullName         string
	PasswordHash     []byte
	BusinessEntityID *int
	Roles            []string
	CreatedAt        time.Time
}

func (u *User) HasRole(role string) bool {
	return u != nil && slices.Contains(u.Roles, role)
}

// Profile is what GET /Auth/me returns.
func (u *User) Profile() Profile {
	roles := u.Roles
	if roles == nil {
		roles = []string{}
	}
	return Profile{
		Sub:              u.ID,
		UserName:         u.UserName,
		FullName:         u.FullName,
		BusinessEntityID: u.BusinessEntityID,
		Roles:            roles,
	}
}

type Profile struct {
	Sub              string   `json:"sub"`
	UserName         string   `json:"userName"`
	FullName         string   `json:"fullName"`
	BusinessEntityID *int     `json:"businessEntityID"`
	Roles            []string `json:"roles"`
}

// JoinRoles and SplitRoles convert between the role list and its column form.
func JoinRoles(roles []string) string {
	return strings.Join(roles, ",")
}

func SplitRoles(s string) []string {
	var out []string
	for _, r := range strings.Split(s, ",") {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}

// Credentials is the body of POST /Auth/login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the body of POST /Auth/register.
type Registration struct {
	Email            string `json:"email"`
	Password         string `json:"password"`
	UserName         string `json:"userName"`
	FullName         string `json:"fullName"`
	BusinessEntityID *int   `json:"businessEntityID"`
}

const MinPasswordLen = 6

// NormalizeEmail lower-cases and trims an email so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *Registration) Normalize() {
	r.Email = NormalizeEmail(r.Email)
	r.UserName = strings.TrimSpace(r.UserName)
	r.FullName = strings.TrimSpace(r.FullName)
	if r.UserName == "" {
		r.UserName = r.Email
	}
}

func (r Registration) Validate() error {
	if r.Email == "" || !strings.Contains(r.Email, "@") {
		return validationError("a valid email is required")
	}
	if len(r.Password) < MinPasswordLen {
		return validationError(fmt.Sprintf("password must have at least %d characters", MinPasswordLen))
	}
	return nil
}

// DefaultRoles is granted to self-registered accounts.
func DefaultRoles() []string {
	return []string{common.RoleEmployee}
}
