package models

import "fmt"

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
	RoleGuest UserRole = "guest"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleGuest:
		return true
	}
	return false
}

// UserProfile is the caller-owned profile record. Absence is a valid state
// and drives the profile setup flow.
type UserProfile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (p UserProfile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if p.Email == "" {
		return fmt.Errorf("email is required")
	}
	return nil
}
