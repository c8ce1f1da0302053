package domain

import (
	"regexp"
	"time"
)

// Role tags an account with its kind. The role is set at account creation
// and drives permission checks; it is never inferred from attribute shape.
type Role string

// List of possible account roles
const (
	RoleClient     Role = "client"
	RoleRestaurant Role = "restaurant"
	RoleCourier    Role = "courier"
)

var allowedRoles = [...]Role{RoleClient, RoleRestaurant, RoleCourier}

// Valid checks if the Role is valid.
func (r Role) Valid() bool {
	for _, v := range allowedRoles {
		if r == v {
			return true
		}
	}
	return false
}

// Account is an identity record for a client, restaurant or courier.
// Role-specific attributes are nil for the roles they don't apply to.
type Account struct {
	ID           int64
	Role         Role
	Email        string
	PasswordHash string
	Name         string
	Phone        string
	Blocked      bool
	CreatedAt    time.Time

	// client
	Address *string

	// restaurant
	City        *string
	Street      *string
	Building    *string
	Description *string

	// courier
	Available *bool
}

// PartialAccountUpdate carries optional fields to update an account.
// A nil field means "do not change" that attribute.
type PartialAccountUpdate struct {
	ID          int64
	Name        *string
	Phone       *string
	Address     *string
	City        *string
	Street      *string
	Building    *string
	Description *string
}

var reEmail = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateEmail validates the email format.
func ValidateEmail(s string) bool {
	return reEmail.MatchString(s)
}
