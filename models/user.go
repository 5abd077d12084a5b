package models

import (
	"time"
)

type UserRole string

const (
	RoleClient UserRole = "client"
	RoleAdmin  UserRole = "admin"
)

// User is the shared account record. Guest users created from a booking
// email carry no password and no role and cannot log in.
type User struct {
	ID              uint             `json:"id" gorm:"primaryKey"`
	Name            string           `json:"name"`
	Email           string           `json:"email" gorm:"unique"`
	Phone           string           `json:"phone,omitempty"`
	City            string           `json:"city,omitempty"`
	Password        string           `json:"password,omitempty"`
	Role            UserRole         `json:"role,omitempty"`
	ProviderProfile *ProviderProfile `json:"provider_profile,omitempty" gorm:"foreignKey:UserID"`
	Services        []Service        `json:"services,omitempty" gorm:"foreignKey:AdminID"`
	Bookings        []Booking        `json:"bookings,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// IsGuest reports whether the user was created implicitly from a booking
// email and has no credentials.
func (u *User) IsGuest() bool {
	return u.Role == "" && u.Password == ""
}
