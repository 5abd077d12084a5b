package models

import (
	"gorm.io/gorm"
)

// ProviderProfile holds the provider-only fields of an admin account.
// Client and guest users never get one, so those fields cannot leak onto
// them as nulls.
type ProviderProfile struct {
	gorm.Model
	UserID       uint   `json:"user_id"`
	ProviderName string `json:"provider_name"`
	MapURL       string `json:"map_url"`
}
