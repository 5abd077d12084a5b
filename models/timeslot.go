package models

import (
	"gorm.io/gorm"
)

// TimeSlot is a fixed interval offered by a service, claimable by at most
// one booking. Once IsBooked flips true it never reverts; a cancelled
// booking does not release its slot.
type TimeSlot struct {
	gorm.Model
	ServiceID uint     `json:"service_id"`
	Service   *Service `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
	SlotDate  string  `json:"slot_date"`  // Format "YYYY-MM-DD"
	StartTime string  `json:"start_time"` // Format "HH:MM" in 24h
	EndTime   string  `json:"end_time"`   // Format "HH:MM" in 24h
	IsBooked  bool    `json:"is_booked" gorm:"default:false"`
}

// Label renders the interval the way bookings snapshot it.
func (t *TimeSlot) Label() string {
	return t.StartTime + "-" + t.EndTime
}
