package models

import (
	"gorm.io/gorm"
)

// Rating is logically 1:1 with a booking, guarded by Booking.IsRated.
type Rating struct {
	gorm.Model
	BookingID uint     `json:"booking_id"`
	Booking   *Booking `json:"booking,omitempty" gorm:"foreignKey:BookingID"`
	Rating    int     `json:"rating" gorm:"not null"`
	Comment   string  `json:"comment"`
}

// BeforeCreate hook to validate rating range
func (r *Rating) BeforeCreate(tx *gorm.DB) error {
	if r.Rating < 1 || r.Rating > 5 {
		return ErrInvalidRating
	}
	return nil
}
