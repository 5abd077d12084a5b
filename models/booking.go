package models

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

var (
	ErrSlotUnavailable   = errors.New("slot already booked")
	ErrAlreadyRated      = errors.New("booking already rated")
	ErrNotCompleted      = errors.New("booking is not completed")
	ErrInvalidRating     = errors.New("rating must be between 1 and 5")
	ErrInvalidTransition = errors.New("invalid status transition")
)

type Booking struct {
	gorm.Model
	Reference        string        `json:"reference" gorm:"uniqueIndex"`
	UserID           uint          `json:"user_id"`
	User             *User         `json:"user,omitempty" gorm:"foreignKey:UserID"`
	ServiceID        uint          `json:"service_id"`
	Service          *Service      `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
	BookingDate      string        `json:"booking_date"` // Format "YYYY-MM-DD"
	TimeSlot         string        `json:"time_slot"`    // Snapshot "HH:MM-HH:MM", not a live reference
	Status           BookingStatus `json:"status"`
	IsRated          bool          `json:"is_rated" gorm:"default:false"`
	AppointmentEmail string        `json:"appointment_email"`
	BookedBy         uint          `json:"booked_by"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.Status == "" {
		b.Status = StatusPending
	}
	if b.Reference == "" {
		b.Reference = uuid.NewString()
	}
	return nil
}

// CanTransition reports whether a status change is sanctioned. Pending may
// move to completed or cancelled; both of those are terminal.
func CanTransition(from, to BookingStatus) bool {
	if from != StatusPending {
		return false
	}
	return to == StatusCompleted || to == StatusCancelled
}

// UpdateStatus applies the booking state machine. The claimed slot is never
// released, not even on cancellation.
func (b *Booking) UpdateStatus(tx *gorm.DB, newStatus BookingStatus) error {
	if !CanTransition(b.Status, newStatus) {
		return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, b.Status, newStatus)
	}

	b.Status = newStatus
	return tx.Model(b).Update("status", newStatus).Error
}

// ReserveSlot claims slotID for booking inside the caller's transaction.
// The claim is a conditional update; if another booking got there first the
// affected-row count is zero and no booking row is created.
func ReserveSlot(tx *gorm.DB, slotID uint, booking *Booking) error {
	var slot TimeSlot
	if err := tx.First(&slot, slotID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSlotUnavailable
		}
		return err
	}

	claim := tx.Model(&TimeSlot{}).
		Where("id = ? AND is_booked = ?", slotID, false).
		Update("is_booked", true)
	if claim.Error != nil {
		return claim.Error
	}
	if claim.RowsAffected == 0 {
		return ErrSlotUnavailable
	}

	booking.TimeSlot = slot.Label()
	booking.Status = StatusPending
	booking.IsRated = false
	return tx.Create(booking).Error
}

// AttachRating creates the one-shot rating for a completed booking. The
// is_rated flip is a conditional update so two racing submissions cannot
// both create a rating row.
func (b *Booking) AttachRating(tx *gorm.DB, value int, comment string) (*Rating, error) {
	if value < 1 || value > 5 {
		return nil, ErrInvalidRating
	}
	if b.Status != StatusCompleted {
		return nil, ErrNotCompleted
	}

	flip := tx.Model(&Booking{}).
		Where("id = ? AND is_rated = ?", b.ID, false).
		Update("is_rated", true)
	if flip.Error != nil {
		return nil, flip.Error
	}
	if flip.RowsAffected == 0 {
		return nil, ErrAlreadyRated
	}

	rating := Rating{
		BookingID: b.ID,
		Rating:    value,
		Comment:   comment,
	}
	if err := tx.Create(&rating).Error; err != nil {
		return nil, err
	}

	b.IsRated = true
	return &rating, nil
}
