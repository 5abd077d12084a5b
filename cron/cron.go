package cron

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/bookvista/bookvista-api/db"
	"github.com/bookvista/bookvista-api/models"
)

// StartCronJobs initializes and starts the scheduler for the slot janitor
func StartCronJobs() {
	c := cron.New()
	// Nightly cleanup of stale open slots
	_, err := c.AddFunc("0 3 * * *", PurgeExpiredSlots)
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started for slot cleanup")
}

// PurgeExpiredSlots soft-deletes never-booked slots whose date has passed so
// they stop showing up in listings. Booked slots are never touched; a
// claimed slot stays claimed forever.
func PurgeExpiredSlots() {
	today := time.Now().Format("2006-01-02")

	res := db.DB.
		Where("is_booked = ? AND slot_date < ?", false, today).
		Delete(&models.TimeSlot{})
	if res.Error != nil {
		log.Printf("Error purging expired slots: %v", res.Error)
		return
	}

	if res.RowsAffected > 0 {
		log.Printf("Purged %d expired open slots", res.RowsAffected)
	}
}
