package db

import (
	"fmt"
	"log"

	"github.com/bookvista/bookvista-api/models"
)

func Migrate() {
	// Initialize DB connection
	Init()

	// Run AutoMigrate only when explicitly called
	err := DB.AutoMigrate(
		&models.User{},
		&models.ProviderProfile{},
		&models.Service{},
		&models.TimeSlot{},
		&models.Booking{},
		&models.Rating{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	fmt.Println("✅ Migrations applied successfully!")
}
