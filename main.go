package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"

	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/bookvista/bookvista-api/cache"
	"github.com/bookvista/bookvista-api/cron"
	"github.com/bookvista/bookvista-api/db"
	"github.com/bookvista/bookvista-api/routes"
)

func main() {
	app := fiber.New()
	db.Init()
	cache.Init()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("BookVista API")
	})
	routes.SetupAuthRoutes(app)
	routes.SetupAdminRoutes(app)
	routes.SetupConsumerRoutes(app)

	cron.StartCronJobs()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	log.Fatal(app.Listen(":" + port))
}
