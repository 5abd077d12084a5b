package consumer

import (
	"encoding/json"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/bookvista/bookvista-api/cache"
	"github.com/bookvista/bookvista-api/db"
)

// CatalogEntry is one service in the public catalog, annotated with its
// aggregated rating stats.
type CatalogEntry struct {
	ID           uint    `json:"id"`
	ServiceName  string  `json:"service_name"`
	Price        float64 `json:"price"`
	AdminID      uint    `json:"admin_id"`
	ProviderName string  `json:"provider_name"`
	City         string  `json:"city"`
	MapURL       string  `json:"map_url"`
	AvgRating    float64 `json:"avg_rating"`
	RatingCount  int64   `json:"rating_count"`
}

// ListServices returns the city-filterable catalog. An empty city means all
// cities. Services with no ratings report avg_rating 0 and rating_count 0.
func ListServices(c *fiber.Ctx) error {
	city := c.Query("city")

	if payload, ok := cache.GetCatalog(city); ok {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(payload)
	}

	entries, err := FetchCatalog(city)
	if err != nil {
		log.Printf("Error fetching catalog: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Fetch services failed",
		})
	}

	if payload, err := json.Marshal(entries); err == nil {
		cache.SetCatalog(city, payload)
	}

	return c.JSON(entries)
}

// FetchCatalog runs the catalog aggregation against the store.
func FetchCatalog(city string) ([]CatalogEntry, error) {
	var entries []CatalogEntry
	err := db.DB.Raw(`
		SELECT
			s.id, s.service_name, s.price, s.admin_id,
			p.provider_name, u.city, p.map_url,
			COALESCE(AVG(r.rating), 0) AS avg_rating,
			COUNT(r.id) AS rating_count
		FROM services s
		JOIN users u ON u.id = s.admin_id
		JOIN provider_profiles p ON p.user_id = u.id
		LEFT JOIN bookings b ON b.service_id = s.id AND b.deleted_at IS NULL
		LEFT JOIN ratings r ON r.booking_id = b.id AND r.deleted_at IS NULL
		WHERE s.deleted_at IS NULL AND (? = '' OR u.city = ?)
		GROUP BY s.id, s.service_name, s.price, s.admin_id, p.provider_name, u.city, p.map_url
		ORDER BY s.id DESC
	`, city, city).Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []CatalogEntry{}
	}
	return entries, nil
}
