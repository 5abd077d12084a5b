package admin

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/bookvista/bookvista-api/db"
)

var errDriverFailure = errors.New("connection reset by peer")

func setupMockDB(t *testing.T) (sqlmock.Sqlmock, func()) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
	})
	require.NoError(t, err)

	prev := db.DB
	db.DB = gdb
	closer := func() {
		db.DB = prev
		sqlDB.Close()
	}
	return mock, closer
}

// testApp mounts the handler behind a stub that injects the authenticated
// admin id the way the JWT middleware does.
func testApp(adminID uint) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", adminID)
		c.Locals("role", "admin")
		return c.Next()
	})
	app.Put("/api/bookings/update-status/:id", UpdateBookingStatus)
	app.Get("/api/admin/bookings", GetBookings)
	app.Get("/api/admin/dashboard", GetDashboardOverview)
	return app
}

func putStatus(t *testing.T, app *fiber.App, id string, status string) int {
	t.Helper()
	body, _ := json.Marshal(fiber.Map{"status": status})
	req := httptest.NewRequest("PUT", "/api/bookings/update-status/"+id, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func expectBookingWithService(mock sqlmock.Sqlmock, bookingID, serviceID, adminID uint, status string) {
	mock.ExpectQuery(`SELECT \* FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "service_id", "status", "is_rated"}).
			AddRow(bookingID, serviceID, status, false))
	mock.ExpectQuery(`SELECT \* FROM "services"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "admin_id", "service_name", "price"}).
			AddRow(serviceID, adminID, "Haircut", 300.0))
}

func TestUpdateBookingStatusCompletesOwnBooking(t *testing.T) {
	mock, close := setupMockDB(t)
	defer close()

	expectBookingWithService(mock, 12, 3, 1, "pending")
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "bookings" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	status := putStatus(t, testApp(1), "12", "completed")
	assert.Equal(t, fiber.StatusOK, status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateBookingStatusRejectsForeignBooking(t *testing.T) {
	mock, close := setupMockDB(t)
	defer close()

	// The booking's service belongs to admin 2, the caller is admin 1
	expectBookingWithService(mock, 12, 3, 2, "pending")

	status := putStatus(t, testApp(1), "12", "completed")
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateBookingStatusRejectsTerminalBooking(t *testing.T) {
	mock, close := setupMockDB(t)
	defer close()

	expectBookingWithService(mock, 12, 3, 1, "completed")
	mock.ExpectBegin()
	mock.ExpectRollback()

	status := putStatus(t, testApp(1), "12", "cancelled")
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestUpdateBookingStatusStoreFailureStaysGeneric(t *testing.T) {
	mock, close := setupMockDB(t)
	defer close()

	expectBookingWithService(mock, 12, 3, 1, "pending")
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "bookings" SET`).
		WillReturnError(errDriverFailure)
	mock.ExpectRollback()

	body, _ := json.Marshal(fiber.Map{"status": "completed"})
	req := httptest.NewRequest("PUT", "/api/bookings/update-status/12", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := testApp(1).Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	// The driver error must not leak to the caller
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), errDriverFailure.Error())
	assert.Contains(t, string(raw), "Update failed")
}

func TestGetBookingsReturnsJoinedRows(t *testing.T) {
	mock, close := setupMockDB(t)
	defer close()

	rows := sqlmock.NewRows([]string{
		"booking_id", "reference", "booking_date", "time_slot", "status", "is_rated",
		"client_name", "client_email", "service_name", "price", "rating", "comment",
	}).
		AddRow(12, "ref-12", "2025-06-01", "10:00-11:00", "completed", true,
			"Asha", "asha@example.com", "Haircut", 300.0, 4, "solid").
		AddRow(11, "ref-11", "2025-06-01", "11:00-12:00", "pending", false,
			"Ravi", "ravi@example.com", "Haircut", 300.0, nil, nil)

	mock.ExpectQuery("SELECT").WithArgs(uint(1)).WillReturnRows(rows)

	req := httptest.NewRequest("GET", "/api/admin/bookings", nil)
	resp, err := testApp(1).Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out []AdminBookingRow
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out, 2)

	assert.Equal(t, uint(12), out[0].BookingID)
	require.NotNil(t, out[0].Rating)
	assert.Equal(t, 4, *out[0].Rating)

	// Unrated booking carries null rating, not zero
	assert.Nil(t, out[1].Rating)
	assert.Nil(t, out[1].Comment)
}
