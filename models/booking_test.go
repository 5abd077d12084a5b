package models

import (
	"encoding/json"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, func()) {
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

	closer := func() {
		sqlDB.Close()
	}
	return gdb, mock, closer
}

func slotRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "service_id", "slot_date", "start_time", "end_time", "is_booked"}).
		AddRow(7, 3, "2025-06-01", "10:00", "11:00", false)
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to BookingStatus
		want     bool
	}{
		{StatusPending, StatusCompleted, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusPending, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCompleted, StatusPending, false},
		{StatusCancelled, StatusCompleted, false},
		{StatusCancelled, StatusPending, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestUpdateStatusRejectsTerminalStates(t *testing.T) {
	b := &Booking{Status: StatusCompleted}
	err := b.UpdateStatus(nil, StatusCancelled)
	require.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, StatusCompleted, b.Status)

	b = &Booking{Status: StatusCancelled}
	err = b.UpdateStatus(nil, StatusCompleted)
	require.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, StatusCancelled, b.Status)
}

func TestBookingJSONOmitsEmptyAssociations(t *testing.T) {
	b := Booking{
		Model:     gorm.Model{ID: 42},
		UserID:    5,
		ServiceID: 3,
		TimeSlot:  "10:00-11:00",
		Status:    StatusPending,
	}

	data, err := json.Marshal(b)
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &m))

	_, hasService := m["service"]
	assert.False(t, hasService, "zero service association must not serialize")
	_, hasUser := m["user"]
	assert.False(t, hasUser, "zero user association must not serialize")
	assert.Equal(t, float64(3), m["service_id"])
}

func TestUpdateStatusCompletesPendingBooking(t *testing.T) {
	gdb, mock, close := setupMockDB(t)
	defer close()

	mock.ExpectExec(`UPDATE "bookings" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	b := &Booking{Model: gorm.Model{ID: 12}, Status: StatusPending}
	err := b.UpdateStatus(gdb, StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, b.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReserveSlotClaimsOpenSlot(t *testing.T) {
	gdb, mock, close := setupMockDB(t)
	defer close()

	mock.ExpectQuery(`SELECT \* FROM "time_slots"`).
		WillReturnRows(slotRows())
	mock.ExpectExec(`UPDATE "time_slots" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	booking := &Booking{
		UserID:           5,
		ServiceID:        3,
		BookingDate:      "2025-06-01",
		AppointmentEmail: "walkin@example.com",
		BookedBy:         5,
	}
	err := ReserveSlot(gdb, 7, booking)
	require.NoError(t, err)
	assert.Equal(t, "10:00-11:00", booking.TimeSlot)
	assert.Equal(t, StatusPending, booking.Status)
	assert.False(t, booking.IsRated)
	assert.NotEmpty(t, booking.Reference)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReserveSlotLosesRace(t *testing.T) {
	gdb, mock, close := setupMockDB(t)
	defer close()

	// The slot read still sees is_booked=false, but the conditional update
	// affects zero rows because a concurrent claim landed first.
	mock.ExpectQuery(`SELECT \* FROM "time_slots"`).
		WillReturnRows(slotRows())
	mock.ExpectExec(`UPDATE "time_slots" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	booking := &Booking{ServiceID: 3, BookedBy: 5}
	err := ReserveSlot(gdb, 7, booking)
	require.ErrorIs(t, err, ErrSlotUnavailable)
	// No booking row may be created for the loser
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReserveSlotMissingSlot(t *testing.T) {
	gdb, mock, close := setupMockDB(t)
	defer close()

	mock.ExpectQuery(`SELECT \* FROM "time_slots"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	booking := &Booking{ServiceID: 3, BookedBy: 5}
	err := ReserveSlot(gdb, 99, booking)
	require.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestAttachRatingValidatesRange(t *testing.T) {
	b := &Booking{Model: gorm.Model{ID: 12}, Status: StatusCompleted}

	_, err := b.AttachRating(nil, 0, "too low")
	require.ErrorIs(t, err, ErrInvalidRating)

	_, err = b.AttachRating(nil, 6, "too high")
	require.ErrorIs(t, err, ErrInvalidRating)
}

func TestAttachRatingRequiresCompletedBooking(t *testing.T) {
	b := &Booking{Model: gorm.Model{ID: 12}, Status: StatusPending}
	_, err := b.AttachRating(nil, 5, "great")
	require.ErrorIs(t, err, ErrNotCompleted)

	b.Status = StatusCancelled
	_, err = b.AttachRating(nil, 5, "great")
	require.ErrorIs(t, err, ErrNotCompleted)
}

func TestAttachRatingIsOneShot(t *testing.T) {
	gdb, mock, close := setupMockDB(t)
	defer close()

	// The is_rated flip already happened, so the conditional update matches
	// nothing and no rating row is inserted.
	mock.ExpectExec(`UPDATE "bookings" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	b := &Booking{Model: gorm.Model{ID: 12}, Status: StatusCompleted, IsRated: true}
	_, err := b.AttachRating(gdb, 4, "again")
	require.ErrorIs(t, err, ErrAlreadyRated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttachRatingCreatesRating(t *testing.T) {
	gdb, mock, close := setupMockDB(t)
	defer close()

	mock.ExpectExec(`UPDATE "bookings" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "ratings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))

	b := &Booking{Model: gorm.Model{ID: 12}, Status: StatusCompleted}
	rating, err := b.AttachRating(gdb, 4, "solid work")
	require.NoError(t, err)
	assert.Equal(t, uint(12), rating.BookingID)
	assert.Equal(t, 4, rating.Rating)
	assert.True(t, b.IsRated)
	assert.NoError(t, mock.ExpectationsWereMet())
}
