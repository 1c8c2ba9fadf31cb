package booking

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"event-slot-service/internal/domain"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db), mock
}

func testBooking() *domain.Booking {
	return &domain.Booking{
		EventID:          1,
		DeviceID:         2,
		Date:             "2026-09-10",
		SlotTime:         "10:00",
		Name:             "Иван Иванов",
		Email:            "ivan@example.com",
		Phone:            "+79990001122",
		ConfirmationCode: uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8"),
	}
}

const selectColumns = "id, event_id, device_id, booking_date, slot_time, name, email, phone, note, confirmation_code, created_at"

func testTime() time.Time {
	return time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newMock(t)

	rows := sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(42), testTime())
	mock.ExpectQuery(regexp.QuoteMeta(
		"INSERT INTO bookings (event_id,device_id,booking_date,slot_time,name,email,phone,note,confirmation_code) "+
			"VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9) RETURNING id, created_at",
	)).WillReturnRows(rows)

	created, err := repo.Create(context.Background(), testBooking())

	require.NoError(t, err)
	assert.Equal(t, int64(42), created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_UniqueViolation(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO bookings")).
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.Create(context.Background(), testBooking())

	assert.ErrorIs(t, err, ErrSlotCellTaken)
}

func TestRepository_FindByCell_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT " + selectColumns + " FROM bookings " +
			"WHERE booking_date = $1 AND device_id = $2 AND event_id = $3 AND slot_time = $4",
	)).WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByCell(context.Background(), 1, 2, "2026-09-10", "10:00")

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRepository_FindByCell_Found(t *testing.T) {
	repo, mock := newMock(t)

	rows := sqlmock.NewRows([]string{
		"id", "event_id", "device_id", "booking_date", "slot_time",
		"name", "email", "phone", "note", "confirmation_code", "created_at",
	}).AddRow(
		int64(7), int64(1), int64(2), "2026-09-10", "10:00",
		"Иван Иванов", "ivan@example.com", "+79990001122", nil,
		"6ba7b810-9dad-11d1-80b4-00c04fd430c8", testTime(),
	)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT "+selectColumns+" FROM bookings")).
		WillReturnRows(rows)

	booking, err := repo.FindByCell(context.Background(), 1, 2, "2026-09-10", "10:00")

	require.NoError(t, err)
	assert.Equal(t, int64(7), booking.ID)
	assert.Equal(t, "ivan@example.com", booking.Email)
}

func TestRepository_Delete_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM bookings WHERE id = $1")).
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 99)

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRepository_Delete(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM bookings WHERE id = $1")).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(context.Background(), 7)

	assert.NoError(t, err)
}

func TestRepository_DeleteByEventID(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM bookings WHERE event_id = $1")).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 3))

	deleted, err := repo.DeleteByEventID(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
}
