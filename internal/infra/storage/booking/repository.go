package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"event-slot-service/internal/domain"
	"event-slot-service/pkg/dbmetrics"
	"event-slot-service/pkg/psqlbuilder"
	"event-slot-service/pkg/types"
)

// uniqueViolation код ошибки postgres при нарушении UNIQUE constraint
const uniqueViolation = "23505"

var bookingColumns = []string{
	"id",
	"event_id",
	"device_id",
	"booking_date",
	"slot_time",
	"name",
	"email",
	"phone",
	"note",
	"confirmation_code",
	"created_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование (одну ячейку event/device/date/slot).
// Если в контексте передана активная транзакция, использует её.
//
// Уникальный индекс (event_id, device_id, booking_date, slot_time) —
// последний рубеж против гонки двух посетителей: нарушение мапится в
// ErrSlotCellTaken, даже если оба прошли валидацию.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"event_id",
			"device_id",
			"booking_date",
			"slot_time",
			"name",
			"email",
			"phone",
			"note",
			"confirmation_code",
		).
		Values(
			booking.EventID,
			booking.DeviceID,
			booking.Date,
			booking.SlotTime,
			booking.Name,
			booking.Email,
			booking.Phone,
			booking.Note,
			booking.ConfirmationCode,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return nil, ErrSlotCellTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanBooking(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// GetByEventWithFilter получает бронирования события с фильтрацией по
// устройству, дате и слоту. Используется проектором доступности (один
// запрос на всё событие, не по слоту) и дашбордом организатора.
func (r *Repository) GetByEventWithFilter(ctx context.Context, filter domain.EventBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"event_id": filter.EventID})

	if filter.DeviceID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"device_id": *filter.DeviceID})
	}
	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booking_date": *filter.Date})
	}
	if filter.SlotTime != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"slot_time": *filter.SlotTime})
	}

	selectBuilder = selectBuilder.OrderBy("booking_date ASC", "slot_time ASC", "device_id ASC")

	// Внутри транзакции блокируем выбранные строки до конца коммита
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByEventWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByEventWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// FindByCell ищет бронирование, занимающее точную ячейку
// (event, device, date, slot). Возвращает ErrBookingNotFound, если ячейка свободна.
func (r *Repository) FindByCell(ctx context.Context, eventID, deviceID int64, date types.DateString, slot types.TimeString) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{
			"event_id":     eventID,
			"device_id":    deviceID,
			"booking_date": date,
			"slot_time":    slot,
		})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindByCell - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanBooking(executor.QueryRowContext(ctx, query, args...), "FindByCell")
}

// FindByContactAtMoment ищет существующее бронирование события на дату+слот
// с совпадающим нормализованным email или телефоном — проверка
// "один человек — один момент". Пустой телефон не сравнивается.
func (r *Repository) FindByContactAtMoment(ctx context.Context, eventID int64, date types.DateString, slot types.TimeString, email, phone string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	contactMatch := squirrel.Or{squirrel.Eq{"email": email}}
	if phone != "" {
		contactMatch = append(contactMatch, squirrel.Eq{"phone": phone})
	}

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{
			"event_id":     eventID,
			"booking_date": date,
			"slot_time":    slot,
		}).
		Where(contactMatch).
		Limit(1)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindByContactAtMoment - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanBooking(executor.QueryRowContext(ctx, query, args...), "FindByContactAtMoment")
}

// GetByDate получает все бронирования на календарную дату по всем событиям.
// Используется ежедневным дайджестом организатора.
func (r *Repository) GetByDate(ctx context.Context, date types.DateString) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"booking_date": date}).
		OrderBy("event_id ASC", "slot_time ASC", "device_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// CountByDeviceFrom считает бронирования устройства начиная с даты from.
// Используется для запрета удаления устройства с будущими бронированиями.
func (r *Repository) CountByDeviceFrom(ctx context.Context, deviceID int64, from types.DateString) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"device_id": deviceID}).
		Where(squirrel.GtOrEq{"booking_date": from}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountByDeviceFrom - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByDeviceFrom - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// Delete удаляет бронирование (отмена организатором).
// Удаление физическое: ячейка (device, date, slot) сразу освобождается.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// DeleteByEventID удаляет все бронирования события.
// Каскад при удалении события выполняется явно вызывающим сервисом,
// хранилище само ничего не каскадирует.
func (r *Repository) DeleteByEventID(ctx context.Context, eventID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"event_id": eventID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByEventID - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByEventID - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByEventID - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// scanBooking сканирует одну строку результата
func (r *Repository) scanBooking(row *sql.Row, op string) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.EventID,
		&booking.DeviceID,
		&booking.Date,
		&booking.SlotTime,
		&booking.Name,
		&booking.Email,
		&booking.Phone,
		&booking.Note,
		&booking.ConfirmationCode,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan booking: %v", ErrScanRow, op, err)
	}

	booking.CreatedAt = createdAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var createdAt sql.NullTime

		err := rows.Scan(
			&booking.ID,
			&booking.EventID,
			&booking.DeviceID,
			&booking.Date,
			&booking.SlotTime,
			&booking.Name,
			&booking.Email,
			&booking.Phone,
			&booking.Note,
			&booking.ConfirmationCode,
			&createdAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		booking.CreatedAt = createdAt.Time

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
