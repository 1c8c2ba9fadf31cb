package event

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"event-slot-service/internal/domain"
	"event-slot-service/pkg/dbmetrics"
	"event-slot-service/pkg/psqlbuilder"
	"event-slot-service/pkg/types"
)

var eventColumns = []string{
	"id",
	"title",
	"description",
	"event_dates",
	"slot_duration_minutes",
	"available_slots",
	"enabled",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с событиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория событий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает событие вместе с привязкой устройств.
// Сетка слотов (available_slots) уже выведена сервисом и сохраняется как есть.
func (r *Repository) Create(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("events").
		Columns(
			"title",
			"description",
			"event_dates",
			"slot_duration_minutes",
			"available_slots",
			"enabled",
		).
		Values(
			event.Title,
			event.Description,
			pq.Array(datesToStrings(event.EventDates)),
			event.SlotDurationMinutes,
			pq.Array(slotsToStrings(event.AvailableSlots)),
			event.Enabled,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&event.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	event.CreatedAt = createdAt.Time
	event.UpdatedAt = updatedAt.Time

	if err := r.replaceDevices(ctx, executor, event.ID, event.DeviceIDs); err != nil {
		return nil, err
	}

	return event, nil
}

// GetByID получает событие по ID вместе со списком привязанных устройств.
// Внутри транзакции строка события блокируется (FOR UPDATE) — это
// сериализует все коммиты бронирований одного события.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(eventColumns...).
		From("events").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	event, err := scanEvent(executor.QueryRowContext(ctx, query, args...), "GetByID")
	if err != nil {
		return nil, err
	}

	deviceIDs, err := r.getDeviceIDs(ctx, executor, event.ID)
	if err != nil {
		return nil, err
	}
	event.DeviceIDs = deviceIDs

	return event, nil
}

// List получает все события (дашборд организатора)
func (r *Repository) List(ctx context.Context) ([]*domain.Event, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(eventColumns...).
		From("events").
		OrderBy("created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		event, err := scanEventRow(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	// Подгружаем привязки устройств по каждому событию
	for _, event := range events {
		deviceIDs, err := r.getDeviceIDs(ctx, executor, event.ID)
		if err != nil {
			return nil, err
		}
		event.DeviceIDs = deviceIDs
	}

	return events, nil
}

// Update обновляет редактируемые поля события и привязку устройств.
// available_slots намеренно не трогается: сетка выводится один раз при создании.
func (r *Repository) Update(ctx context.Context, event *domain.Event) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("events").
		Set("title", event.Title).
		Set("description", event.Description).
		Set("event_dates", pq.Array(datesToStrings(event.EventDates))).
		Set("enabled", event.Enabled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": event.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrEventNotFound
	}

	return r.replaceDevices(ctx, executor, event.ID, event.DeviceIDs)
}

// SetEnabled переключает гейт новых бронирований
func (r *Repository) SetEnabled(ctx context.Context, id int64, enabled bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("events").
		Set("enabled", enabled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetEnabled - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetEnabled - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetEnabled - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}

// Delete удаляет событие и его привязки устройств.
// Бронирования события НЕ удаляются здесь — каскад выполняет сервис явно.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	unlinkQuery, unlinkArgs, err := psqlbuilder.Delete("event_devices").
		Where(squirrel.Eq{"event_id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build unlink query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, unlinkQuery, unlinkArgs...); err != nil {
		return fmt.Errorf("%w: Delete - unlink devices: %v", ErrExecQuery, err)
	}

	query, args, err := psqlbuilder.Delete("events").
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
		return ErrEventNotFound
	}

	return nil
}

// getDeviceIDs получает привязанные устройства в порядке привязки
func (r *Repository) getDeviceIDs(ctx context.Context, executor DBExecutor, eventID int64) ([]int64, error) {
	query, args, err := psqlbuilder.Select("device_id").
		From("event_devices").
		Where(squirrel.Eq{"event_id": eventID}).
		OrderBy("position ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getDeviceIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getDeviceIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	deviceIDs := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: getDeviceIDs - scan device_id: %v", ErrScanRow, err)
		}
		deviceIDs = append(deviceIDs, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getDeviceIDs - rows error: %v", ErrScanRow, err)
	}

	return deviceIDs, nil
}

// replaceDevices заменяет привязку устройств события
func (r *Repository) replaceDevices(ctx context.Context, executor DBExecutor, eventID int64, deviceIDs []int64) error {
	deleteQuery, deleteArgs, err := psqlbuilder.Delete("event_devices").
		Where(squirrel.Eq{"event_id": eventID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: replaceDevices - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: replaceDevices - execute delete: %v", ErrExecQuery, err)
	}

	if len(deviceIDs) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("event_devices").
		Columns("event_id", "device_id", "position")
	for i, deviceID := range deviceIDs {
		insertBuilder = insertBuilder.Values(eventID, deviceID, i)
	}

	insertQuery, insertArgs, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: replaceDevices - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: replaceDevices - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// scanEvent сканирует одну строку события
func scanEvent(row *sql.Row, op string) (*domain.Event, error) {
	var event domain.Event
	var dates, slots []string
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		pq.Array(&dates),
		&event.SlotDurationMinutes,
		pq.Array(&slots),
		&event.Enabled,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan event: %v", ErrScanRow, op, err)
	}

	event.EventDates = stringsToDates(dates)
	event.AvailableSlots = stringsToSlots(slots)
	event.CreatedAt = createdAt.Time
	event.UpdatedAt = updatedAt.Time

	return &event, nil
}

// scanEventRow сканирует строку события из *sql.Rows
func scanEventRow(rows *sql.Rows) (*domain.Event, error) {
	var event domain.Event
	var dates, slots []string
	var createdAt, updatedAt sql.NullTime

	err := rows.Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		pq.Array(&dates),
		&event.SlotDurationMinutes,
		pq.Array(&slots),
		&event.Enabled,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: scanEventRow - scan row: %v", ErrScanRow, err)
	}

	event.EventDates = stringsToDates(dates)
	event.AvailableSlots = stringsToSlots(slots)
	event.CreatedAt = createdAt.Time
	event.UpdatedAt = updatedAt.Time

	return &event, nil
}

func datesToStrings(dates []types.DateString) []string {
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.String()
	}
	return out
}

func stringsToDates(in []string) []types.DateString {
	out := make([]types.DateString, len(in))
	for i, s := range in {
		out[i] = types.DateString(s)
	}
	return out
}

func slotsToStrings(slots []types.TimeString) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.String()
	}
	return out
}

func stringsToSlots(in []string) []types.TimeString {
	out := make([]types.TimeString, len(in))
	for i, s := range in {
		out[i] = types.TimeString(s)
	}
	return out
}
