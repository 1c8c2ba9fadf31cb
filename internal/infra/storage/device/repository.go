package device

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"event-slot-service/internal/domain"
	"event-slot-service/pkg/dbmetrics"
	"event-slot-service/pkg/psqlbuilder"
)

var deviceColumns = []string{
	"id",
	"name",
	"description",
	"image_url",
	"link_url",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с устройствами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория устройств
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое устройство
func (r *Repository) Create(ctx context.Context, device *domain.Device) (*domain.Device, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("devices").
		Columns("name", "description", "image_url", "link_url").
		Values(device.Name, device.Description, device.ImageURL, device.LinkURL).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&device.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	device.CreatedAt = createdAt.Time
	device.UpdatedAt = updatedAt.Time

	return device, nil
}

// GetByID получает устройство по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Device, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(deviceColumns...).
		From("devices").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var device domain.Device
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&device.ID,
		&device.Name,
		&device.Description,
		&device.ImageURL,
		&device.LinkURL,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrDeviceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan device: %v", ErrScanRow, err)
	}

	device.CreatedAt = createdAt.Time
	device.UpdatedAt = updatedAt.Time

	return &device, nil
}

// GetByIDs получает устройства по набору ID (для заявок и проекции доступности)
func (r *Repository) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Device, error) {
	if len(ids) == 0 {
		return []*domain.Device{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(deviceColumns...).
		From("devices").
		Where(squirrel.Eq{"id": ids}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanDevices(rows)
}

// List получает все устройства
func (r *Repository) List(ctx context.Context) ([]*domain.Device, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(deviceColumns...).
		From("devices").
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanDevices(rows)
}

// Update обновляет устройство
func (r *Repository) Update(ctx context.Context, device *domain.Device) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("devices").
		Set("name", device.Name).
		Set("description", device.Description).
		Set("image_url", device.ImageURL).
		Set("link_url", device.LinkURL).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": device.ID}).
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
		return ErrDeviceNotFound
	}

	return nil
}

// Delete удаляет устройство и его привязки к событиям
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	unlinkQuery, unlinkArgs, err := psqlbuilder.Delete("event_devices").
		Where(squirrel.Eq{"device_id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build unlink query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, unlinkQuery, unlinkArgs...); err != nil {
		return fmt.Errorf("%w: Delete - unlink events: %v", ErrExecQuery, err)
	}

	query, args, err := psqlbuilder.Delete("devices").
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
		return ErrDeviceNotFound
	}

	return nil
}

// scanDevices сканирует результаты запроса в слайс устройств
func (r *Repository) scanDevices(rows *sql.Rows) ([]*domain.Device, error) {
	devices := make([]*domain.Device, 0)

	for rows.Next() {
		var device domain.Device
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&device.ID,
			&device.Name,
			&device.Description,
			&device.ImageURL,
			&device.LinkURL,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanDevices - scan row: %v", ErrScanRow, err)
		}

		device.CreatedAt = createdAt.Time
		device.UpdatedAt = updatedAt.Time

		devices = append(devices, &device)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanDevices - rows error: %v", ErrScanRow, err)
	}

	return devices, nil
}
