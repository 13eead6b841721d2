package servicecatalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/JoeyBiino/Siino-Client-Portal/internal/domain"
	"github.com/JoeyBiino/Siino-Client-Portal/pkg/dbmetrics"
	"github.com/JoeyBiino/Siino-Client-Portal/pkg/psqlbuilder"
)

var serviceColumns = []string{
	"id",
	"team_id",
	"name",
	"description",
	"duration_minutes",
	"price",
	"lead_time_hours",
	"max_advance_days",
	"buffer_minutes",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий каталога услуг (read-only для движка бронирования)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога услуг
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetActiveByID получает активную услугу по ID в рамках команды
// Неактивная или чужая услуга считается не найденной
func (r *Repository) GetActiveByID(ctx context.Context, teamID, serviceID uuid.UUID) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{
			"id":        serviceID,
			"team_id":   teamID,
			"is_active": true,
		}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByID - build select query: %v", ErrBuildQuery, err)
	}

	service, err := scanService(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByID - scan service: %v", ErrScanRow, err)
	}

	return service, nil
}

// ListActiveByTeam получает активный каталог услуг команды
func (r *Repository) ListActiveByTeam(ctx context.Context, teamID uuid.UUID) ([]*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"team_id": teamID, "is_active": true}).
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByTeam - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByTeam - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]*domain.Service, 0)
	for rows.Next() {
		service, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActiveByTeam - scan row: %v", ErrScanRow, err)
		}
		services = append(services, service)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActiveByTeam - rows error: %v", ErrScanRow, err)
	}

	return services, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanService(row rowScanner) (*domain.Service, error) {
	var service domain.Service
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&service.ID,
		&service.TeamID,
		&service.Name,
		&service.Description,
		&service.DurationMinutes,
		&service.Price,
		&service.LeadTimeHours,
		&service.MaxAdvanceDays,
		&service.BufferMinutes,
		&service.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	service.CreatedAt = createdAt.Time
	service.UpdatedAt = updatedAt.Time

	return &service, nil
}
