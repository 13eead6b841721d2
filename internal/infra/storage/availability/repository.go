package availability

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

var availabilityColumns = []string{
	"id",
	"team_id",
	"day_of_week",
	"is_available",
	"start_time",
	"end_time",
	"created_at",
	"updated_at",
}

// Repository репозиторий недельного расписания команды (read-only вход движка)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByTeamAndWeekday получает рабочее окно команды на день недели (0-6, 0=воскресенье)
// Отсутствие записи - легитимное "закрыто в этот день", не ошибка хранилища,
// но различать её должен вызывающий: возвращаем ErrAvailabilityNotFound
func (r *Repository) GetByTeamAndWeekday(ctx context.Context, teamID uuid.UUID, dayOfWeek int) (*domain.WeeklyAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(availabilityColumns...).
		From("team_availability").
		Where(squirrel.Eq{
			"team_id":     teamID,
			"day_of_week": dayOfWeek,
		}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByTeamAndWeekday - build select query: %v", ErrBuildQuery, err)
	}

	var avail domain.WeeklyAvailability
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&avail.ID,
		&avail.TeamID,
		&avail.DayOfWeek,
		&avail.IsAvailable,
		&avail.StartTime,
		&avail.EndTime,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrAvailabilityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTeamAndWeekday - scan availability: %v", ErrScanRow, err)
	}

	avail.CreatedAt = createdAt.Time
	avail.UpdatedAt = updatedAt.Time

	return &avail, nil
}
