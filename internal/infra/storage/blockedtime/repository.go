package blockedtime

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/JoeyBiino/Siino-Client-Portal/internal/domain"
	"github.com/JoeyBiino/Siino-Client-Portal/pkg/dbmetrics"
	"github.com/JoeyBiino/Siino-Client-Portal/pkg/psqlbuilder"
)

// Repository репозиторий блокировок (отпуска, праздники, ad-hoc недоступность)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListIntersecting получает все блокировки команды, чей интервал [start_time, end_time)
// пересекает [from, to)
func (r *Repository) ListIntersecting(ctx context.Context, teamID uuid.UUID, from, to time.Time) ([]*domain.BlockedInterval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"team_id",
		"start_time",
		"end_time",
		"reason",
		"created_at",
	).
		From("blocked_times").
		Where(squirrel.Eq{"team_id": teamID}).
		Where(squirrel.Expr("start_time < ?", to)).
		Where(squirrel.Expr("end_time > ?", from)).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListIntersecting - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListIntersecting - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	blocks := make([]*domain.BlockedInterval, 0)
	for rows.Next() {
		var block domain.BlockedInterval
		var createdAt sql.NullTime

		err := rows.Scan(
			&block.ID,
			&block.TeamID,
			&block.StartTime,
			&block.EndTime,
			&block.Reason,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListIntersecting - scan row: %v", ErrScanRow, err)
		}

		block.CreatedAt = createdAt.Time
		blocks = append(blocks, &block)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListIntersecting - rows error: %v", ErrScanRow, err)
	}

	return blocks, nil
}
