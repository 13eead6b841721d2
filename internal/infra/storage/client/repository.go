package client

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/JoeyBiino/Siino-Client-Portal/internal/domain"
	"github.com/JoeyBiino/Siino-Client-Portal/pkg/dbmetrics"
	"github.com/JoeyBiino/Siino-Client-Portal/pkg/psqlbuilder"
)

const (
	pqUniqueViolation       = "23505"
	portalCodeIdxConstraint = "clients_portal_code_key"
)

var clientColumns = []string{
	"id",
	"team_id",
	"name",
	"email",
	"phone",
	"billing_address",
	"billing_city",
	"billing_province",
	"billing_postal_code",
	"portal_code",
	"portal_enabled",
	"created_at",
	"updated_at",
}

// Repository репозиторий клиентской директории
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиентов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает нового клиента
// Коллизия portal_code по уникальному индексу возвращается как
// ErrPortalCodeTaken - вызывающий генерирует новый код и повторяет
func (r *Repository) Create(ctx context.Context, c *domain.Client) (*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("clients").
		Columns(
			"team_id",
			"name",
			"email",
			"phone",
			"billing_address",
			"billing_city",
			"billing_province",
			"billing_postal_code",
			"portal_code",
			"portal_enabled",
		).
		Values(
			c.TeamID,
			c.Name,
			c.Email,
			c.Phone,
			c.BillingAddress,
			c.BillingCity,
			c.BillingProvince,
			c.BillingPostalCode,
			c.PortalCode,
			c.PortalEnabled,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &createdAt, &updatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation && pqErr.Constraint == portalCodeIdxConstraint {
			return nil, ErrPortalCodeTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	return c, nil
}

// GetByID получает клиента по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, "GetByID")
}

// GetByTeamAndEmail ищет клиента команды по email (гостевой флоу)
func (r *Repository) GetByTeamAndEmail(ctx context.Context, teamID uuid.UUID, email string) (*domain.Client, error) {
	return r.getOne(ctx, squirrel.Eq{"team_id": teamID, "email": email}, "GetByTeamAndEmail")
}

// GetByPortalCode ищет клиента по коду портала
func (r *Repository) GetByPortalCode(ctx context.Context, portalCode string) (*domain.Client, error) {
	return r.getOne(ctx, squirrel.Eq{"portal_code": portalCode}, "GetByPortalCode")
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq, op string) (*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(clientColumns...).
		From("clients").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var c domain.Client
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.ID,
		&c.TeamID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&c.BillingAddress,
		&c.BillingCity,
		&c.BillingProvince,
		&c.BillingPostalCode,
		&c.PortalCode,
		&c.PortalEnabled,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan client: %v", ErrScanRow, op, err)
	}

	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	return &c, nil
}
