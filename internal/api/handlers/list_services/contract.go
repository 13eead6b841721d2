package list_services

import (
	"context"

	"github.com/google/uuid"

	"github.com/JoeyBiino/Siino-Client-Portal/internal/domain"
)

type ServiceCatalog interface {
	ListActiveByTeam(ctx context.Context, teamID uuid.UUID) ([]*domain.Service, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
