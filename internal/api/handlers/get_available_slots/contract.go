package get_available_slots

import (
	"context"

	"github.com/google/uuid"

	"github.com/JoeyBiino/Siino-Client-Portal/internal/domain"
	getAvailableSlots "github.com/JoeyBiino/Siino-Client-Portal/internal/usecase/get_available_slots"
)

type GetAvailableSlotsUseCase interface {
	Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error)
}

// ServiceCatalog используется для суммирования длительностей при
// мульти-сервисном запросе
type ServiceCatalog interface {
	GetActiveByID(ctx context.Context, teamID, serviceID uuid.UUID) (*domain.Service, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
