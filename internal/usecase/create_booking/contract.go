package create_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/JoeyBiino/Siino-Client-Portal/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByTeamWithFilter(ctx context.Context, filter domain.TeamBookingsFilter) ([]*domain.Booking, error)
}

// ServiceRepository интерфейс каталога услуг
type ServiceRepository interface {
	GetActiveByID(ctx context.Context, teamID, serviceID uuid.UUID) (*domain.Service, error)
}

// BlockedTimeRepository интерфейс блокировок
type BlockedTimeRepository interface {
	ListIntersecting(ctx context.Context, teamID uuid.UUID, from, to time.Time) ([]*domain.BlockedInterval, error)
}

// ClientRepository интерфейс клиентской директории
type ClientRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error)
	GetByTeamAndEmail(ctx context.Context, teamID uuid.UUID, email string) (*domain.Client, error)
	Create(ctx context.Context, c *domain.Client) (*domain.Client, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
