package get_available_slots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/JoeyBiino/Siino-Client-Portal/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetByTeamWithFilter получает бронирования команды, пересекающие окно фильтра
	GetByTeamWithFilter(ctx context.Context, filter domain.TeamBookingsFilter) ([]*domain.Booking, error)
}

// ServiceRepository интерфейс каталога услуг
type ServiceRepository interface {
	GetActiveByID(ctx context.Context, teamID, serviceID uuid.UUID) (*domain.Service, error)
}

// AvailabilityRepository интерфейс недельного расписания команды
type AvailabilityRepository interface {
	GetByTeamAndWeekday(ctx context.Context, teamID uuid.UUID, dayOfWeek int) (*domain.WeeklyAvailability, error)
}

// BlockedTimeRepository интерфейс блокировок
type BlockedTimeRepository interface {
	ListIntersecting(ctx context.Context, teamID uuid.UUID, from, to time.Time) ([]*domain.BlockedInterval, error)
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
