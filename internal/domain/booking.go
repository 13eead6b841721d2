package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
	StatusNoShow    BookingStatus = "no_show"
)

// Booking represents a reserved time interval for a team's service
type Booking struct {
	ID        uuid.UUID
	TeamID    uuid.UUID
	ServiceID uuid.UUID
	ClientID  *uuid.UUID // nil до резолва клиента в гостевом флоу

	Title     string
	StartTime time.Time // абсолютный момент (UTC)
	EndTime   time.Time // абсолютный момент (UTC)
	Status    BookingStatus

	// Буфер услуги на момент создания; денормализован, чтобы
	// exclusion constraint в БД мог проверять буферизованный интервал
	BufferMinutes int

	Notes *string

	// Локация выезда (гостевой флоу)
	LocationAddress      *string
	LocationContactName  *string
	LocationContactPhone *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOccupying returns true if the booking counts against availability
func (b *Booking) IsOccupying() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanTransitionTo reports whether the status change is allowed for a
// staff update. Cancellation is a separate operation,
// completed/cancelled/no_show are terminal.
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	switch b.Status {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCompleted || next == StatusNoShow
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusNoShow
	default:
		return false
	}
}

// HasStarted returns true if the booking start time is not in the future
func (b *Booking) HasStarted(now time.Time) bool {
	return !b.StartTime.After(now)
}

// BufferedEnd returns the booking end time extended by its buffer
func (b *Booking) BufferedEnd() time.Time {
	return BufferedEnd(b.EndTime, b.BufferMinutes)
}

// TeamBookingsFilter фильтр для выборки бронирований команды
type TeamBookingsFilter struct {
	TeamID uuid.UUID

	// Границы пересечения: выбираются бронирования, чей буферизованный
	// интервал пересекает [IntersectStart, IntersectEnd)
	IntersectStart *time.Time
	IntersectEnd   *time.Time

	Status        *BookingStatus // конкретный статус (опционально)
	OnlyOccupying bool           // только pending/confirmed
	ForUpdate     bool           // блокировка строк внутри транзакции
}
