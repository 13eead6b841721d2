package domain

import (
	"time"

	"github.com/google/uuid"
)

// Service represents a bookable service in a team's catalog
type Service struct {
	ID          uuid.UUID
	TeamID      uuid.UUID
	Name        string
	Description *string

	DurationMinutes int
	Price           float64

	// Booking window parameters
	LeadTimeHours  int // минимальный интервал от "сейчас" до начала
	MaxAdvanceDays int // горизонт бронирования
	BufferMinutes  int // обязательный буфер после окончания

	IsActive bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// MinBookableAt returns the earliest instant at which this service may start
func (s *Service) MinBookableAt(now time.Time) time.Time {
	return now.Add(time.Duration(s.LeadTimeHours) * time.Hour)
}

// MaxBookableAt returns the latest instant at which this service may start
func (s *Service) MaxBookableAt(now time.Time) time.Time {
	return now.AddDate(0, 0, s.MaxAdvanceDays)
}

// Duration returns the service duration
func (s *Service) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}
