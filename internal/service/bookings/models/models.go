package models

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/JoeyBiino/Siino-Client-Portal/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
//
// ClientID заполняется для портального вызова; nil означает staff-вызов
// без проверки владения
type CancelBookingRequest struct {
	ClientID           *uuid.UUID `json:"clientId,omitempty"`
	CancellationReason string     `json:"cancellationReason"`
}

// UpdateStatusRequest запрос на обновление статуса бронирования (staff)
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// GetClientBookingsRequest запрос истории бронирований клиента
type GetClientBookingsRequest struct {
	ClientID uuid.UUID `json:"clientId"`
	Status   *string   `json:"status,omitempty"`
}

// GetTeamBookingsRequest запрос бронирований команды за период
type GetTeamBookingsRequest struct {
	TeamID        uuid.UUID  `json:"teamId"`
	From          *time.Time `json:"from,omitempty"`
	To            *time.Time `json:"to,omitempty"`
	Status        *string    `json:"status,omitempty"`
	OnlyOccupying bool       `json:"onlyOccupying,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetTeamBookingsRequest) ToDomainFilter() (domain.TeamBookingsFilter, error) {
	filter := domain.TeamBookingsFilter{
		TeamID:         r.TeamID,
		IntersectStart: r.From,
		IntersectEnd:   r.To,
		OnlyOccupying:  r.OnlyOccupying,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID        uuid.UUID  `json:"id"`
	TeamID    uuid.UUID  `json:"teamId"`
	ServiceID uuid.UUID  `json:"serviceId"`
	ClientID  *uuid.UUID `json:"clientId,omitempty"`

	Title         string    `json:"title"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
	BufferMinutes int       `json:"bufferMinutes"`
	Status        string    `json:"status"`

	Notes *string `json:"notes,omitempty"`

	LocationAddress      *string `json:"locationAddress,omitempty"`
	LocationContactName  *string `json:"locationContactName,omitempty"`
	LocationContactPhone *string `json:"locationContactPhone,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// PortalAccessResponse ответ на разрешение кода портала
// Код выступает учётными данными: ответ отдаёт идентичность клиента,
// которой фронтенд подписывает последующие портальные запросы
type PortalAccessResponse struct {
	ClientID uuid.UUID `json:"clientId"`
	TeamID   uuid.UUID `json:"teamId"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
}

// FromDomainClient конвертирует domain клиента в ответ портального доступа
func FromDomainClient(c *domain.Client) *PortalAccessResponse {
	if c == nil {
		return nil
	}
	return &PortalAccessResponse{
		ClientID: c.ID,
		TeamID:   c.TeamID,
		Name:     c.Name,
		Email:    c.Email,
	}
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                   b.ID,
		TeamID:               b.TeamID,
		ServiceID:            b.ServiceID,
		ClientID:             b.ClientID,
		Title:                b.Title,
		StartTime:            b.StartTime,
		EndTime:              b.EndTime,
		BufferMinutes:        b.BufferMinutes,
		Status:               string(b.Status),
		Notes:                b.Notes,
		LocationAddress:      b.LocationAddress,
		LocationContactName:  b.LocationContactName,
		LocationContactPhone: b.LocationContactPhone,
		CancellationReason:   b.CancellationReason,
		CreatedAt:            b.CreatedAt,
		UpdatedAt:            b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledAt := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledAt
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, b := range bookings {
		if resp := FromDomainBooking(b); resp != nil {
			result.Bookings = append(result.Bookings, *resp)
		}
	}

	return result
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	status := domain.BookingStatus(s)
	for _, valid := range domain.ValidStatuses {
		if status == valid {
			return status, nil
		}
	}
	return "", ErrInvalidStatus
}
