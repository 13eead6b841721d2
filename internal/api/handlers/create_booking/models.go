package create_booking

import (
	"time"

	"github.com/google/uuid"

	createBooking "github.com/JoeyBiino/Siino-Client-Portal/internal/usecase/create_booking"
)

// ServiceSelectionRequest выбранная услуга (для заголовка бронирования)
type ServiceSelectionRequest struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// CreateBookingRequest HTTP request model (портальный клиент)
type CreateBookingRequest struct {
	TeamID    uuid.UUID `json:"teamId"`
	ServiceID uuid.UUID `json:"serviceId"`
	StartTime time.Time `json:"startTime"` // RFC3339
	EndTime   time.Time `json:"endTime"`   // RFC3339

	Selections []ServiceSelectionRequest `json:"selections,omitempty"`

	Notes                *string `json:"notes,omitempty"`
	LocationAddress      *string `json:"locationAddress,omitempty"`
	LocationContactName  *string `json:"locationContactName,omitempty"`
	LocationContactPhone *string `json:"locationContactPhone,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID        uuid.UUID `json:"id"`
	TeamID    uuid.UUID `json:"teamId"`
	ServiceID uuid.UUID `json:"serviceId"`
	ClientID  uuid.UUID `json:"clientId"`

	Title     string `json:"title"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Status    string `json:"status"`

	ServiceName  string  `json:"serviceName"`
	ServicePrice float64 `json:"servicePrice"`

	Notes *string `json:"notes,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(clientID uuid.UUID) *createBooking.Request {
	return &createBooking.Request{
		TeamID:               r.TeamID,
		ServiceID:            r.ServiceID,
		ClientID:             &clientID,
		StartTime:            r.StartTime,
		EndTime:              r.EndTime,
		Selections:           toSelections(r.Selections),
		Notes:                r.Notes,
		LocationAddress:      r.LocationAddress,
		LocationContactName:  r.LocationContactName,
		LocationContactPhone: r.LocationContactPhone,
	}
}

func toSelections(selections []ServiceSelectionRequest) []createBooking.ServiceSelection {
	if len(selections) == 0 {
		return nil
	}
	out := make([]createBooking.ServiceSelection, len(selections))
	for i, sel := range selections {
		out[i] = createBooking.ServiceSelection{
			Name:     sel.Name,
			Quantity: sel.Quantity,
		}
	}
	return out
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:           resp.ID,
		TeamID:       resp.TeamID,
		ServiceID:    resp.ServiceID,
		ClientID:     resp.ClientID,
		Title:        resp.Title,
		StartTime:    resp.StartTime.Format(time.RFC3339),
		EndTime:      resp.EndTime.Format(time.RFC3339),
		Status:       resp.Status,
		ServiceName:  resp.ServiceName,
		ServicePrice: resp.ServicePrice,
		Notes:        resp.Notes,
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    resp.UpdatedAt.Format(time.RFC3339),
	}
}
