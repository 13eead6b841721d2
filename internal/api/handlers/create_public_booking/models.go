package create_public_booking

import (
	"time"

	"github.com/google/uuid"

	createBooking "github.com/JoeyBiino/Siino-Client-Portal/internal/usecase/create_booking"
)

// ClientInfoRequest контактные данные гостя
type ClientInfoRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`

	BillingAddress    *string `json:"billingAddress,omitempty"`
	BillingCity       *string `json:"billingCity,omitempty"`
	BillingProvince   *string `json:"billingProvince,omitempty"`
	BillingPostalCode *string `json:"billingPostalCode,omitempty"`
}

// ServiceSelectionRequest выбранная услуга (для заголовка бронирования)
type ServiceSelectionRequest struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// CreatePublicBookingRequest HTTP request model (гостевой поток)
type CreatePublicBookingRequest struct {
	TeamID    uuid.UUID `json:"teamId"`
	ServiceID uuid.UUID `json:"serviceId"`
	StartTime time.Time `json:"startTime"` // RFC3339
	EndTime   time.Time `json:"endTime"`   // RFC3339

	Client ClientInfoRequest `json:"client"`

	Selections []ServiceSelectionRequest `json:"selections,omitempty"`

	Notes                *string `json:"notes,omitempty"`
	LocationAddress      *string `json:"locationAddress,omitempty"`
	LocationContactName  *string `json:"locationContactName,omitempty"`
	LocationContactPhone *string `json:"locationContactPhone,omitempty"`
}

// PublicBookingResponse HTTP response model
// ClientID возвращается, чтобы гость мог перейти в портальный поток
type PublicBookingResponse struct {
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

	CreatedAt string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreatePublicBookingRequest) ToUseCaseRequest() *createBooking.Request {
	selections := make([]createBooking.ServiceSelection, 0, len(r.Selections))
	for _, sel := range r.Selections {
		selections = append(selections, createBooking.ServiceSelection{
			Name:     sel.Name,
			Quantity: sel.Quantity,
		})
	}

	return &createBooking.Request{
		TeamID:    r.TeamID,
		ServiceID: r.ServiceID,
		Guest: &createBooking.GuestInfo{
			Name:              r.Client.Name,
			Email:             r.Client.Email,
			Phone:             r.Client.Phone,
			BillingAddress:    r.Client.BillingAddress,
			BillingCity:       r.Client.BillingCity,
			BillingProvince:   r.Client.BillingProvince,
			BillingPostalCode: r.Client.BillingPostalCode,
		},
		StartTime:            r.StartTime,
		EndTime:              r.EndTime,
		Selections:           selections,
		Notes:                r.Notes,
		LocationAddress:      r.LocationAddress,
		LocationContactName:  r.LocationContactName,
		LocationContactPhone: r.LocationContactPhone,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *PublicBookingResponse {
	return &PublicBookingResponse{
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
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
	}
}
