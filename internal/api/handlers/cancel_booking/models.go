package cancel_booking

import (
	"github.com/google/uuid"

	"github.com/JoeyBiino/Siino-Client-Portal/internal/service/bookings/models"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CancelBookingRequest) ToServiceRequest(clientID uuid.UUID) *models.CancelBookingRequest {
	reason := ""
	if r.CancellationReason != nil {
		reason = *r.CancellationReason
	}

	return &models.CancelBookingRequest{
		ClientID:           &clientID,
		CancellationReason: reason,
	}
}
