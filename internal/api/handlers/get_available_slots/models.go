package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/JoeyBiino/Siino-Client-Portal/internal/domain"
	getAvailableSlots "github.com/JoeyBiino/Siino-Client-Portal/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date       string          `json:"date"`
	TeamID     uuid.UUID       `json:"teamId"`
	ServiceIDs []uuid.UUID     `json:"serviceIds"`
	Slots      []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
// Времена - абсолютные моменты в RFC3339
type AvailableSlot struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

// FromSlots конвертирует слоты в HTTP response
func FromSlots(resp *getAvailableSlots.Response, serviceIDs []uuid.UUID, slots []domain.TimeSlot) *AvailableSlotsResponse {
	out := make([]AvailableSlot, len(slots))
	for i, slot := range slots {
		out[i] = AvailableSlot{
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
		}
	}

	return &AvailableSlotsResponse{
		Date:       resp.Date.Format(domain.DateFormat),
		TeamID:     resp.TeamID,
		ServiceIDs: serviceIDs,
		Slots:      out,
	}
}
