package get_available_slots

import (
	"fmt"

	"github.com/google/uuid"
)

// Разумные границы смещения от UTC: от -12:00 до +14:00
const (
	minUTCOffsetMinutes = -12 * 60
	maxUTCOffsetMinutes = 14 * 60
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.TeamID == uuid.Nil {
		return fmt.Errorf("%w: teamID is required", ErrInvalidInput)
	}

	if req.ServiceID == uuid.Nil {
		return fmt.Errorf("%w: serviceID is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.UTCOffsetMinutes < minUTCOffsetMinutes || req.UTCOffsetMinutes > maxUTCOffsetMinutes {
		return fmt.Errorf("%w: utcOffset %d is out of range", ErrInvalidInput, req.UTCOffsetMinutes)
	}

	return nil
}
