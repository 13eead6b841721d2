package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/JoeyBiino/Siino-Client-Portal/pkg/types"
)

// WeeklyAvailability represents a team's working window for one day of week
// DayOfWeek: 0 = Sunday .. 6 = Saturday
type WeeklyAvailability struct {
	ID          uuid.UUID
	TeamID      uuid.UUID
	DayOfWeek   int
	IsAvailable bool
	StartTime   types.TimeString // локальное wall-clock время, без даты
	EndTime     types.TimeString

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOpen returns true if the team accepts bookings on this day of week
func (a *WeeklyAvailability) IsOpen() bool {
	return a.IsAvailable && !a.StartTime.IsZero() && !a.EndTime.IsZero()
}

// BlockedInterval represents an explicit unavailability window (vacation,
// holiday, ad-hoc block) independent of any booking
type BlockedInterval struct {
	ID        uuid.UUID
	TeamID    uuid.UUID
	StartTime time.Time // абсолютный момент, [start, end)
	EndTime   time.Time
	Reason    *string

	CreatedAt time.Time
}
