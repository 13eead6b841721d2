package domain

import "time"

// TimeSlot represents one bookable unit produced by the slot generator
// Computed, never persisted
type TimeSlot struct {
	StartTime time.Time
	EndTime   time.Time
}

// Duration returns the slot length
func (s TimeSlot) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}
