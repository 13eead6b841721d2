package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, min int) time.Time {
	return time.Date(2026, time.January, 26, hour, min, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		aStart   time.Time
		aEnd     time.Time
		bStart   time.Time
		bEnd     time.Time
		expected bool
	}{
		{"partial overlap", at(10, 0), at(11, 0), at(10, 30), at(11, 30), true},
		{"containment", at(10, 0), at(12, 0), at(10, 30), at(11, 0), true},
		{"identical", at(10, 0), at(11, 0), at(10, 0), at(11, 0), true},
		{"touching end-to-start", at(10, 0), at(11, 0), at(11, 0), at(12, 0), false},
		{"touching start-to-end", at(11, 0), at(12, 0), at(10, 0), at(11, 0), false},
		{"disjoint", at(9, 0), at(10, 0), at(11, 0), at(12, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			// Пересечение симметрично
			assert.Equal(t, tt.expected, Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}

func TestBufferedEnd(t *testing.T) {
	end := at(11, 0)

	assert.Equal(t, at(11, 15), BufferedEnd(end, 15))
	assert.Equal(t, end, BufferedEnd(end, 0))
	assert.Equal(t, end, BufferedEnd(end, -5))
}

func TestBufferMakesAdjacentSlotsConflict(t *testing.T) {
	// Бронирование 10:00-11:00 с буфером 15 конфликтует со слотом 11:00,
	// но не со слотом 11:30
	bookingStart := at(10, 0)
	bufferedEnd := BufferedEnd(at(11, 0), 15)

	assert.True(t, Overlaps(at(11, 0), at(12, 0), bookingStart, bufferedEnd))
	assert.False(t, Overlaps(at(11, 30), at(12, 30), bookingStart, bufferedEnd))
}

func TestClientLocation(t *testing.T) {
	loc := ClientLocation(-300)
	_, offset := time.Date(2026, time.January, 26, 12, 0, 0, 0, loc).Zone()
	assert.Equal(t, -300*60, offset)

	utc := ClientLocation(0)
	_, offset = time.Date(2026, time.January, 26, 12, 0, 0, 0, utc).Zone()
	assert.Equal(t, 0, offset)
}

func TestDayInLocation(t *testing.T) {
	loc := ClientLocation(-300)

	// Время и зона исходного значения игнорируются, берётся только
	// календарная дата
	date := time.Date(2026, time.January, 26, 23, 45, 0, 0, time.UTC)
	dayStart := DayInLocation(date, loc)

	assert.Equal(t, time.Date(2026, time.January, 26, 0, 0, 0, 0, loc).Unix(), dayStart.Unix())
	assert.Equal(t, 0, dayStart.Hour())
}

func TestDayBounds(t *testing.T) {
	loc := ClientLocation(120)
	dayStart := time.Date(2026, time.January, 26, 0, 0, 0, 0, loc)

	from, to := DayBounds(dayStart)
	assert.Equal(t, dayStart, from)
	assert.Equal(t, dayStart.Add(24*time.Hour-time.Second), to)
}

func TestSameLocalDay(t *testing.T) {
	loc := ClientLocation(-300)

	// 02:00 UTC 27-го = 21:00 26-го в UTC-5
	a := time.Date(2026, time.January, 27, 2, 0, 0, 0, time.UTC)
	b := time.Date(2026, time.January, 26, 15, 0, 0, 0, time.UTC)

	assert.True(t, SameLocalDay(a, b, loc))
	assert.False(t, SameLocalDay(a, b, time.UTC))
}

func TestBookingBufferedEnd(t *testing.T) {
	b := &Booking{
		StartTime:     at(10, 0),
		EndTime:       at(11, 0),
		BufferMinutes: 30,
	}
	require.Equal(t, at(11, 30), b.BufferedEnd())
}

func TestBookingIsOccupying(t *testing.T) {
	for _, status := range []BookingStatus{StatusPending, StatusConfirmed} {
		b := &Booking{Status: status}
		assert.True(t, b.IsOccupying(), "status %s", status)
	}
	for _, status := range []BookingStatus{StatusCompleted, StatusCancelled, StatusNoShow} {
		b := &Booking{Status: status}
		assert.False(t, b.IsOccupying(), "status %s", status)
	}
}

func TestBookingCanBeCancelled(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusPending}).CanBeCancelled())
	assert.True(t, (&Booking{Status: StatusConfirmed}).CanBeCancelled())
	assert.False(t, (&Booking{Status: StatusCompleted}).CanBeCancelled())
	assert.False(t, (&Booking{Status: StatusCancelled}).CanBeCancelled())
	assert.False(t, (&Booking{Status: StatusNoShow}).CanBeCancelled())
}

func TestServiceBookingWindow(t *testing.T) {
	svc := &Service{LeadTimeHours: 2, MaxAdvanceDays: 30}
	now := at(8, 0)

	assert.Equal(t, at(10, 0), svc.MinBookableAt(now))
	assert.Equal(t, now.AddDate(0, 0, 30), svc.MaxBookableAt(now))
}
