package domain

import (
	"fmt"
	"time"
)

// Общие примитивы интервальной арифметики.
// И генератор слотов, и валидатор бронирований считают конфликты
// одним и тем же кодом - реализация здесь единственная.

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Touching endpoints do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// BufferedEnd returns end extended by bufferMinutes. The buffer is applied
// only to the end of an occupying interval, never to its start.
func BufferedEnd(end time.Time, bufferMinutes int) time.Time {
	if bufferMinutes <= 0 {
		return end
	}
	return end.Add(time.Duration(bufferMinutes) * time.Minute)
}

// ClientLocation builds a fixed-offset location from the client's UTC offset
// in minutes. All local-day interpretation goes through this location;
// ambient server timezone is never consulted.
func ClientLocation(utcOffsetMinutes int) *time.Location {
	name := fmt.Sprintf("UTC%+03d:%02d", utcOffsetMinutes/60, abs(utcOffsetMinutes%60))
	return time.FixedZone(name, utcOffsetMinutes*60)
}

// DayInLocation reinterprets the calendar date (year, month, day) of date
// as midnight in loc. The time-of-day and zone of date are ignored.
func DayInLocation(date time.Time, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// DayBounds returns the inclusive bounds of the local calendar day starting
// at dayStart: [dayStart, dayStart+23:59:59].
func DayBounds(dayStart time.Time) (time.Time, time.Time) {
	return dayStart, dayStart.Add(24*time.Hour - time.Second)
}

// SameLocalDay reports whether a and b fall on the same calendar day in loc.
func SameLocalDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
