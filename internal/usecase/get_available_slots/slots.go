package get_available_slots

import (
	"time"

	"github.com/JoeyBiino/Siino-Client-Portal/internal/domain"
)

// generateSlots перебирает кандидатов с фиксированным шагом 30 минут от начала
// рабочего окна и возвращает те, что проходят все проверки конфликтов.
//
// Кандидат исключается, если:
//   - его начало не позже minBookable (lead time услуги);
//   - его буферизованный интервал [start, end+buffer) пересекает блокировку;
//   - его буферизованный интервал пересекает буферизованный интервал
//     занимающего бронирования.
//
// Шаг сетки не зависит от длительности услуги: 20-минутная услуга всё равно
// предлагается только на границах получаса.
func generateSlots(
	service *domain.Service,
	avail *domain.WeeklyAvailability,
	dayStart time.Time,
	loc *time.Location,
	minBookable time.Time,
	blocks []*domain.BlockedInterval,
	bookings []*domain.Booking,
) ([]domain.TimeSlot, error) {
	year, month, day := dayStart.Date()

	windowStart, err := avail.StartTime.OnDate(year, month, day, loc)
	if err != nil {
		return nil, err
	}
	windowEnd, err := avail.EndTime.OnDate(year, month, day, loc)
	if err != nil {
		return nil, err
	}

	duration := service.Duration()
	stride := domain.SlotStrideMinutes * time.Minute

	slots := make([]domain.TimeSlot, 0)

	for cur := windowStart; !cur.Add(duration).After(windowEnd); cur = cur.Add(stride) {
		slotStart := cur
		slotEnd := cur.Add(duration)
		bufferedSlotEnd := domain.BufferedEnd(slotEnd, service.BufferMinutes)

		// Граница включительно: кандидат, начинающийся ровно в minBookable,
		// не предлагается
		if !slotStart.After(minBookable) {
			continue
		}

		if intersectsBlocked(slotStart, bufferedSlotEnd, blocks) {
			continue
		}

		if intersectsBooking(slotStart, bufferedSlotEnd, bookings) {
			continue
		}

		slots = append(slots, domain.TimeSlot{
			StartTime: slotStart,
			EndTime:   slotEnd,
		})
	}

	return slots, nil
}

// intersectsBlocked проверяет пересечение буферизованного слота с блокировками
func intersectsBlocked(slotStart, bufferedSlotEnd time.Time, blocks []*domain.BlockedInterval) bool {
	for _, block := range blocks {
		if domain.Overlaps(slotStart, bufferedSlotEnd, block.StartTime, block.EndTime) {
			return true
		}
	}
	return false
}

// intersectsBooking проверяет пересечение буферизованного слота с буферизованными
// интервалами занимающих бронирований
func intersectsBooking(slotStart, bufferedSlotEnd time.Time, bookings []*domain.Booking) bool {
	for _, b := range bookings {
		if !b.IsOccupying() {
			continue
		}
		if domain.Overlaps(slotStart, bufferedSlotEnd, b.StartTime, b.BufferedEnd()) {
			return true
		}
	}
	return false
}

// FilterForTotalDuration отбрасывает слоты, на которых суммарная длительность
// выбранных услуг пересекла бы локальную полночь (23:59:59) запрошенной даты.
//
// Используется вызывающим при мульти-сервисном бронировании: слоты запрашиваются
// по первой услуге, суммарная длительность проверяется только против границы дня.
// Это сознательное приближение - полная проверка конфликтов по суммарному
// интервалу выполняется позже на создании бронирования.
func FilterForTotalDuration(slots []domain.TimeSlot, totalDurationMinutes int, loc *time.Location) []domain.TimeSlot {
	filtered := make([]domain.TimeSlot, 0, len(slots))
	total := time.Duration(totalDurationMinutes) * time.Minute

	for _, slot := range slots {
		dayStart := domain.DayInLocation(slot.StartTime.In(loc), loc)
		_, dayEnd := domain.DayBounds(dayStart)

		if !slot.StartTime.Add(total).After(dayEnd) {
			filtered = append(filtered, slot)
		}
	}

	return filtered
}
