package domain

// Slot generation constants
const (
	// Фиксированный шаг кандидатов слотов. Гранулярность сетки не зависит
	// от длительности услуги: услуга на 20 минут всё равно предлагается
	// только на границах получаса
	SlotStrideMinutes = 30
)

// Portal code generation
const (
	// Алфавит без визуально похожих символов (0/O, 1/I)
	PortalCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	PortalCodeLength   = 8
)

// Business validation constants
const (
	MaxNotesLength              = 2000
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// OccupyingStatuses список статусов, занимающих слот
// Используется во всех фильтрах доступности
var OccupyingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// ValidStatuses все допустимые статусы бронирования
var ValidStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}
