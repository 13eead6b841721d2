package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/JoeyBiino/Siino-Client-Portal/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	TeamID    uuid.UUID
	ServiceID uuid.UUID

	// Календарная дата запроса; интерпретируется в локальном фрейме клиента,
	// время и зона значения игнорируются
	Date time.Time

	// Смещение клиента от UTC в минутах; единственный источник
	// интерпретации локального дня
	UTCOffsetMinutes int
}

// Response модель ответа со списком доступных слотов
type Response struct {
	TeamID    uuid.UUID
	ServiceID uuid.UUID
	Date      time.Time
	Slots     []domain.TimeSlot // хронологический порядок
}
