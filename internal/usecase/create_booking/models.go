package create_booking

import (
	"time"

	"github.com/google/uuid"
)

// GuestInfo контактные данные нового клиента в гостевом флоу
type GuestInfo struct {
	Name  string
	Email string
	Phone string

	BillingAddress    *string
	BillingCity       *string
	BillingProvince   *string
	BillingPostalCode *string
}

// ServiceSelection выбранная услуга с количеством (для заголовка бронирования)
type ServiceSelection struct {
	Name     string
	Quantity int
}

// Request модель запроса на создание бронирования
//
// Либо ClientID (портальный флоу), либо Guest (гостевой флоу) обязателен.
// StartTime/EndTime - абсолютные моменты; при мульти-сервисном бронировании
// EndTime покрывает суммарную длительность, а Selections перечисляет выбранные
// услуги для заголовка
type Request struct {
	TeamID    uuid.UUID
	ServiceID uuid.UUID

	ClientID *uuid.UUID
	Guest    *GuestInfo

	StartTime time.Time
	EndTime   time.Time

	Selections []ServiceSelection

	Notes                *string
	LocationAddress      *string
	LocationContactName  *string
	LocationContactPhone *string
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID        uuid.UUID
	TeamID    uuid.UUID
	ServiceID uuid.UUID
	ClientID  uuid.UUID

	Title     string
	StartTime time.Time
	EndTime   time.Time
	Status    string

	ServiceName  string
	ServicePrice float64

	Notes *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
