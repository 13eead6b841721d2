package list_services

import (
	"github.com/google/uuid"

	"github.com/JoeyBiino/Siino-Client-Portal/internal/domain"
)

// ServiceResponse HTTP модель услуги каталога
type ServiceResponse struct {
	ID              uuid.UUID `json:"id"`
	TeamID          uuid.UUID `json:"teamId"`
	Name            string    `json:"name"`
	Description     *string   `json:"description,omitempty"`
	DurationMinutes int       `json:"durationMinutes"`
	Price           float64   `json:"price"`
	LeadTimeHours   int       `json:"leadTimeHours"`
	MaxAdvanceDays  int       `json:"maxAdvanceDays"`
	BufferMinutes   int       `json:"bufferMinutes"`
}

// ServiceListResponse ответ со списком услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// FromDomainServices конвертирует список domain моделей в DTO
func FromDomainServices(services []*domain.Service) *ServiceListResponse {
	result := &ServiceListResponse{
		Services: make([]ServiceResponse, 0, len(services)),
	}

	for _, s := range services {
		result.Services = append(result.Services, ServiceResponse{
			ID:              s.ID,
			TeamID:          s.TeamID,
			Name:            s.Name,
			Description:     s.Description,
			DurationMinutes: s.DurationMinutes,
			Price:           s.Price,
			LeadTimeHours:   s.LeadTimeHours,
			MaxAdvanceDays:  s.MaxAdvanceDays,
			BufferMinutes:   s.BufferMinutes,
		})
	}

	return result
}
