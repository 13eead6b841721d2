package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JoeyBiino/Siino-Client-Portal/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.TeamID == uuid.Nil {
		return fmt.Errorf("%w: teamID is required", ErrInvalidInput)
	}

	if req.ServiceID == uuid.Nil {
		return fmt.Errorf("%w: serviceID is required", ErrInvalidInput)
	}

	if req.ClientID == nil && req.Guest == nil {
		return fmt.Errorf("%w: clientID or guest info is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}

	if !req.EndTime.After(req.StartTime) {
		return fmt.Errorf("%w: endTime must be after startTime", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateGuestInfo проверяет обязательные контактные поля гостевого флоу
func validateGuestInfo(guest *GuestInfo) error {
	if strings.TrimSpace(guest.Name) == "" ||
		strings.TrimSpace(guest.Email) == "" ||
		strings.TrimSpace(guest.Phone) == "" {
		return ErrMissingClientInfo
	}
	return nil
}

// validateBookingWindow проверяет lead time и горизонт бронирования услуги
func validateBookingWindow(service *domain.Service, start time.Time, now time.Time) error {
	if start.Before(service.MinBookableAt(now)) {
		return fmt.Errorf("%w: must book at least %d hours in advance", ErrLeadTimeViolation, service.LeadTimeHours)
	}

	if start.After(service.MaxBookableAt(now)) {
		return fmt.Errorf("%w: can only book up to %d days in advance", ErrHorizonViolation, service.MaxAdvanceDays)
	}

	return nil
}

// buildTitle собирает отображаемый заголовок бронирования
// Форматирование, не участвует в логике конфликтов
func buildTitle(serviceName string, selections []ServiceSelection, clientName string) string {
	names := serviceName
	if len(selections) > 0 {
		parts := make([]string, 0, len(selections))
		for _, sel := range selections {
			if sel.Quantity > 1 {
				parts = append(parts, fmt.Sprintf("%s (x%d)", sel.Name, sel.Quantity))
			} else {
				parts = append(parts, sel.Name)
			}
		}
		names = strings.Join(parts, ", ")
	}

	if clientName == "" {
		return names
	}
	return names + " - " + clientName
}
