package get_client_bookings

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/JoeyBiino/Siino-Client-Portal/internal/api/handlers"
	"github.com/JoeyBiino/Siino-Client-Portal/internal/api/middleware"
	"github.com/JoeyBiino/Siino-Client-Portal/internal/service/bookings"
	"github.com/JoeyBiino/Siino-Client-Portal/internal/service/bookings/models"
)

const (
	msgInvalidClientID = "некорректный ID клиента"
	msgMissingClientID = "отсутствует ID клиента"
	msgClientNotFound  = "клиент не найден"
	msgForbidden       = "доступ запрещен"
	msgInvalidStatus   = "некорректный статус"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/clients/{clientId}/bookings
// Query params: status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	clientID, err := uuid.Parse(vars["clientId"])
	if err != nil {
		h.logger.Warn("GET /clients/{id}/bookings - Invalid client ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClientID)
		return
	}

	// Портальный клиент видит только собственную историю
	authClientID, ok := middleware.GetClientID(r.Context())
	if !ok {
		h.logger.Warn("GET /clients/{id}/bookings - Missing client ID")
		handlers.RespondUnauthorized(w, msgMissingClientID)
		return
	}
	if authClientID != clientID {
		h.logger.Warn("GET /clients/{id}/bookings - Access denied: client_id=%s, auth_client_id=%s",
			clientID, authClientID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	req := &models.GetClientBookingsRequest{ClientID: clientID}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.GetClientBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrClientNotFound):
			h.logger.Warn("GET /clients/{id}/bookings - Client not found: client_id=%s", clientID)
			handlers.RespondNotFound(w, msgClientNotFound)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /clients/{id}/bookings - Invalid status: client_id=%s", clientID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /clients/{id}/bookings - Failed to get bookings: client_id=%s, error=%v",
				clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /clients/{id}/bookings - Bookings retrieved successfully: client_id=%s, count=%d",
		clientID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
