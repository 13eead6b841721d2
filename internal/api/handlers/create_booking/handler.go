package create_booking

import (
	"errors"
	"net/http"

	"github.com/JoeyBiino/Siino-Client-Portal/internal/api/handlers"
	"github.com/JoeyBiino/Siino-Client-Portal/internal/api/middleware"
	createBooking "github.com/JoeyBiino/Siino-Client-Portal/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingClientID    = "отсутствует ID клиента"
	msgSlotConflict       = "выбранный временной слот недоступен"
	msgServiceNotFound    = "услуга не найдена"
	msgClientNotFound     = "клиент не найден"
	msgLeadTimeViolation  = "слишком поздно для бронирования этого слота"
	msgHorizonViolation   = "дата бронирования слишком далеко в будущем"
	msgInvalidInput       = "некорректные данные бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID, ok := middleware.GetClientID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing client ID")
		handlers.RespondUnauthorized(w, msgMissingClientID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(clientID))
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotConflict):
			h.logger.Warn("POST /bookings - Slot conflict: client_id=%s, team_id=%s", clientID, req.TeamID)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: team_id=%s, service_id=%s", req.TeamID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrClientNotFound):
			h.logger.Warn("POST /bookings - Client not found: client_id=%s", clientID)
			handlers.RespondNotFound(w, msgClientNotFound)

		case errors.Is(err, createBooking.ErrLeadTimeViolation):
			h.logger.Warn("POST /bookings - Lead time violation: client_id=%s, team_id=%s", clientID, req.TeamID)
			handlers.RespondBadRequest(w, msgLeadTimeViolation)

		case errors.Is(err, createBooking.ErrHorizonViolation):
			h.logger.Warn("POST /bookings - Horizon violation: client_id=%s, team_id=%s", clientID, req.TeamID)
			handlers.RespondBadRequest(w, msgHorizonViolation)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: client_id=%s, error=%v", clientID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: client_id=%s, team_id=%s, error=%v",
				clientID, req.TeamID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, client_id=%s, team_id=%s",
		result.ID, clientID, req.TeamID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
