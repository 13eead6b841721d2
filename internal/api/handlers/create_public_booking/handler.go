package create_public_booking

import (
	"errors"
	"net/http"

	"github.com/JoeyBiino/Siino-Client-Portal/internal/api/handlers"
	createBooking "github.com/JoeyBiino/Siino-Client-Portal/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgSlotConflict       = "выбранный временной слот недоступен"
	msgServiceNotFound    = "услуга не найдена"
	msgMissingClientInfo  = "имя, email и телефон клиента обязательны"
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

// Handle POST /api/v1/public/bookings
// Гостевой поток: клиент находится по email или создаётся с кодом портала
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreatePublicBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /public/bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotConflict):
			h.logger.Warn("POST /public/bookings - Slot conflict: team_id=%s", req.TeamID)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /public/bookings - Service not found: team_id=%s, service_id=%s",
				req.TeamID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrMissingClientInfo):
			h.logger.Warn("POST /public/bookings - Missing client info: team_id=%s", req.TeamID)
			handlers.RespondBadRequest(w, msgMissingClientInfo)

		case errors.Is(err, createBooking.ErrLeadTimeViolation):
			h.logger.Warn("POST /public/bookings - Lead time violation: team_id=%s", req.TeamID)
			handlers.RespondBadRequest(w, msgLeadTimeViolation)

		case errors.Is(err, createBooking.ErrHorizonViolation):
			h.logger.Warn("POST /public/bookings - Horizon violation: team_id=%s", req.TeamID)
			handlers.RespondBadRequest(w, msgHorizonViolation)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /public/bookings - Invalid input: team_id=%s, error=%v", req.TeamID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /public/bookings - Failed to create booking: team_id=%s, error=%v",
				req.TeamID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /public/bookings - Booking created successfully: booking_id=%s, team_id=%s",
		result.ID, req.TeamID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
