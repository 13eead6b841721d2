package get_team_bookings

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/JoeyBiino/Siino-Client-Portal/internal/api/handlers"
	"github.com/JoeyBiino/Siino-Client-Portal/internal/service/bookings"
	"github.com/JoeyBiino/Siino-Client-Portal/internal/service/bookings/models"
)

const (
	msgInvalidTeamID = "некорректный ID команды"
	msgInvalidPeriod = "некорректный период, ожидается RFC3339"
	msgInvalidStatus = "некорректный статус"
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

// Handle GET /api/v1/teams/{teamId}/bookings
// Query params: from, to (RFC3339, опционально), status (опционально),
// onlyOccupying (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	teamID, err := uuid.Parse(vars["teamId"])
	if err != nil {
		h.logger.Warn("GET /teams/{id}/bookings - Invalid team ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTeamID)
		return
	}

	req := &models.GetTeamBookingsRequest{TeamID: teamID}
	query := r.URL.Query()

	if fromStr := query.Get("from"); fromStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			h.logger.Warn("GET /teams/{id}/bookings - Invalid from: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)
			return
		}
		req.From = &from
	}

	if toStr := query.Get("to"); toStr != "" {
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			h.logger.Warn("GET /teams/{id}/bookings - Invalid to: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)
			return
		}
		req.To = &to
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}
	req.OnlyOccupying = query.Get("onlyOccupying") == "true"

	result, err := h.service.GetTeamBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /teams/{id}/bookings - Invalid filter: team_id=%s", teamID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /teams/{id}/bookings - Failed to get bookings: team_id=%s, error=%v",
				teamID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /teams/{id}/bookings - Bookings retrieved successfully: team_id=%s, count=%d",
		teamID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
