package resolve_portal_access

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/JoeyBiino/Siino-Client-Portal/internal/api/handlers"
	"github.com/JoeyBiino/Siino-Client-Portal/internal/domain"
	"github.com/JoeyBiino/Siino-Client-Portal/internal/service/bookings"
)

const (
	msgInvalidCode = "некорректный код портала"
	msgNotFound    = "код портала не найден"
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

// Handle GET /api/v1/portal-access/{portalCode}
//
// Код портала выступает учётными данными, поэтому сам код в логи не пишется
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	code := strings.ToUpper(strings.TrimSpace(vars["portalCode"]))
	if len(code) != domain.PortalCodeLength {
		h.logger.Warn("GET /portal-access/{code} - Invalid portal code length: %d", len(code))
		handlers.RespondBadRequest(w, msgInvalidCode)
		return
	}

	access, err := h.service.ResolvePortalAccess(r.Context(), code)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrClientNotFound):
			h.logger.Warn("GET /portal-access/{code} - Portal code not resolved")
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /portal-access/{code} - Failed to resolve portal code: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /portal-access/{code} - Portal code resolved: client_id=%s", access.ClientID)
	handlers.RespondJSON(w, http.StatusOK, access)
}
