package list_services

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/JoeyBiino/Siino-Client-Portal/internal/api/handlers"
)

const (
	msgInvalidTeamID = "некорректный ID команды"
)

type Handler struct {
	catalog ServiceCatalog
	logger  Logger
}

func NewHandler(catalog ServiceCatalog, logger Logger) *Handler {
	return &Handler{
		catalog: catalog,
		logger:  logger,
	}
}

// Handle GET /api/v1/teams/{teamId}/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	teamID, err := uuid.Parse(vars["teamId"])
	if err != nil {
		h.logger.Warn("GET /teams/{id}/services - Invalid team ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTeamID)
		return
	}

	services, err := h.catalog.ListActiveByTeam(r.Context(), teamID)
	if err != nil {
		h.logger.Error("GET /teams/{id}/services - Failed to list services: team_id=%s, error=%v", teamID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /teams/{id}/services - Services retrieved successfully: team_id=%s, count=%d",
		teamID, len(services))
	handlers.RespondJSON(w, http.StatusOK, FromDomainServices(services))
}
