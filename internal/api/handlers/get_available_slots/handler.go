package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/JoeyBiino/Siino-Client-Portal/internal/api/handlers"
	"github.com/JoeyBiino/Siino-Client-Portal/internal/domain"
	servicecatalog "github.com/JoeyBiino/Siino-Client-Portal/internal/infra/storage/servicecatalog"
	getAvailableSlots "github.com/JoeyBiino/Siino-Client-Portal/internal/usecase/get_available_slots"
)

const (
	msgInvalidTeamID    = "некорректный ID команды"
	msgMissingServiceID = "параметр serviceIds обязателен"
	msgInvalidServiceID = "некорректный ID услуги"
	msgMissingDate      = "параметр date обязателен"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUTCOffset = "параметр utcOffset обязателен"
	msgInvalidUTCOffset = "некорректное смещение UTC"
	msgServiceNotFound  = "услуга не найдена"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	catalog ServiceCatalog
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, catalog ServiceCatalog, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		catalog: catalog,
		logger:  logger,
	}
}

// Handle GET /api/v1/teams/{teamId}/available-slots
// Query params: serviceIds (required, CSV), date (required, YYYY-MM-DD),
// utcOffset (required, минуты от UTC).
// Количество одной услуги кодируется повторением её ID в serviceIds:
// каждое вхождение добавляет длительность услуги к суммарной.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	teamID, err := uuid.Parse(vars["teamId"])
	if err != nil {
		h.logger.Warn("GET /teams/{id}/available-slots - Invalid team ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTeamID)
		return
	}

	serviceIDs, err := parseServiceIDs(r.URL.Query().Get("serviceIds"))
	if err != nil {
		h.logger.Warn("GET /teams/{id}/available-slots - Invalid service IDs: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}
	if len(serviceIDs) == 0 {
		h.logger.Warn("GET /teams/{id}/available-slots - Missing service IDs")
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /teams/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /teams/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	offsetStr := r.URL.Query().Get("utcOffset")
	if offsetStr == "" {
		h.logger.Warn("GET /teams/{id}/available-slots - Missing UTC offset")
		handlers.RespondBadRequest(w, msgMissingUTCOffset)
		return
	}
	utcOffset, err := strconv.Atoi(offsetStr)
	if err != nil {
		h.logger.Warn("GET /teams/{id}/available-slots - Invalid UTC offset: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUTCOffset)
		return
	}

	// Слоты генерируются для первой услуги; при мульти-сервисном запросе
	// суммарная длительность учитывается фильтром ниже
	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		TeamID:           teamID,
		ServiceID:        serviceIDs[0],
		Date:             date,
		UTCOffsetMinutes: utcOffset,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /teams/{id}/available-slots - Service not found: team_id=%s, service_id=%s",
				teamID, serviceIDs[0])
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /teams/{id}/available-slots - Invalid input: team_id=%s, error=%v", teamID, err)
			handlers.RespondBadRequest(w, msgInvalidUTCOffset)

		default:
			h.logger.Error("GET /teams/{id}/available-slots - Failed to get slots: team_id=%s, error=%v", teamID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	slots := result.Slots
	if len(serviceIDs) > 1 {
		slots, err = h.filterForAggregateDuration(r, teamID, serviceIDs, slots, utcOffset)
		if err != nil {
			if errors.Is(err, servicecatalog.ErrServiceNotFound) {
				handlers.RespondNotFound(w, msgServiceNotFound)
			} else {
				h.logger.Error("GET /teams/{id}/available-slots - Failed to aggregate durations: team_id=%s, error=%v",
					teamID, err)
				handlers.RespondInternalError(w)
			}
			return
		}
	}

	h.logger.Info("GET /teams/{id}/available-slots - Slots retrieved successfully: team_id=%s, services=%d, slots_count=%d",
		teamID, len(serviceIDs), len(slots))
	handlers.RespondJSON(w, http.StatusOK, FromSlots(result, serviceIDs, slots))
}

// filterForAggregateDuration пересчитывает слоты под суммарную длительность
// всех выбранных услуг
func (h *Handler) filterForAggregateDuration(r *http.Request, teamID uuid.UUID, serviceIDs []uuid.UUID, slots []domain.TimeSlot, utcOffset int) ([]domain.TimeSlot, error) {
	totalMinutes := 0
	for _, serviceID := range serviceIDs {
		service, err := h.catalog.GetActiveByID(r.Context(), teamID, serviceID)
		if err != nil {
			h.logger.Warn("GET /teams/{id}/available-slots - Service lookup failed: team_id=%s, service_id=%s, error=%v",
				teamID, serviceID, err)
			return nil, err
		}
		totalMinutes += service.DurationMinutes
	}

	loc := domain.ClientLocation(utcOffset)
	return getAvailableSlots.FilterForTotalDuration(slots, totalMinutes, loc), nil
}

func parseServiceIDs(raw string) ([]uuid.UUID, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]uuid.UUID, 0, len(parts))
	for _, part := range parts {
		id, err := uuid.Parse(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
