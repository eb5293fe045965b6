package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/availability"
)

const (
	msgInvalidProviderID = "некорректный ID провайдера"
	msgMissingDate       = "дата обязательна"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidParams     = "некорректные параметры запроса"
	msgScheduleNotFound  = "расписание провайдера не найдено"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers/{providerId}/slots
// Query params: date (required, YYYY-MM-DD), slotMinutes, skipPast (по умолчанию true)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID, err := handlers.PathInt64(r, "providerId")
	if err != nil {
		h.logger.Warn("GET /providers/{id}/slots - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /providers/{id}/slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}
	date, err := handlers.ParseDate(dateStr)
	if err != nil {
		h.logger.Warn("GET /providers/{id}/slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	slotMinutes, err := handlers.QueryInt(r, "slotMinutes", 0)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}
	skipPast, err := handlers.QueryBool(r, "skipPast", true)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	slots, err := h.service.SlotsFor(r.Context(), domain.ProviderID(providerID), date, availability.SlotsOptions{
		SlotMinutes: slotMinutes,
		SkipPast:    skipPast,
	})
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrScheduleNotFound):
			h.logger.Warn("GET /providers/{id}/slots - Schedule not found: provider_id=%d", providerID)
			handlers.RespondNotFound(w, msgScheduleNotFound)

		case errors.Is(err, domain.ErrInvalidInput):
			h.logger.Warn("GET /providers/{id}/slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /providers/{id}/slots - Failed to get slots: provider_id=%d, error=%v", providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := make([]string, 0, len(slots))
	for _, s := range slots {
		response = append(response, s.String())
	}

	h.logger.Info("GET /providers/{id}/slots - Slots retrieved: provider_id=%d, date=%s, count=%d",
		providerID, dateStr, len(response))
	handlers.RespondJSON(w, http.StatusOK, response)
}
