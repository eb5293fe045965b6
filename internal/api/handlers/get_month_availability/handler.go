package get_month_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/availability"
)

const (
	msgInvalidProviderID = "некорректный ID провайдера"
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

// Handle GET /api/v1/providers/{providerId}/month-availability
// Query params: year, month (по умолчанию текущий месяц), includeSlots, slotMinutes
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID, err := handlers.PathInt64(r, "providerId")
	if err != nil {
		h.logger.Warn("GET /providers/{id}/month-availability - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	req := availability.MonthRequest{ProviderID: domain.ProviderID(providerID)}
	if req.Year, err = handlers.QueryInt(r, "year", 0); err != nil {
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}
	if req.Month, err = handlers.QueryInt(r, "month", 0); err != nil {
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}
	if req.SlotMinutes, err = handlers.QueryInt(r, "slotMinutes", 0); err != nil {
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}
	if req.IncludeSlots, err = handlers.QueryBool(r, "includeSlots", false); err != nil {
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	days, err := h.service.MonthAvailability(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrScheduleNotFound):
			h.logger.Warn("GET /providers/{id}/month-availability - Schedule not found: provider_id=%d", providerID)
			handlers.RespondNotFound(w, msgScheduleNotFound)

		case errors.Is(err, domain.ErrInvalidInput):
			h.logger.Warn("GET /providers/{id}/month-availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /providers/{id}/month-availability - Failed: provider_id=%d, error=%v", providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /providers/{id}/month-availability - Retrieved %d days for provider_id=%d", len(days), providerID)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(days, req.IncludeSlots))
}
