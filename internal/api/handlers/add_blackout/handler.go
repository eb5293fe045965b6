package add_blackout

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/schedule"
	"github.com/m04kA/SMC-SchedulingService/internal/service/schedule/models"
)

const (
	msgUnauthorized      = "пользователь не авторизован"
	msgForbidden         = "доступно только администратору"
	msgInvalidProviderID = "некорректный ID провайдера"
	msgInvalidBody       = "некорректное тело запроса"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidBlackout   = "некорректный интервал блокировки"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/providers/{providerId}/blackouts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requester, ok := middleware.GetRequester(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	providerID, err := handlers.PathInt64(r, "providerId")
	if err != nil {
		h.logger.Warn("POST /providers/{id}/blackouts - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	var body AddBlackoutRequest
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("POST /providers/{id}/blackouts - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	date, err := handlers.ParseDate(body.Date)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.AddBlackout(r.Context(), requester, &models.AddBlackoutRequest{
		ProviderID: domain.ProviderID(providerID),
		Date:       date,
		StartTime:  body.StartTime,
		EndTime:    body.EndTime,
		Reason:     body.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			h.logger.Warn("POST /providers/{id}/blackouts - Access denied: user_id=%d", requester.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, schedule.ErrInvalidSchedule), errors.Is(err, domain.ErrInvalidInput):
			h.logger.Warn("POST /providers/{id}/blackouts - Invalid blackout: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBlackout)

		default:
			h.logger.Error("POST /providers/{id}/blackouts - Failed to add blackout: provider_id=%d, error=%v", providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /providers/{id}/blackouts - Blackout created: id=%d, provider_id=%d", result.ID, providerID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
