package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

const (
	msgUnauthorized        = "пользователь не авторизован"
	msgInvalidBody         = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput        = "некорректные данные записи"
	msgNotFound            = "провайдер или услуга не найдены"
	msgNotOffered          = "провайдер не оказывает выбранную услугу"
	msgDurationUnsupported = "длительность услуги не поддерживается расписанием"
	msgInactive            = "провайдер или услуга неактивны"
	msgSlotUnavailable     = "выбранное время недоступно"
	msgSlotJustTaken       = "выбранное время только что заняли, выберите другое"
)

type Handler struct {
	useCase UseCase
	logger  Logger
}

func NewHandler(useCase UseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requester, ok := middleware.GetRequester(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing requester")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var body CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	date, err := handlers.ParseDate(body.Date)
	if err != nil {
		h.logger.Warn("POST /appointments - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &create_appointment.Request{
		ClientID:   domain.ClientID(requester.UserID),
		ProviderID: domain.ProviderID(body.ProviderID),
		ServiceID:  domain.ServiceID(body.ServiceID),
		Date:       date,
		StartTime:  types.TimeString(body.StartTime),
		Notes:      body.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, create_appointment.ErrServiceNotOffered):
			h.logger.Warn("POST /appointments - Service not offered: %v", err)
			handlers.RespondBadRequest(w, msgNotOffered)

		case errors.Is(err, create_appointment.ErrServiceDurationUnsupported):
			h.logger.Warn("POST /appointments - Unsupported service duration: %v", err)
			handlers.RespondBadRequest(w, msgDurationUnsupported)

		case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidTimeFormat):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, domain.ErrEntityInactive):
			h.logger.Warn("POST /appointments - Inactive entity: %v", err)
			handlers.RespondBadRequest(w, msgInactive)

		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("POST /appointments - Not found: %v", err)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrSlotJustTaken):
			h.logger.Warn("POST /appointments - Slot just taken: provider_id=%d, date=%s, time=%s",
				body.ProviderID, body.Date, body.StartTime)
			handlers.RespondConflict(w, handlers.CodeSlotJustTaken, msgSlotJustTaken)

		case errors.Is(err, domain.ErrSlotUnavailable):
			h.logger.Warn("POST /appointments - Slot unavailable: provider_id=%d, date=%s, time=%s",
				body.ProviderID, body.Date, body.StartTime)
			handlers.RespondConflict(w, handlers.CodeSlotUnavailable, msgSlotUnavailable)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: id=%d, client_id=%d", result.ID, result.ClientID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
