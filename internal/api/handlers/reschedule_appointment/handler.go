package reschedule_appointment

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/usecase/reschedule_appointment"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

const (
	msgUnauthorized        = "пользователь не авторизован"
	msgInvalidID           = "некорректный ID записи"
	msgInvalidBody         = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput        = "некорректные данные переноса"
	msgNotFound            = "запись, провайдер или услуга не найдены"
	msgForbidden           = "нет прав на перенос записи"
	msgNotOffered          = "провайдер не оказывает выбранную услугу"
	msgDurationUnsupported = "длительность услуги не поддерживается расписанием"
	msgInactive            = "провайдер или услуга неактивны"
	msgInvalidTransition   = "перенести можно только запланированную запись"
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

// Handle PATCH /api/v1/appointments/{appointmentId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requester, ok := middleware.GetRequester(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	id, err := handlers.PathInt64(r, "appointmentId")
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var body RescheduleRequest
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	date, err := handlers.ParseDate(body.Date)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	req := &reschedule_appointment.Request{
		AppointmentID: domain.AppointmentID(id),
		Requester:     requester,
		Date:          date,
		StartTime:     types.TimeString(body.StartTime),
	}
	if body.ServiceID != nil {
		req.ServiceID = ptr.Ptr(domain.ServiceID(*body.ServiceID))
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reschedule_appointment.ErrServiceNotOffered):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Service not offered: %v", err)
			handlers.RespondBadRequest(w, msgNotOffered)

		case errors.Is(err, reschedule_appointment.ErrServiceDurationUnsupported):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Unsupported service duration: %v", err)
			handlers.RespondBadRequest(w, msgDurationUnsupported)

		case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidTimeFormat):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Not found: %v", err)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrInvalidTransition):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid transition: id=%d", id)
			handlers.RespondConflict(w, handlers.CodeInvalidTransition, msgInvalidTransition)

		case errors.Is(err, domain.ErrForbidden):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Access denied: id=%d, user_id=%d", id, requester.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, domain.ErrEntityInactive):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Inactive entity: %v", err)
			handlers.RespondBadRequest(w, msgInactive)

		case errors.Is(err, domain.ErrSlotJustTaken):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Slot just taken: id=%d", id)
			handlers.RespondConflict(w, handlers.CodeSlotJustTaken, msgSlotJustTaken)

		case errors.Is(err, domain.ErrSlotUnavailable):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Slot unavailable: id=%d, date=%s, time=%s",
				id, body.Date, body.StartTime)
			handlers.RespondConflict(w, handlers.CodeSlotUnavailable, msgSlotUnavailable)

		default:
			h.logger.Error("PATCH /appointments/{id}/reschedule - Failed to reschedule: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/reschedule - Appointment moved: id=%d, start_at=%s",
		id, result.StartAt.Format(time.RFC3339))
	handlers.RespondJSON(w, http.StatusOK, result)
}
