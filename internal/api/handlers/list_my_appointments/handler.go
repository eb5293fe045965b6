package list_my_appointments

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers/list_appointments"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

const (
	msgUnauthorized = "пользователь не авторизован"
	msgInvalidQuery = "некорректные параметры фильтра"
)

type Handler struct {
	service   AppointmentService
	converter TimeConverter
	logger    Logger
}

func NewHandler(service AppointmentService, converter TimeConverter, logger Logger) *Handler {
	return &Handler{
		service:   service,
		converter: converter,
		logger:    logger,
	}
}

// Handle GET /api/v1/appointments/me
// Записи текущего пользователя, новые сверху
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requester, ok := middleware.GetRequester(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	req, err := list_appointments.ParseQuery(r, h.converter)
	if err != nil {
		h.logger.Warn("GET /appointments/me - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.ListMine(r.Context(), requester, req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			h.logger.Warn("GET /appointments/me - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery)
			return
		}
		h.logger.Error("GET /appointments/me - Failed to list appointments: user_id=%d, error=%v", requester.UserID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
