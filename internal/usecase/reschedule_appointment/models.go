package reschedule_appointment

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Request модель запроса на перенос записи
type Request struct {
	AppointmentID domain.AppointmentID
	Requester     domain.Requester
	ServiceID     *domain.ServiceID // новая услуга (опционально)
	Date          time.Time         // новая локальная дата
	StartTime     types.TimeString  // новое локальное время начала
}
