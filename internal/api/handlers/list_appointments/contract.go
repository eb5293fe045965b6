package list_appointments

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
)

type AppointmentService interface {
	List(ctx context.Context, requester domain.Requester, req *models.ListRequest) (*models.AppointmentListResponse, error)
}

// TimeConverter переводит локальную дату провайдера в момент UTC
type TimeConverter interface {
	ToInstant(date time.Time, minutes int) time.Time
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
