package reschedule_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-SchedulingService/internal/service/availability"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id domain.AppointmentID) (*domain.Appointment, error)
	HasOverlap(ctx context.Context, providerID domain.ProviderID, startAt, endAt time.Time, exclude *domain.AppointmentID) (bool, error)
	Reschedule(ctx context.Context, a *domain.Appointment) error
}

// AvailabilityService интерфейс расчета свободных слотов
type AvailabilityService interface {
	SlotsFor(ctx context.Context, providerID domain.ProviderID, date time.Time, opts availability.SlotsOptions) ([]types.TimeString, error)
}

// CatalogClient интерфейс клиента каталога провайдеров и услуг
type CatalogClient interface {
	GetProvider(ctx context.Context, providerID int64) (*catalogservice.Provider, error)
	GetService(ctx context.Context, serviceID int64) (*catalogservice.Service, error)
}

// TimeConverter переводит локальную дату и минуты в момент времени
type TimeConverter interface {
	ToInstant(date time.Time, minutes int) time.Time
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Metrics счетчик исходов переноса
type Metrics interface {
	ObserveAppointment(operation, outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
