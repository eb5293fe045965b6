package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// ScheduleRepository интерфейс репозитория недельных расписаний
type ScheduleRepository interface {
	GetByProviderID(ctx context.Context, providerID domain.ProviderID) (*domain.WeeklySchedule, error)
}

// BlackoutRepository интерфейс репозитория блокировок
type BlackoutRepository interface {
	ListByProviderAndDate(ctx context.Context, providerID domain.ProviderID, date time.Time) ([]*domain.Blackout, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// ListScheduledInRange записи SCHEDULED провайдера с началом в [from, to)
	ListScheduledInRange(ctx context.Context, providerID domain.ProviderID, from, to time.Time) ([]*domain.Appointment, error)
}

// TimeConverter переводит локальное время провайдера в абсолютное и обратно
type TimeConverter interface {
	LocalMinutes(t time.Time) int
	DayBounds(date time.Time) (time.Time, time.Time)
	Today(now time.Time) time.Time
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
