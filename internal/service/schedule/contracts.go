package schedule

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// ScheduleRepository интерфейс репозитория недельных расписаний
type ScheduleRepository interface {
	Upsert(ctx context.Context, s *domain.WeeklySchedule) (*domain.WeeklySchedule, error)
	GetByProviderID(ctx context.Context, providerID domain.ProviderID) (*domain.WeeklySchedule, error)
}

// BlackoutRepository интерфейс репозитория блокировок
type BlackoutRepository interface {
	Create(ctx context.Context, b *domain.Blackout) (*domain.Blackout, error)
	Delete(ctx context.Context, id domain.BlackoutID) error
	ListByProviderAndDate(ctx context.Context, providerID domain.ProviderID, date time.Time) ([]*domain.Blackout, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
