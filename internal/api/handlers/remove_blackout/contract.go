package remove_blackout

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

type ScheduleService interface {
	RemoveBlackout(ctx context.Context, requester domain.Requester, id domain.BlackoutID) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
