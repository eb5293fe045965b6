package schedule

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var (
	// ErrScheduleNotFound возвращается, когда у провайдера нет расписания
	ErrScheduleNotFound = fmt.Errorf("schedule %w", domain.ErrNotFound)

	// ErrBlackoutNotFound возвращается, когда блокировка не найдена
	ErrBlackoutNotFound = fmt.Errorf("blackout %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда операция доступна только администратору
	ErrAccessDenied = fmt.Errorf("schedule: access %w", domain.ErrForbidden)

	// ErrInvalidSchedule возвращается при некорректном расписании или блокировке
	ErrInvalidSchedule = errors.New("invalid schedule")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("schedule: %w", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = fmt.Errorf("schedule.service: %w", domain.ErrInternal)
)
