package appointments

import (
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = fmt.Errorf("appointment %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда у пользователя нет прав на запись
	ErrAccessDenied = fmt.Errorf("appointment access %w", domain.ErrForbidden)

	// ErrInvalidTransition возвращается, когда запись уже не в статусе SCHEDULED
	ErrInvalidTransition = fmt.Errorf("appointment: %w", domain.ErrInvalidTransition)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("appointments: %w", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = fmt.Errorf("appointments service: %w", domain.ErrInternal)
)
