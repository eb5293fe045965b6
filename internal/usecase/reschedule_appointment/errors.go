package reschedule_appointment

import (
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = fmt.Errorf("reschedule_appointment: appointment %w", domain.ErrNotFound)

	// ErrServiceNotFound возвращается, когда новая услуга не найдена в каталоге
	ErrServiceNotFound = fmt.Errorf("reschedule_appointment: service %w", domain.ErrNotFound)

	// ErrProviderNotFound возвращается, когда провайдер записи пропал из каталога
	ErrProviderNotFound = fmt.Errorf("reschedule_appointment: provider %w", domain.ErrNotFound)

	// ErrProviderInactive возвращается, когда провайдер больше не принимает записи
	ErrProviderInactive = fmt.Errorf("reschedule_appointment: provider %w", domain.ErrEntityInactive)

	// ErrServiceInactive возвращается, когда услуга отключена
	ErrServiceInactive = fmt.Errorf("reschedule_appointment: service %w", domain.ErrEntityInactive)

	// ErrInvalidTransition возвращается, когда запись уже не в статусе SCHEDULED
	ErrInvalidTransition = fmt.Errorf("reschedule_appointment: %w", domain.ErrInvalidTransition)

	// ErrAccessDenied возвращается, когда пользователь не владелец и не привилегирован
	ErrAccessDenied = fmt.Errorf("reschedule_appointment: %w", domain.ErrForbidden)

	// ErrSlotUnavailable возвращается, когда новое время недоступно
	ErrSlotUnavailable = fmt.Errorf("reschedule_appointment: %w", domain.ErrSlotUnavailable)

	// ErrSlotJustTaken возвращается, когда новое время заняли конкурентно
	ErrSlotJustTaken = fmt.Errorf("reschedule_appointment: %w", domain.ErrSlotJustTaken)

	// ErrServiceNotOffered возвращается, когда провайдер не оказывает выбранную услугу
	ErrServiceNotOffered = fmt.Errorf("reschedule_appointment: service is not offered by provider: %w", domain.ErrInvalidInput)

	// ErrServiceDurationUnsupported возвращается, когда длительность услуги из каталога
	// вне границ [MinSlotMinutes, MaxSlotMinutes]
	ErrServiceDurationUnsupported = fmt.Errorf("reschedule_appointment: unsupported service duration: %w", domain.ErrInvalidInput)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("reschedule_appointment: %w", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("reschedule_appointment: %w", domain.ErrInternal)
)
