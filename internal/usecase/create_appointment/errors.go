package create_appointment

import (
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var (
	// ErrProviderNotFound возвращается, когда провайдер не найден в каталоге
	ErrProviderNotFound = fmt.Errorf("create_appointment: provider %w", domain.ErrNotFound)

	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = fmt.Errorf("create_appointment: service %w", domain.ErrNotFound)

	// ErrProviderInactive возвращается, когда провайдер не принимает записи
	ErrProviderInactive = fmt.Errorf("create_appointment: provider %w", domain.ErrEntityInactive)

	// ErrServiceInactive возвращается, когда услуга отключена
	ErrServiceInactive = fmt.Errorf("create_appointment: service %w", domain.ErrEntityInactive)

	// ErrSlotUnavailable возвращается, когда слота нет в сетке, он в прошлом или пересекается с записью
	ErrSlotUnavailable = fmt.Errorf("create_appointment: %w", domain.ErrSlotUnavailable)

	// ErrSlotJustTaken возвращается, когда слот заняли конкурентно
	ErrSlotJustTaken = fmt.Errorf("create_appointment: %w", domain.ErrSlotJustTaken)

	// ErrServiceNotOffered возвращается, когда провайдер не оказывает выбранную услугу
	ErrServiceNotOffered = fmt.Errorf("create_appointment: service is not offered by provider: %w", domain.ErrInvalidInput)

	// ErrServiceDurationUnsupported возвращается, когда длительность услуги из каталога
	// вне границ [MinSlotMinutes, MaxSlotMinutes]
	ErrServiceDurationUnsupported = fmt.Errorf("create_appointment: unsupported service duration: %w", domain.ErrInvalidInput)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("create_appointment: %w", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("create_appointment: %w", domain.ErrInternal)
)
