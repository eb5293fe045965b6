package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/appointment"
	catalogClient "github.com/m04kA/SMC-SchedulingService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
	"github.com/m04kA/SMC-SchedulingService/internal/service/availability"
	"github.com/m04kA/SMC-SchedulingService/pkg/metrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/tracing"
)

const operation = "book"

// UseCase use case для создания записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	availability    AvailabilityService
	catalogClient   CatalogClient
	converter       TimeConverter
	timeProvider    TimeProvider
	metrics         Metrics
	tracer          trace.Tracer
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	availability AvailabilityService,
	catalogClient CatalogClient,
	converter TimeConverter,
	timeProvider TimeProvider,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		availability:    availability,
		catalogClient:   catalogClient,
		converter:       converter,
		timeProvider:    timeProvider,
		metrics:         metrics,
		tracer:          tracing.Tracer("create_appointment"),
		logger:          logger,
	}
}

// Execute выполняет use case создания записи.
// Проверки по свободным слотам носят предварительный характер:
// окончательно конфликт отсекает уникальный индекс в БД
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.AppointmentResponse, error) {
	ctx, span := uc.tracer.Start(ctx, "create_appointment.Execute",
		trace.WithAttributes(
			attribute.Int64("provider.id", int64(req.ProviderID)),
			attribute.Int64("service.id", int64(req.ServiceID)),
			attribute.String("slot", req.Date.Format(domain.DateFormat)+" "+req.StartTime.String()),
		))
	defer span.End()

	result, err := uc.execute(ctx, req)
	uc.metrics.ObserveAppointment(operation, outcome(err))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return result, nil
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*models.AppointmentResponse, error) {
	uc.logger.Info("CreateAppointment: client=%d, provider=%d, service=%d, date=%s, time=%s",
		req.ClientID, req.ProviderID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Провайдер должен существовать и быть активным
	provider, err := uc.catalogClient.GetProvider(ctx, int64(req.ProviderID))
	if err != nil {
		if errors.Is(err, catalogClient.ErrProviderNotFound) {
			uc.logger.Warn("CreateAppointment: provider id=%d not found", req.ProviderID)
			return nil, ErrProviderNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get provider id=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
	}
	if !provider.IsActive() {
		uc.logger.Warn("CreateAppointment: provider id=%d is inactive", req.ProviderID)
		return nil, ErrProviderInactive
	}

	// 4. Услуга должна существовать и быть активной
	service, err := uc.catalogClient.GetService(ctx, int64(req.ServiceID))
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsActive() {
		uc.logger.Warn("CreateAppointment: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceInactive
	}

	// 5. Провайдер оказывает услугу, а ее длительность укладывается в границы слота
	if !provider.Offers(int64(req.ServiceID)) {
		uc.logger.Warn("CreateAppointment: provider id=%d does not offer service id=%d", req.ProviderID, req.ServiceID)
		return nil, ErrServiceNotOffered
	}
	duration := service.BookingMinutes()
	if !domain.ValidSlotMinutes(duration) {
		uc.logger.Warn("CreateAppointment: service id=%d has unsupported duration %d", req.ServiceID, duration)
		return nil, fmt.Errorf("%w: service id=%d lasts %d minutes, allowed [%d, %d]",
			ErrServiceDurationUnsupported, req.ServiceID, duration, domain.MinSlotMinutes, domain.MaxSlotMinutes)
	}

	// 6. Время должно быть среди свободных слотов с учетом длительности услуги
	slots, err := uc.availability.SlotsFor(ctx, req.ProviderID, req.Date, availability.SlotsOptions{
		SlotMinutes: duration,
		SkipPast:    true,
	})
	if err != nil {
		return nil, uc.mapAvailabilityError(err)
	}
	if !slices.Contains(slots, req.StartTime) {
		uc.logger.Warn("CreateAppointment: slot %s %s is not available for provider=%d",
			req.Date.Format(domain.DateFormat), req.StartTime, req.ProviderID)
		return nil, ErrSlotUnavailable
	}

	// 7. Момент начала строго в будущем
	startAt := uc.converter.ToInstant(req.Date, req.StartTime.MustMinutes())
	endAt := startAt.Add(time.Duration(duration) * time.Minute)
	if !startAt.After(now) {
		uc.logger.Warn("CreateAppointment: slot start %s is not in the future", startAt.Format(time.RFC3339))
		return nil, ErrSlotUnavailable
	}

	// 8. Интервал не пересекается с другими подтвержденными записями
	overlap, err := uc.appointmentRepo.HasOverlap(ctx, req.ProviderID, startAt, endAt, nil)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to check overlap: %v", err)
		return nil, fmt.Errorf("%w: failed to check overlap: %v", ErrInternal, err)
	}
	if overlap {
		uc.logger.Warn("CreateAppointment: interval %s-%s overlaps existing appointment",
			startAt.Format(time.RFC3339), endAt.Format(time.RFC3339))
		return nil, ErrSlotUnavailable
	}

	// 9. Сохраняем запись. Гонку двух клиентов решают ограничения БД
	created, err := uc.appointmentRepo.Create(ctx, &domain.Appointment{
		ClientID:   req.ClientID,
		ProviderID: req.ProviderID,
		ServiceID:  req.ServiceID,
		StartAt:    startAt,
		EndAt:      endAt,
		Status:     domain.StatusScheduled,
		Notes:      req.Notes,
	})
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrSlotTaken) {
			uc.logger.Warn("CreateAppointment: slot %s was just taken for provider=%d",
				startAt.Format(time.RFC3339), req.ProviderID)
			return nil, ErrSlotJustTaken
		}
		uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
		return nil, fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", created.ID)
	return models.FromDomainAppointment(created), nil
}

func (uc *UseCase) mapAvailabilityError(err error) error {
	switch {
	case errors.Is(err, availability.ErrScheduleNotFound):
		uc.logger.Warn("CreateAppointment: provider has no schedule")
		return ErrSlotUnavailable
	case errors.Is(err, availability.ErrInvalidInput):
		uc.logger.Warn("CreateAppointment: invalid availability input: %v", err)
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		uc.logger.Error("CreateAppointment: failed to get slots: %v", err)
		return fmt.Errorf("%w: failed to get slots: %v", ErrInternal, err)
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeBooked
	case errors.Is(err, domain.ErrSlotJustTaken):
		return metrics.OutcomeJustTaken
	case errors.Is(err, domain.ErrSlotUnavailable):
		return metrics.OutcomeUnavailable
	case errors.Is(err, domain.ErrInternal):
		return metrics.OutcomeFailed
	default:
		return metrics.OutcomeRejected
	}
}
