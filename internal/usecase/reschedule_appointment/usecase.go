package reschedule_appointment

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

const operation = "reschedule"

// UseCase use case для переноса записи на другое время
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
		tracer:          tracing.Tracer("reschedule_appointment"),
		logger:          logger,
	}
}

// Execute переносит запись, сохраняя ее id. Новое время проверяется
// так же, как при создании, но сама запись не считается занятостью
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.AppointmentResponse, error) {
	ctx, span := uc.tracer.Start(ctx, "reschedule_appointment.Execute",
		trace.WithAttributes(
			attribute.Int64("appointment.id", int64(req.AppointmentID)),
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
	uc.logger.Info("RescheduleAppointment: appointment=%d, date=%s, time=%s by user=%d",
		req.AppointmentID, req.Date.Format(domain.DateFormat), req.StartTime, req.Requester.UserID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем запись
	appointment, err := uc.appointmentRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("RescheduleAppointment: appointment id=%d not found", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("RescheduleAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}

	// 4. Переносить можно только подтвержденную запись
	if appointment.Status != domain.StatusScheduled {
		uc.logger.Warn("RescheduleAppointment: appointment id=%d has status %s", appointment.ID, appointment.Status)
		return nil, ErrInvalidTransition
	}

	// 5. Права как у отмены
	if !domain.CanManage(req.Requester.Role, appointment.IsOwner(req.Requester.UserID)) {
		uc.logger.Warn("RescheduleAppointment: access denied for user=%d to appointment id=%d",
			req.Requester.UserID, appointment.ID)
		return nil, ErrAccessDenied
	}

	// 6. Провайдер и услуга должны оставаться активными
	provider, err := uc.catalogClient.GetProvider(ctx, int64(appointment.ProviderID))
	if err != nil {
		if errors.Is(err, catalogClient.ErrProviderNotFound) {
			uc.logger.Warn("RescheduleAppointment: provider id=%d not found", appointment.ProviderID)
			return nil, ErrProviderNotFound
		}
		uc.logger.Error("RescheduleAppointment: failed to get provider id=%d: %v", appointment.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
	}
	if !provider.IsActive() {
		uc.logger.Warn("RescheduleAppointment: provider id=%d is inactive", appointment.ProviderID)
		return nil, ErrProviderInactive
	}

	serviceID := appointment.ServiceID
	if req.ServiceID != nil {
		serviceID = *req.ServiceID
	}
	service, err := uc.catalogClient.GetService(ctx, int64(serviceID))
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("RescheduleAppointment: service id=%d not found", serviceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("RescheduleAppointment: failed to get service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsActive() {
		uc.logger.Warn("RescheduleAppointment: service id=%d is inactive", serviceID)
		return nil, ErrServiceInactive
	}
	if !provider.Offers(int64(serviceID)) {
		uc.logger.Warn("RescheduleAppointment: provider id=%d does not offer service id=%d", appointment.ProviderID, serviceID)
		return nil, ErrServiceNotOffered
	}
	duration := service.BookingMinutes()
	if !domain.ValidSlotMinutes(duration) {
		uc.logger.Warn("RescheduleAppointment: service id=%d has unsupported duration %d", serviceID, duration)
		return nil, fmt.Errorf("%w: service id=%d lasts %d minutes, allowed [%d, %d]",
			ErrServiceDurationUnsupported, serviceID, duration, domain.MinSlotMinutes, domain.MaxSlotMinutes)
	}

	// 7. Новое время среди свободных слотов, собственная запись не занимает слот
	slots, err := uc.availability.SlotsFor(ctx, appointment.ProviderID, req.Date, availability.SlotsOptions{
		SlotMinutes: duration,
		SkipPast:    true,
		Exclude:     &appointment.ID,
	})
	if err != nil {
		return nil, uc.mapAvailabilityError(err)
	}
	if !slices.Contains(slots, req.StartTime) {
		uc.logger.Warn("RescheduleAppointment: slot %s %s is not available", req.Date.Format(domain.DateFormat), req.StartTime)
		return nil, ErrSlotUnavailable
	}

	startAt := uc.converter.ToInstant(req.Date, req.StartTime.MustMinutes())
	endAt := startAt.Add(time.Duration(duration) * time.Minute)
	if !startAt.After(now) {
		uc.logger.Warn("RescheduleAppointment: slot start %s is not in the future", startAt.Format(time.RFC3339))
		return nil, ErrSlotUnavailable
	}

	// 8. Пересечение с чужими записями
	overlap, err := uc.appointmentRepo.HasOverlap(ctx, appointment.ProviderID, startAt, endAt, &appointment.ID)
	if err != nil {
		uc.logger.Error("RescheduleAppointment: failed to check overlap: %v", err)
		return nil, fmt.Errorf("%w: failed to check overlap: %v", ErrInternal, err)
	}
	if overlap {
		uc.logger.Warn("RescheduleAppointment: interval %s-%s overlaps existing appointment",
			startAt.Format(time.RFC3339), endAt.Format(time.RFC3339))
		return nil, ErrSlotUnavailable
	}

	// 9. Обновляем запись на месте
	appointment.ServiceID = serviceID
	appointment.StartAt = startAt
	appointment.EndAt = endAt
	if err := uc.appointmentRepo.Reschedule(ctx, appointment); err != nil {
		switch {
		case errors.Is(err, appointmentRepo.ErrSlotTaken):
			uc.logger.Warn("RescheduleAppointment: slot %s was just taken", startAt.Format(time.RFC3339))
			return nil, ErrSlotJustTaken
		case errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
			uc.logger.Warn("RescheduleAppointment: appointment id=%d disappeared during update", appointment.ID)
			return nil, ErrAppointmentNotFound
		default:
			uc.logger.Error("RescheduleAppointment: failed to update appointment id=%d: %v", appointment.ID, err)
			return nil, fmt.Errorf("%w: failed to update appointment: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("RescheduleAppointment: successfully moved appointment id=%d to %s",
		appointment.ID, startAt.Format(time.RFC3339))
	return models.FromDomainAppointment(appointment), nil
}

func (uc *UseCase) mapAvailabilityError(err error) error {
	switch {
	case errors.Is(err, availability.ErrScheduleNotFound):
		uc.logger.Warn("RescheduleAppointment: provider has no schedule")
		return ErrSlotUnavailable
	case errors.Is(err, availability.ErrInvalidInput):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		uc.logger.Error("RescheduleAppointment: failed to get slots: %v", err)
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
