package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-SchedulingService/pkg/tracing"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Service рассчитывает свободные слоты провайдера из расписания,
// блокировок и уже подтвержденных записей
type Service struct {
	scheduleRepo    ScheduleRepository
	blackoutRepo    BlackoutRepository
	appointmentRepo AppointmentRepository
	converter       TimeConverter
	timeProvider    TimeProvider
	defaultSlot     int
	tracer          trace.Tracer
	logger          Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(
	scheduleRepo ScheduleRepository,
	blackoutRepo BlackoutRepository,
	appointmentRepo AppointmentRepository,
	converter TimeConverter,
	timeProvider TimeProvider,
	defaultSlotMinutes int,
	logger Logger,
) *Service {
	if defaultSlotMinutes <= 0 {
		defaultSlotMinutes = domain.DefaultSlotMinutes
	}
	return &Service{
		scheduleRepo:    scheduleRepo,
		blackoutRepo:    blackoutRepo,
		appointmentRepo: appointmentRepo,
		converter:       converter,
		timeProvider:    timeProvider,
		defaultSlot:     defaultSlotMinutes,
		tracer:          tracing.Tracer("availability"),
		logger:          logger,
	}
}

// SlotsFor возвращает свободные начала слотов на локальную дату, по возрастанию.
// Каждый вызов строит новый срез
func (s *Service) SlotsFor(ctx context.Context, providerID domain.ProviderID, date time.Time, opts SlotsOptions) ([]types.TimeString, error) {
	ctx, span := s.tracer.Start(ctx, "availability.SlotsFor",
		trace.WithAttributes(
			attribute.Int64("provider.id", int64(providerID)),
			attribute.String("date", date.Format(domain.DateFormat)),
		))
	defer span.End()

	slotMinutes, err := s.slotMinutes(opts.SlotMinutes)
	if err != nil {
		return nil, err
	}

	y, m, d := date.Date()
	date = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	schedule, err := s.getSchedule(ctx, providerID)
	if err != nil {
		return nil, err
	}

	slots, err := s.slotsForDay(ctx, schedule, date, slotMinutes, opts, s.timeProvider.Now())
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("slots.count", len(slots)))
	return slots, nil
}

// MonthAvailability возвращает доступность по дням месяца. Для текущего месяца
// отсчет начинается с сегодняшнего дня, прошедшие слоты скрываются
func (s *Service) MonthAvailability(ctx context.Context, req MonthRequest) ([]DayAvailability, error) {
	ctx, span := s.tracer.Start(ctx, "availability.MonthAvailability",
		trace.WithAttributes(attribute.Int64("provider.id", int64(req.ProviderID))))
	defer span.End()

	now := s.timeProvider.Now()
	today := s.converter.Today(now)

	year, month := req.Year, req.Month
	if year == 0 {
		year = today.Year()
	}
	if month == 0 {
		month = int(today.Month())
	}
	if month < 1 || month > 12 || year < 1970 || year > 9999 {
		return nil, fmt.Errorf("%w: invalid year/month %d-%d", ErrInvalidInput, year, month)
	}

	s.logger.Info("MonthAvailability: provider=%d, month=%04d-%02d, includeSlots=%t",
		req.ProviderID, year, month, req.IncludeSlots)

	slotMinutes, err := s.slotMinutes(req.SlotMinutes)
	if err != nil {
		return nil, err
	}

	schedule, err := s.getSchedule(ctx, req.ProviderID)
	if err != nil {
		return nil, err
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	day := first
	if year == today.Year() && time.Month(month) == today.Month() {
		day = today
	}

	opts := SlotsOptions{SlotMinutes: slotMinutes, SkipPast: true}
	result := make([]DayAvailability, 0, 31)
	for ; day.Month() == first.Month(); day = day.AddDate(0, 0, 1) {
		slots, err := s.slotsForDay(ctx, schedule, day, slotMinutes, opts, now)
		if err != nil {
			return nil, err
		}

		item := DayAvailability{
			Date:      day,
			Available: len(slots) > 0,
			Status:    domain.UnavailableMarker,
		}
		if item.Available {
			item.Status = domain.AvailableMarker
		}
		if req.IncludeSlots {
			item.Slots = slots
		}
		result = append(result, item)
	}

	return result, nil
}

// slotsForDay применяет к сетке расписания рабочие дни, блокировки,
// занятые записи и фильтр прошедшего времени
func (s *Service) slotsForDay(
	ctx context.Context,
	schedule *domain.WeeklySchedule,
	date time.Time,
	slotMinutes int,
	opts SlotsOptions,
	now time.Time,
) ([]types.TimeString, error) {
	providerID := schedule.ProviderID

	// 1. Нерабочий день
	if !schedule.IsWorkingDay(date.Weekday()) {
		return []types.TimeString{}, nil
	}

	// 2. Прошедшие даты целиком в прошлом
	today := s.converter.Today(now)
	if opts.SkipPast && date.Before(today) {
		return []types.TimeString{}, nil
	}

	// 3. Сетка из расписания
	grid := schedule.RawSlotGrid(slotMinutes)
	if len(grid) == 0 {
		return []types.TimeString{}, nil
	}

	// 4. Блокировки на дату
	blackouts, err := s.blackoutRepo.ListByProviderAndDate(ctx, providerID, date)
	if err != nil {
		s.logger.Error("SlotsFor: failed to get blackouts for provider=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: failed to get blackouts: %v", ErrInternal, err)
	}

	// 5. Занятые начала слотов
	dayStart, dayEnd := s.converter.DayBounds(date)
	appointments, err := s.appointmentRepo.ListScheduledInRange(ctx, providerID, dayStart, dayEnd)
	if err != nil {
		s.logger.Error("SlotsFor: failed to get appointments for provider=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}
	booked := make(map[int]struct{}, len(appointments))
	for _, a := range appointments {
		if opts.Exclude != nil && a.ID == *opts.Exclude {
			continue
		}
		booked[s.converter.LocalMinutes(a.StartAt)] = struct{}{}
	}

	// 6. Для сегодняшней даты скрываем слоты, которые уже начались
	cutoff := -1
	if opts.SkipPast && date.Equal(today) {
		cutoff = s.converter.LocalMinutes(now)
	}

	result := make([]types.TimeString, 0, len(grid))
	for _, t := range grid {
		if t <= cutoff {
			continue
		}
		if _, ok := booked[t]; ok {
			continue
		}
		if isBlackedOut(t, slotMinutes, blackouts) {
			continue
		}
		ts, err := types.TimeFromMinutes(t)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		result = append(result, ts)
	}

	return result, nil
}

func (s *Service) getSchedule(ctx context.Context, providerID domain.ProviderID) (*domain.WeeklySchedule, error) {
	schedule, err := s.scheduleRepo.GetByProviderID(ctx, providerID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("SlotsFor: schedule for provider=%d not found", providerID)
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("SlotsFor: failed to get schedule for provider=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}
	return schedule, nil
}

func (s *Service) slotMinutes(requested int) (int, error) {
	if requested == 0 {
		return s.defaultSlot, nil
	}
	if !domain.ValidSlotMinutes(requested) {
		return 0, fmt.Errorf("%w: slotMinutes must be in [%d, %d]",
			ErrInvalidInput, domain.MinSlotMinutes, domain.MaxSlotMinutes)
	}
	return requested, nil
}

func isBlackedOut(start, slotMinutes int, blackouts []*domain.Blackout) bool {
	slot := domain.Interval{Start: start, End: start + slotMinutes}
	for _, b := range blackouts {
		if slot.Overlaps(b.Interval()) {
			return true
		}
	}
	return false
}
