package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	blackoutRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/blackout"
	scheduleRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-SchedulingService/internal/service/schedule/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Service сервис управления расписанием и блокировками провайдера.
// Изменять и просматривать настройки может только администратор
type Service struct {
	scheduleRepo ScheduleRepository
	blackoutRepo BlackoutRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	scheduleRepo ScheduleRepository,
	blackoutRepo BlackoutRepository,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		blackoutRepo: blackoutRepo,
		logger:       logger,
	}
}

// SetSchedule валидирует и полностью заменяет недельное расписание провайдера
func (s *Service) SetSchedule(ctx context.Context, requester domain.Requester, req *models.SetScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("SetSchedule: provider=%d, window=%s-%s, breaks=%d, days=%v by user=%d",
		req.ProviderID, req.StartTime, req.EndTime, len(req.Breaks), req.WorkingDays, requester.UserID)

	if err := s.checkAdmin(requester); err != nil {
		s.logger.Warn("SetSchedule: access denied for user=%d", requester.UserID)
		return nil, err
	}

	if req.ProviderID <= 0 {
		return nil, fmt.Errorf("%w: providerId must be positive", ErrInvalidInput)
	}

	schedule := req.ToDomain()
	schedule.Normalize()
	if err := schedule.Validate(); err != nil {
		s.logger.Warn("SetSchedule: validation failed for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidSchedule, err)
	}

	saved, err := s.scheduleRepo.Upsert(ctx, schedule)
	if err != nil {
		s.logger.Error("SetSchedule: repository error for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: SetSchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SetSchedule: successfully saved schedule for provider=%d", req.ProviderID)
	return models.FromDomainSchedule(saved), nil
}

// GetSchedule возвращает недельное расписание провайдера
func (s *Service) GetSchedule(ctx context.Context, requester domain.Requester, providerID domain.ProviderID) (*models.ScheduleResponse, error) {
	s.logger.Info("GetSchedule: provider=%d by user=%d", providerID, requester.UserID)

	if err := s.checkAdmin(requester); err != nil {
		s.logger.Warn("GetSchedule: access denied for user=%d", requester.UserID)
		return nil, err
	}

	schedule, err := s.scheduleRepo.GetByProviderID(ctx, providerID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("GetSchedule: schedule for provider=%d not found", providerID)
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("GetSchedule: repository error for provider=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSchedule(schedule), nil
}

// AddBlackout добавляет разовую блокировку на дату.
// Пересечения с рабочим окном и другими блокировками не проверяются
func (s *Service) AddBlackout(ctx context.Context, requester domain.Requester, req *models.AddBlackoutRequest) (*models.BlackoutResponse, error) {
	s.logger.Info("AddBlackout: provider=%d, date=%s, window=%s-%s by user=%d",
		req.ProviderID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime, requester.UserID)

	if err := s.checkAdmin(requester); err != nil {
		s.logger.Warn("AddBlackout: access denied for user=%d", requester.UserID)
		return nil, err
	}

	createdBy := requester.UserID
	blackout := &domain.Blackout{
		ProviderID: req.ProviderID,
		Date:       req.Date,
		StartTime:  types.TimeString(req.StartTime),
		EndTime:    types.TimeString(req.EndTime),
		Reason:     req.Reason,
		CreatedBy:  &createdBy,
	}
	if err := blackout.Validate(); err != nil {
		s.logger.Warn("AddBlackout: validation failed for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidSchedule, err)
	}

	created, err := s.blackoutRepo.Create(ctx, blackout)
	if err != nil {
		s.logger.Error("AddBlackout: repository error for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: AddBlackout - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AddBlackout: successfully created blackout id=%d for provider=%d", created.ID, req.ProviderID)
	return models.FromDomainBlackout(created), nil
}

// RemoveBlackout удаляет блокировку. Несуществующий id - ErrBlackoutNotFound
func (s *Service) RemoveBlackout(ctx context.Context, requester domain.Requester, id domain.BlackoutID) error {
	s.logger.Info("RemoveBlackout: blackout id=%d by user=%d", id, requester.UserID)

	if err := s.checkAdmin(requester); err != nil {
		s.logger.Warn("RemoveBlackout: access denied for user=%d", requester.UserID)
		return err
	}

	if err := s.blackoutRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, blackoutRepo.ErrBlackoutNotFound) {
			s.logger.Warn("RemoveBlackout: blackout id=%d not found", id)
			return ErrBlackoutNotFound
		}
		s.logger.Error("RemoveBlackout: repository error for blackout id=%d: %v", id, err)
		return fmt.Errorf("%w: RemoveBlackout - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("RemoveBlackout: successfully removed blackout id=%d", id)
	return nil
}

// ListBlackouts возвращает блокировки провайдера на дату
func (s *Service) ListBlackouts(ctx context.Context, requester domain.Requester, providerID domain.ProviderID, date time.Time) ([]*models.BlackoutResponse, error) {
	s.logger.Info("ListBlackouts: provider=%d, date=%s by user=%d",
		providerID, date.Format(domain.DateFormat), requester.UserID)

	if err := s.checkAdmin(requester); err != nil {
		s.logger.Warn("ListBlackouts: access denied for user=%d", requester.UserID)
		return nil, err
	}

	items, err := s.blackoutRepo.ListByProviderAndDate(ctx, providerID, date)
	if err != nil {
		s.logger.Error("ListBlackouts: repository error for provider=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: ListBlackouts - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBlackoutList(items), nil
}

func (s *Service) checkAdmin(requester domain.Requester) error {
	if requester.Role != domain.RoleAdmin {
		return ErrAccessDenied
	}
	return nil
}
