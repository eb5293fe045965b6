package appointments

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
)

// Service сервис для чтения записей и переходов статуса
type Service struct {
	appointmentRepo AppointmentRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// Get возвращает запись владельцу или привилегированному пользователю
func (s *Service) Get(ctx context.Context, requester domain.Requester, id domain.AppointmentID) (*models.AppointmentResponse, error) {
	s.logger.Info("Get: fetching appointment id=%d for user=%d", id, requester.UserID)

	appointment, err := s.getAppointment(ctx, "Get", id)
	if err != nil {
		return nil, err
	}

	if !domain.CanManage(requester.Role, appointment.IsOwner(requester.UserID)) {
		s.logger.Warn("Get: access denied for user=%d to appointment id=%d", requester.UserID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainAppointment(appointment), nil
}

// List возвращает страницу записей по фильтру.
// Клиент видит только свои записи: фильтр clientId подменяется на его id
func (s *Service) List(ctx context.Context, requester domain.Requester, req *models.ListRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("List: fetching appointments for user=%d, role=%s", requester.UserID, requester.Role)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter for user=%d: %v", requester.UserID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	if !requester.Role.IsPrivileged() {
		self := domain.ClientID(requester.UserID)
		filter.ClientID = &self
	}

	return s.list(ctx, "List", filter, req.Pagination())
}

// ListMine возвращает записи самого пользователя, новые сверху
func (s *Service) ListMine(ctx context.Context, requester domain.Requester, req *models.ListRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("ListMine: fetching appointments of user=%d", requester.UserID)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListMine: invalid filter for user=%d: %v", requester.UserID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	self := domain.ClientID(requester.UserID)
	filter.ClientID = &self
	filter.SortDesc = true

	return s.list(ctx, "ListMine", filter, req.Pagination())
}

// Cancel отменяет запись. Отменить может владелец или привилегированный пользователь
func (s *Service) Cancel(ctx context.Context, requester domain.Requester, id domain.AppointmentID, req *models.CancelRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Cancel: cancelling appointment id=%d by user=%d", id, requester.UserID)

	if req.Reason != nil && utf8.RuneCountInString(*req.Reason) > domain.MaxCancelReasonLength {
		return nil, fmt.Errorf("%w: reason is longer than %d", ErrInvalidInput, domain.MaxCancelReasonLength)
	}

	appointment, err := s.getAppointment(ctx, "Cancel", id)
	if err != nil {
		return nil, err
	}

	if appointment.Status != domain.StatusScheduled {
		s.logger.Warn("Cancel: appointment id=%d cannot be canceled, status=%s", id, appointment.Status)
		return nil, ErrInvalidTransition
	}

	if !domain.CanManage(requester.Role, appointment.IsOwner(requester.UserID)) {
		s.logger.Warn("Cancel: access denied for user=%d to appointment id=%d", requester.UserID, id)
		return nil, ErrAccessDenied
	}

	if err := appointment.Cancel(s.timeProvider.Now(), req.Reason); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTransition, err)
	}

	if err := s.save(ctx, "Cancel", appointment); err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: successfully canceled appointment id=%d", id)
	return models.FromDomainAppointment(appointment), nil
}

// Complete отмечает запись выполненной. Доступно только привилегированным ролям
func (s *Service) Complete(ctx context.Context, requester domain.Requester, id domain.AppointmentID) (*models.AppointmentResponse, error) {
	s.logger.Info("Complete: completing appointment id=%d by user=%d", id, requester.UserID)

	appointment, err := s.getAppointment(ctx, "Complete", id)
	if err != nil {
		return nil, err
	}

	if appointment.Status != domain.StatusScheduled {
		s.logger.Warn("Complete: appointment id=%d cannot be completed, status=%s", id, appointment.Status)
		return nil, ErrInvalidTransition
	}

	if !requester.Role.IsPrivileged() {
		s.logger.Warn("Complete: access denied for user=%d, role=%s", requester.UserID, requester.Role)
		return nil, ErrAccessDenied
	}

	if err := appointment.Complete(s.timeProvider.Now()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTransition, err)
	}

	if err := s.save(ctx, "Complete", appointment); err != nil {
		return nil, err
	}

	s.logger.Info("Complete: successfully completed appointment id=%d", id)
	return models.FromDomainAppointment(appointment), nil
}

// Вспомогательные методы

func (s *Service) getAppointment(ctx context.Context, op string, id domain.AppointmentID) (*domain.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return appointment, nil
}

func (s *Service) save(ctx context.Context, op string, appointment *domain.Appointment) error {
	if err := s.appointmentRepo.UpdateStatus(ctx, appointment); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found during update", op, appointment.ID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, appointment.ID, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return nil
}

func (s *Service) list(ctx context.Context, op string, filter domain.AppointmentFilter, page domain.Pagination) (*models.AppointmentListResponse, error) {
	items, total, err := s.appointmentRepo.List(ctx, filter, page)
	if err != nil {
		s.logger.Error("%s: repository error: %v", op, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	s.logger.Info("%s: fetched %d of %d appointments", op, len(items), total)
	return models.FromDomainPage(&domain.AppointmentPage{
		Items: items,
		Total: total,
		Page:  page.Page,
		Limit: page.Limit,
	}), nil
}
