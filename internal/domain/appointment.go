package domain

import (
	"fmt"
	"strings"
	"time"
)

// AppointmentStatus статус записи
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "SCHEDULED"
	StatusCompleted AppointmentStatus = "COMPLETED"
	StatusCanceled  AppointmentStatus = "CANCELED"
)

// ParseAppointmentStatus парсит статус без учета регистра
func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	switch AppointmentStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusScheduled:
		return StatusScheduled, nil
	case StatusCompleted:
		return StatusCompleted, nil
	case StatusCanceled:
		return StatusCanceled, nil
	default:
		return "", fmt.Errorf("%w: unknown appointment status %q", ErrInvalidInput, s)
	}
}

// IsTerminal COMPLETED и CANCELED не имеют исходящих переходов
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCanceled
}

// Appointment запись клиента к провайдеру. Физически не удаляется
type Appointment struct {
	ID           AppointmentID
	ClientID     ClientID
	ProviderID   ProviderID
	ServiceID    ServiceID
	StartAt      time.Time
	EndAt        time.Time
	Status       AppointmentStatus
	Notes        *string
	CancelReason *string
	CanceledAt   *time.Time
	CompletedAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsOwner проверяет, что пользователь является клиентом записи
func (a *Appointment) IsOwner(userID UserID) bool {
	return int64(a.ClientID) == int64(userID)
}

// Overlaps проверяет пересечение [StartAt, EndAt) с [startAt, endAt)
func (a *Appointment) Overlaps(startAt, endAt time.Time) bool {
	return a.StartAt.Before(endAt) && a.EndAt.After(startAt)
}

// DurationMinutes длительность записи
func (a *Appointment) DurationMinutes() int {
	return int(a.EndAt.Sub(a.StartAt) / time.Minute)
}

// CanTransitionTo разрешены только SCHEDULED -> COMPLETED и SCHEDULED -> CANCELED
func (a *Appointment) CanTransitionTo(target AppointmentStatus) bool {
	return a.Status == StatusScheduled && target.IsTerminal()
}

// Cancel переводит запись в CANCELED. Причина записывается, только если передана
func (a *Appointment) Cancel(now time.Time, reason *string) error {
	if !a.CanTransitionTo(StatusCanceled) {
		return fmt.Errorf("%w: cannot cancel appointment in status %s", ErrInvalidTransition, a.Status)
	}
	a.Status = StatusCanceled
	if reason != nil && strings.TrimSpace(*reason) != "" {
		r := strings.TrimSpace(*reason)
		a.CancelReason = &r
	}
	at := now
	a.CanceledAt = &at
	a.UpdatedAt = now
	return nil
}

// Complete переводит запись в COMPLETED
func (a *Appointment) Complete(now time.Time) error {
	if !a.CanTransitionTo(StatusCompleted) {
		return fmt.Errorf("%w: cannot complete appointment in status %s", ErrInvalidTransition, a.Status)
	}
	a.Status = StatusCompleted
	at := now
	a.CompletedAt = &at
	a.UpdatedAt = now
	return nil
}

// AppointmentFilter фильтр списка записей
type AppointmentFilter struct {
	ProviderID *ProviderID
	ClientID   *ClientID
	From       *time.Time // startAt >= From
	To         *time.Time // startAt < To
	Status     *AppointmentStatus
	SortDesc   bool
}

// Pagination параметры страницы
type Pagination struct {
	Page  int
	Limit int
}

// Normalize подставляет значения по умолчанию и ограничивает limit
func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Offset смещение для SQL
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// AppointmentPage страница списка записей
type AppointmentPage struct {
	Items []*Appointment
	Total int
	Page  int
	Limit int
}
