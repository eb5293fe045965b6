package catalogservice

import (
	"slices"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// EntityStatus статус сущности каталога
type EntityStatus string

const (
	StatusActive   EntityStatus = "ACTIVE"
	StatusInactive EntityStatus = "INACTIVE"
)

// Provider провайдер услуг в каталоге
type Provider struct {
	ID         int64        `json:"id"`
	Name       string       `json:"name"`
	Status     EntityStatus `json:"status"`
	ServiceIDs []int64      `json:"serviceIds,omitempty"` // пусто - каталог не ограничивает услуги
}

// IsActive true, если провайдер принимает записи
func (p *Provider) IsActive() bool {
	return p.Status == StatusActive
}

// Offers true, если провайдер оказывает услугу
func (p *Provider) Offers(serviceID int64) bool {
	if len(p.ServiceIDs) == 0 {
		return true
	}
	return slices.Contains(p.ServiceIDs, serviceID)
}

// Service услуга в каталоге
type Service struct {
	ID              int64        `json:"id"`
	Name            string       `json:"name"`
	Status          EntityStatus `json:"status"`
	DurationMinutes *int         `json:"durationMinutes,omitempty"`
}

// IsActive true, если услугу можно забронировать
func (s *Service) IsActive() bool {
	return s.Status == StatusActive
}

// BookingMinutes длительность записи на услугу, без своей длительности - слот по умолчанию
func (s *Service) BookingMinutes() int {
	if s.DurationMinutes == nil || *s.DurationMinutes <= 0 {
		return domain.DefaultSlotMinutes
	}
	return *s.DurationMinutes
}
