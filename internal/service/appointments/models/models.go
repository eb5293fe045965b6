package models

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Request модели

// CancelRequest запрос на отмену записи
type CancelRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// ListRequest фильтр списка записей
type ListRequest struct {
	ProviderID *int64
	ClientID   *int64
	From       *time.Time
	To         *time.Time
	Status     *string
	SortDesc   bool
	Page       int
	Limit      int
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListRequest) ToDomainFilter() (domain.AppointmentFilter, error) {
	filter := domain.AppointmentFilter{
		From:     r.From,
		To:       r.To,
		SortDesc: r.SortDesc,
	}
	if r.ProviderID != nil {
		id := domain.ProviderID(*r.ProviderID)
		filter.ProviderID = &id
	}
	if r.ClientID != nil {
		id := domain.ClientID(*r.ClientID)
		filter.ClientID = &id
	}
	if r.Status != nil {
		status, err := domain.ParseAppointmentStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}
	return filter, nil
}

// Pagination параметры страницы из запроса
func (r *ListRequest) Pagination() domain.Pagination {
	return domain.Pagination{Page: r.Page, Limit: r.Limit}.Normalize()
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID              int64      `json:"id"`
	ClientID        int64      `json:"clientId"`
	ProviderID      int64      `json:"providerId"`
	ServiceID       int64      `json:"serviceId"`
	StartAt         time.Time  `json:"startAt"`
	EndAt           time.Time  `json:"endAt"`
	DurationMinutes int        `json:"durationMinutes"`
	Status          string     `json:"status"`
	Notes           *string    `json:"notes,omitempty"`
	CancelReason    *string    `json:"cancelReason,omitempty"`
	CanceledAt      *time.Time `json:"canceledAt,omitempty"`
	CompletedAt     *time.Time `json:"completedAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// AppointmentListResponse страница записей
type AppointmentListResponse struct {
	Items []AppointmentResponse `json:"items"`
	Total int                   `json:"total"`
	Page  int                   `json:"page"`
	Limit int                   `json:"limit"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}
	return &AppointmentResponse{
		ID:              int64(a.ID),
		ClientID:        int64(a.ClientID),
		ProviderID:      int64(a.ProviderID),
		ServiceID:       int64(a.ServiceID),
		StartAt:         a.StartAt.UTC(),
		EndAt:           a.EndAt.UTC(),
		DurationMinutes: a.DurationMinutes(),
		Status:          string(a.Status),
		Notes:           a.Notes,
		CancelReason:    a.CancelReason,
		CanceledAt:      a.CanceledAt,
		CompletedAt:     a.CompletedAt,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// FromDomainPage конвертирует страницу domain моделей в DTO
func FromDomainPage(p *domain.AppointmentPage) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Items: make([]AppointmentResponse, 0, len(p.Items)),
		Total: p.Total,
		Page:  p.Page,
		Limit: p.Limit,
	}
	for _, a := range p.Items {
		resp.Items = append(resp.Items, *FromDomainAppointment(a))
	}
	return resp
}
