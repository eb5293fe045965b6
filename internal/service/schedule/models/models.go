package models

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Request модели

// BreakDTO перерыв в формате HH:MM
type BreakDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// SetScheduleRequest запрос на установку недельного расписания
type SetScheduleRequest struct {
	ProviderID  domain.ProviderID `json:"-"`
	StartTime   string            `json:"startTime"`   // "09:00"
	EndTime     string            `json:"endTime"`     // "18:00"
	Breaks      []BreakDTO        `json:"breaks"`      // опционально
	WorkingDays []int             `json:"workingDays"` // 0 = воскресенье; пусто = пн-сб
}

// ToDomain конвертирует запрос в доменное расписание (без валидации)
func (r *SetScheduleRequest) ToDomain() *domain.WeeklySchedule {
	breaks := make([]domain.Break, 0, len(r.Breaks))
	for _, b := range r.Breaks {
		breaks = append(breaks, domain.Break{
			Start: types.TimeString(b.Start),
			End:   types.TimeString(b.End),
		})
	}
	return &domain.WeeklySchedule{
		ProviderID:  r.ProviderID,
		StartTime:   types.TimeString(r.StartTime),
		EndTime:     types.TimeString(r.EndTime),
		Breaks:      breaks,
		WorkingDays: append([]int(nil), r.WorkingDays...),
	}
}

// AddBlackoutRequest запрос на добавление блокировки
type AddBlackoutRequest struct {
	ProviderID domain.ProviderID
	Date       time.Time
	StartTime  string
	EndTime    string
	Reason     *string
}

// Response модели

// ScheduleResponse ответ с недельным расписанием
type ScheduleResponse struct {
	ProviderID  int64      `json:"providerId"`
	StartTime   string     `json:"startTime"`
	EndTime     string     `json:"endTime"`
	Breaks      []BreakDTO `json:"breaks"`
	WorkingDays []int      `json:"workingDays"`
	CreatedAt   string     `json:"createdAt"`
	UpdatedAt   string     `json:"updatedAt"`
}

// BlackoutResponse ответ с блокировкой
type BlackoutResponse struct {
	ID         int64   `json:"id"`
	ProviderID int64   `json:"providerId"`
	Date       string  `json:"date"`
	StartTime  string  `json:"startTime"`
	EndTime    string  `json:"endTime"`
	Reason     *string `json:"reason,omitempty"`
	CreatedBy  *int64  `json:"createdBy,omitempty"`
	CreatedAt  string  `json:"createdAt"`
}

// FromDomainSchedule конвертирует доменное расписание в ответ
func FromDomainSchedule(s *domain.WeeklySchedule) *ScheduleResponse {
	breaks := make([]BreakDTO, 0, len(s.Breaks))
	for _, b := range s.Breaks {
		breaks = append(breaks, BreakDTO{Start: b.Start.String(), End: b.End.String()})
	}
	return &ScheduleResponse{
		ProviderID:  int64(s.ProviderID),
		StartTime:   s.StartTime.String(),
		EndTime:     s.EndTime.String(),
		Breaks:      breaks,
		WorkingDays: s.WorkingDays,
		CreatedAt:   s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   s.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainBlackout конвертирует доменную блокировку в ответ
func FromDomainBlackout(b *domain.Blackout) *BlackoutResponse {
	var createdBy *int64
	if b.CreatedBy != nil {
		id := int64(*b.CreatedBy)
		createdBy = &id
	}
	return &BlackoutResponse{
		ID:         int64(b.ID),
		ProviderID: int64(b.ProviderID),
		Date:       b.Date.Format(domain.DateFormat),
		StartTime:  b.StartTime.String(),
		EndTime:    b.EndTime.String(),
		Reason:     b.Reason,
		CreatedBy:  createdBy,
		CreatedAt:  b.CreatedAt.Format(time.RFC3339),
	}
}

// FromDomainBlackoutList конвертирует список блокировок
func FromDomainBlackoutList(items []*domain.Blackout) []*BlackoutResponse {
	result := make([]*BlackoutResponse, 0, len(items))
	for _, b := range items {
		result = append(result, FromDomainBlackout(b))
	}
	return result
}
