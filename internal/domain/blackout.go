package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Blackout разовая блокировка времени провайдера на конкретную дату.
// Может выходить за рабочее окно, пересечения между блокировками допустимы
type Blackout struct {
	ID         BlackoutID
	ProviderID ProviderID
	Date       time.Time // локальная дата провайдера
	StartTime  types.TimeString
	EndTime    types.TimeString
	Reason     *string
	CreatedBy  *UserID
	CreatedAt  time.Time
}

// Validate проверяет формат времени и start < end
func (b *Blackout) Validate() error {
	if b.ProviderID <= 0 {
		return fmt.Errorf("%w: providerId must be positive", ErrInvalidInput)
	}
	if b.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	start, err := b.StartTime.Minutes()
	if err != nil {
		return fmt.Errorf("startTime: %w", err)
	}
	end, err := b.EndTime.Minutes()
	if err != nil {
		return fmt.Errorf("endTime: %w", err)
	}
	if err := ValidateInterval(start, end); err != nil {
		return err
	}
	if b.Reason != nil && len(*b.Reason) > MaxBlackoutReasonLen {
		return fmt.Errorf("%w: reason is longer than %d", ErrInvalidInput, MaxBlackoutReasonLen)
	}
	return nil
}

// Interval возвращает окно блокировки в минутах. Блокировка должна быть провалидирована
func (b *Blackout) Interval() Interval {
	return Interval{Start: b.StartTime.MustMinutes(), End: b.EndTime.MustMinutes()}
}
