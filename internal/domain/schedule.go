package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Interval полуинтервал [Start, End) в минутах от локальной полуночи
type Interval struct {
	Start int
	End   int
}

// ValidateInterval проверяет start < end
func ValidateInterval(start, end int) error {
	if start >= end {
		return fmt.Errorf("%w: start %d must be before end %d", ErrInvalidInterval, start, end)
	}
	return nil
}

// Overlaps проверяет пересечение полуинтервалов. Касание границами не считается
func (i Interval) Overlaps(other Interval) bool {
	return i.Start < other.End && other.Start < i.End
}

// Break перерыв внутри рабочего окна
type Break struct {
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end"`
}

// Interval возвращает перерыв в минутах. Перерыв должен быть провалидирован
func (b Break) Interval() Interval {
	return Interval{Start: b.Start.MustMinutes(), End: b.End.MustMinutes()}
}

// WeeklySchedule недельное расписание провайдера: одно рабочее окно на все рабочие дни
type WeeklySchedule struct {
	ProviderID  ProviderID
	StartTime   types.TimeString
	EndTime     types.TimeString
	Breaks      []Break
	WorkingDays []int // 0 = воскресенье, 6 = суббота
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Normalize подставляет рабочие дни по умолчанию и сортирует перерывы и дни
func (s *WeeklySchedule) Normalize() {
	if len(s.WorkingDays) == 0 {
		s.WorkingDays = append([]int(nil), DefaultWorkingDays...)
	}
	sort.Ints(s.WorkingDays)
	sort.SliceStable(s.Breaks, func(i, j int) bool {
		return s.Breaks[i].Start.IsBefore(s.Breaks[j].Start)
	})
	if s.Breaks == nil {
		s.Breaks = []Break{}
	}
}

// Validate проверяет рабочее окно, перерывы и рабочие дни.
// Перерывы должны быть отсортированы (см. Normalize)
func (s *WeeklySchedule) Validate() error {
	start, err := s.StartTime.Minutes()
	if err != nil {
		return fmt.Errorf("startTime: %w", err)
	}
	end, err := s.EndTime.Minutes()
	if err != nil {
		return fmt.Errorf("endTime: %w", err)
	}
	if err := ValidateInterval(start, end); err != nil {
		return fmt.Errorf("working window: %w", err)
	}

	prevEnd := -1
	for i, b := range s.Breaks {
		bs, err := b.Start.Minutes()
		if err != nil {
			return fmt.Errorf("break %d start: %w", i, err)
		}
		be, err := b.End.Minutes()
		if err != nil {
			return fmt.Errorf("break %d end: %w", i, err)
		}
		if err := ValidateInterval(bs, be); err != nil {
			return fmt.Errorf("break %d: %w", i, err)
		}
		if bs < start || be > end {
			return fmt.Errorf("%w: break %s-%s is outside working window %s-%s",
				ErrInvalidInterval, b.Start, b.End, s.StartTime, s.EndTime)
		}
		if bs < prevEnd {
			return fmt.Errorf("%w: break %s-%s overlaps previous break", ErrInvalidInterval, b.Start, b.End)
		}
		prevEnd = be
	}

	if len(s.WorkingDays) == 0 {
		return fmt.Errorf("%w: working days must not be empty", ErrInvalidInterval)
	}
	seen := make(map[int]struct{}, len(s.WorkingDays))
	for _, d := range s.WorkingDays {
		if d < 0 || d > 6 {
			return fmt.Errorf("%w: working day %d out of range 0..6", ErrInvalidInterval, d)
		}
		if _, ok := seen[d]; ok {
			return fmt.Errorf("%w: working day %d is duplicated", ErrInvalidInterval, d)
		}
		seen[d] = struct{}{}
	}

	return nil
}

// IsWorkingDay проверяет, что день недели рабочий
func (s *WeeklySchedule) IsWorkingDay(weekday time.Weekday) bool {
	for _, d := range s.WorkingDays {
		if d == int(weekday) {
			return true
		}
	}
	return false
}

// FreeSegments рабочее окно за вычетом перерывов, по возрастанию
func (s *WeeklySchedule) FreeSegments() []Interval {
	cursor := s.StartTime.MustMinutes()
	end := s.EndTime.MustMinutes()

	breaks := make([]Interval, 0, len(s.Breaks))
	for _, b := range s.Breaks {
		breaks = append(breaks, b.Interval())
	}
	sort.Slice(breaks, func(i, j int) bool { return breaks[i].Start < breaks[j].Start })

	segments := make([]Interval, 0, len(breaks)+1)
	for _, b := range breaks {
		if b.Start > cursor {
			segments = append(segments, Interval{Start: cursor, End: b.Start})
		}
		if b.End > cursor {
			cursor = b.End
		}
	}
	if cursor < end {
		segments = append(segments, Interval{Start: cursor, End: end})
	}
	return segments
}

// ValidSlotMinutes длина слота в допустимых границах [MinSlotMinutes, MaxSlotMinutes]
func ValidSlotMinutes(minutes int) bool {
	return minutes >= MinSlotMinutes && minutes <= MaxSlotMinutes
}

// RawSlotGrid возвращает начала слотов в минутах от полуночи.
// Каждый свободный сегмент обходится от своего начала с шагом slotMinutes,
// слот t попадает в сетку только если t + slotMinutes <= конец сегмента
func (s *WeeklySchedule) RawSlotGrid(slotMinutes int) []int {
	if slotMinutes <= 0 {
		return []int{}
	}
	grid := make([]int, 0)
	for _, seg := range s.FreeSegments() {
		for t := seg.Start; t+slotMinutes <= seg.End; t += slotMinutes {
			grid = append(grid, t)
		}
	}
	return grid
}
