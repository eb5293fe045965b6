// Package localtime переводит локальное время провайдера (дата + минуты от полуночи)
// в абсолютные моменты и обратно.
//
// Используется одно фиксированное смещение от UTC из конфигурации,
// переходы на летнее время не учитываются.
package localtime

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Converter конвертер с фиксированным смещением от UTC
type Converter struct {
	offsetMinutes int
	loc           *time.Location
}

// NewConverter создает конвертер. offsetMinutes - смещение локального времени от UTC,
// например -180 для UTC-03:00
func NewConverter(offsetMinutes int) *Converter {
	sign := "+"
	abs := offsetMinutes
	if offsetMinutes < 0 {
		sign = "-"
		abs = -offsetMinutes
	}
	name := fmt.Sprintf("UTC%s%02d:%02d", sign, abs/60, abs%60)
	return &Converter{
		offsetMinutes: offsetMinutes,
		loc:           time.FixedZone(name, offsetMinutes*60),
	}
}

// OffsetMinutes возвращает сконфигурированное смещение
func (c *Converter) OffsetMinutes() int {
	return c.offsetMinutes
}

// Location возвращает фиксированную локацию провайдера
func (c *Converter) Location() *time.Location {
	return c.loc
}

// ToInstant переводит локальную дату и минуты от полуночи в абсолютный момент (UTC)
func (c *Converter) ToInstant(date time.Time, minutes int) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, c.loc).
		Add(time.Duration(minutes) * time.Minute).
		UTC()
}

// LocalMinutes возвращает минуты от локальной полуночи для абсолютного момента
func (c *Converter) LocalMinutes(t time.Time) int {
	local := t.In(c.loc)
	return local.Hour()*60 + local.Minute()
}

// LocalDate возвращает локальную календарную дату момента (полночь, UTC-представление)
func (c *Converter) LocalDate(t time.Time) time.Time {
	y, m, d := t.In(c.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayBounds возвращает полуинтервал [start, end) абсолютных моментов локальных суток
func (c *Converter) DayBounds(date time.Time) (time.Time, time.Time) {
	start := c.ToInstant(date, 0)
	return start, start.Add(24 * time.Hour)
}

// Today возвращает локальную дату провайдера для момента now
func (c *Converter) Today(now time.Time) time.Time {
	return c.LocalDate(now)
}

// IsSameLocalDay проверяет, что момент t приходится на локальную дату date
func (c *Converter) IsSameLocalDay(date, t time.Time) bool {
	return c.LocalDate(t).Format(dateLayout) == date.Format(dateLayout)
}
