package localtime

import "time"

// Clock источник текущего времени
type Clock interface {
	Now() time.Time
}

// SystemClock реальные часы для production
type SystemClock struct{}

// Now возвращает текущее время
func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock часы, всегда возвращающие один и тот же момент (для тестов)
type FixedClock struct {
	At time.Time
}

// Now возвращает зафиксированный момент
func (c FixedClock) Now() time.Time {
	return c.At
}
