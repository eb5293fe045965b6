package domain

// Default values
const (
	DefaultSlotMinutes = 60
	DefaultPage        = 1
	DefaultLimit       = 10
)

// DefaultWorkingDays рабочие дни по умолчанию: понедельник - суббота
var DefaultWorkingDays = []int{1, 2, 3, 4, 5, 6}

// Business validation constants
const (
	MinSlotMinutes        = 5
	MaxSlotMinutes        = 480 // 8 hours
	MaxLimit              = 100
	MaxNotesLength        = 500
	MaxCancelReasonLength = 500
	MaxBlackoutReasonLen  = 255
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Отметки дня в месячной доступности
const (
	AvailableMarker   = "AVAILABLE"
	UnavailableMarker = "UNAVAILABLE"
)
