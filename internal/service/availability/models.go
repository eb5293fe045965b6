package availability

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// SlotsOptions параметры расчета слотов
type SlotsOptions struct {
	SlotMinutes int                   // 0 = значение по умолчанию
	SkipPast    bool                  // скрыть прошедшие слоты
	Exclude     *domain.AppointmentID // запись, которая не занимает слот (перенос)
}

// MonthRequest запрос доступности на месяц
type MonthRequest struct {
	ProviderID   domain.ProviderID
	Year         int // 0 = текущий год провайдера
	Month        int // 0 = текущий месяц провайдера
	SlotMinutes  int
	IncludeSlots bool
}

// DayAvailability доступность одного дня
type DayAvailability struct {
	Date      time.Time
	Available bool
	Status    string             // AVAILABLE или UNAVAILABLE
	Slots     []types.TimeString // только при IncludeSlots
}
