package get_month_availability

import (
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/availability"
)

// DayResponse HTTP response model
type DayResponse struct {
	Date      string   `json:"date"`
	Available bool     `json:"available"`
	Status    string   `json:"status"`
	Slots     []string `json:"slots,omitempty"`
}

// FromServiceResponse конвертирует доступность дней в HTTP ответ
func FromServiceResponse(days []availability.DayAvailability, includeSlots bool) []DayResponse {
	result := make([]DayResponse, 0, len(days))
	for _, d := range days {
		item := DayResponse{
			Date:      d.Date.Format(domain.DateFormat),
			Available: d.Available,
			Status:    d.Status,
		}
		if includeSlots {
			item.Slots = make([]string, 0, len(d.Slots))
			for _, s := range d.Slots {
				item.Slots = append(item.Slots, s.String())
			}
		}
		result = append(result, item)
	}
	return result
}
