package reschedule_appointment

// RescheduleRequest HTTP тело запроса на перенос записи
type RescheduleRequest struct {
	ServiceID *int64 `json:"serviceId,omitempty"` // новая услуга, по умолчанию прежняя
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
}
