package create_appointment

// CreateAppointmentRequest HTTP тело запроса на запись
type CreateAppointmentRequest struct {
	ProviderID int64   `json:"providerId"`
	ServiceID  int64   `json:"serviceId"`
	Date       string  `json:"date"`      // "2025-08-18"
	StartTime  string  `json:"startTime"` // "14:00"
	Notes      *string `json:"notes,omitempty"`
}
