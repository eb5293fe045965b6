package domain

// Типизированные идентификаторы сущностей
type (
	ProviderID    int64
	ClientID      int64
	ServiceID     int64
	AppointmentID int64
	BlackoutID    int64
	UserID        int64
)
