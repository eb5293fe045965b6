package add_blackout

// AddBlackoutRequest HTTP тело запроса на блокировку
type AddBlackoutRequest struct {
	Date      string  `json:"date"`
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
	Reason    *string `json:"reason,omitempty"`
}
