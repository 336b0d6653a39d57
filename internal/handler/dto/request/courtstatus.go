package request

type CloseSlotRequest struct {
	Date         string `json:"date" binding:"required"`
	StartTime    string `json:"startTime"`
	CourtID      string `json:"courtId" binding:"required"`
	Status       string `json:"status,omitempty"`
	Reason       string `json:"reason,omitempty"`
	CloseFullDay bool   `json:"closeFullDay,omitempty"`
}

type CloseDayRequest struct {
	Date    string `json:"date" binding:"required"`
	CourtID string `json:"courtId" binding:"required"`
	Status  string `json:"status,omitempty"`
	Reason  string `json:"reason,omitempty"`
}
