package response

import (
	"time"

	"courtdesk/internal/domain/closure"

	"github.com/google/uuid"
)

type ClosureResponse struct {
	ID        uuid.UUID `json:"id"`
	Date      string    `json:"date"`
	StartTime string    `json:"startTime"`
	CourtID   string    `json:"courtId"`
	Status    string    `json:"status"`
	Reason    string    `json:"reason"`
	ClosedBy  string    `json:"closedBy"`
	CreatedAt time.Time `json:"createdAt"`
}

func FromClosure(c *closure.Closure) *ClosureResponse {
	return &ClosureResponse{
		ID:        c.ID(),
		Date:      c.Slot().Date,
		StartTime: c.Slot().StartTime,
		CourtID:   c.Slot().CourtID,
		Status:    c.Kind().String(),
		Reason:    c.Reason(),
		ClosedBy:  c.ClosedBy(),
		CreatedAt: c.CreatedAt(),
	}
}

func FromClosures(cs []*closure.Closure) []*ClosureResponse {
	result := make([]*ClosureResponse, len(cs))
	for i, c := range cs {
		result[i] = FromClosure(c)
	}
	return result
}
