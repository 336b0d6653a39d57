package response

import (
	"time"

	"courtdesk/internal/domain/booking"
	"courtdesk/internal/usecase"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID           uuid.UUID  `json:"id"`
	Date         string     `json:"date"`
	StartTime    string     `json:"startTime"`
	EndTime      string     `json:"endTime"`
	CourtID      string     `json:"courtId"`
	CustomerName string     `json:"customerName"`
	MobileNumber string     `json:"mobileNumber"`
	Status       string     `json:"status"`
	Price        int64      `json:"price"`
	GroupID      *uuid.UUID `json:"groupId,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

type SlotViewResponse struct {
	Date         string           `json:"date"`
	StartTime    string           `json:"startTime"`
	EndTime      string           `json:"endTime"`
	CourtID      string           `json:"courtId"`
	IsAvailable  bool             `json:"isAvailable"`
	IsClosed     bool             `json:"isClosed"`
	Booking      *BookingResponse `json:"booking"`
	ClosedReason *string          `json:"closedReason"`
	Price        int64            `json:"price"`
}

func FromBooking(b *booking.Booking) *BookingResponse {
	return &BookingResponse{
		ID:           b.ID(),
		Date:         b.Slot().Date,
		StartTime:    b.Slot().StartTime,
		EndTime:      b.EndTime(),
		CourtID:      b.Slot().CourtID,
		CustomerName: b.CustomerName(),
		MobileNumber: b.MobileNumber(),
		Status:       b.Status().String(),
		Price:        b.Price(),
		GroupID:      b.GroupID(),
		CreatedAt:    b.CreatedAt(),
		UpdatedAt:    b.UpdatedAt(),
	}
}

func FromBookings(bs []*booking.Booking) []*BookingResponse {
	result := make([]*BookingResponse, len(bs))
	for i, b := range bs {
		result[i] = FromBooking(b)
	}
	return result
}

func FromSlotView(v *usecase.SlotView) *SlotViewResponse {
	resp := &SlotViewResponse{
		Date:         v.Date,
		StartTime:    v.StartTime,
		EndTime:      v.EndTime,
		CourtID:      v.CourtID,
		IsAvailable:  v.IsAvailable,
		IsClosed:     v.IsClosed,
		ClosedReason: v.ClosedReason,
		Price:        v.Price,
	}
	if v.Booking != nil {
		resp.Booking = FromBooking(v.Booking)
	}
	return resp
}

func FromSlotViews(views []*usecase.SlotView) []*SlotViewResponse {
	result := make([]*SlotViewResponse, len(views))
	for i, v := range views {
		result[i] = FromSlotView(v)
	}
	return result
}
