package request

import (
	"courtdesk/internal/usecase"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	Date         string `json:"date" binding:"required"`
	StartTime    string `json:"startTime" binding:"required"`
	EndTime      string `json:"endTime" binding:"required"`
	CourtID      string `json:"courtId" binding:"required"`
	CustomerName string `json:"customerName" binding:"required"`
	MobileNumber string `json:"mobileNumber" binding:"required"`
	Status       string `json:"status,omitempty"`
}

func (r CreateBookingRequest) ToParams() usecase.CreateBookingParams {
	return usecase.CreateBookingParams{
		Date:         r.Date,
		StartTime:    r.StartTime,
		EndTime:      r.EndTime,
		CourtID:      r.CourtID,
		CustomerName: r.CustomerName,
		MobileNumber: r.MobileNumber,
		Status:       r.Status,
	}
}

type UpdateBookingRequest struct {
	CustomerName *string `json:"customerName,omitempty"`
	MobileNumber *string `json:"mobileNumber,omitempty"`
	Status       *string `json:"status,omitempty"`
}

func (r UpdateBookingRequest) ToParams() usecase.UpdateBookingParams {
	return usecase.UpdateBookingParams{
		CustomerName: r.CustomerName,
		MobileNumber: r.MobileNumber,
		Status:       r.Status,
	}
}

type BulkDeleteRequest struct {
	BookingIDs []uuid.UUID `json:"bookingIds" binding:"required,min=1"`
}
