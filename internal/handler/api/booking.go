package api

import (
	"errors"
	"net/http"

	reqdto "courtdesk/internal/handler/dto/request"
	resdto "courtdesk/internal/handler/dto/response"
	"courtdesk/internal/handler/httperr"
	"courtdesk/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	bookingUseCase usecase.BookingUseCase
}

func NewBookingHandler(bookingUseCase usecase.BookingUseCase) *BookingHandler {
	return &BookingHandler{
		bookingUseCase: bookingUseCase,
	}
}

// @Summary Get day slots
// @Description Get the full availability grid for a date
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /bookings [get]
func (h *BookingHandler) GetDaySlots(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		badRequest(c, "Date parameter is required (format: YYYY-MM-DD)")
		return
	}

	views, err := h.bookingUseCase.GetDaySlots(c.Request.Context(), date)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrValidation):
			badRequest(c, "Invalid date format. Use YYYY-MM-DD")
		default:
			internalError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(views),
		"data":    resdto.FromSlotViews(views),
	})
}

// @Summary Get booking
// @Description Get a single booking by id
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	b, err := h.bookingUseCase.GetBooking(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrBookingNotFound):
			notFound(c, "Booking not found")
		default:
			internalError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    resdto.FromBooking(b),
	})
}

// @Summary Create booking
// @Description Book one court or both for one or more consecutive hours
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req reqdto.CreateBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		badRequest(c, "Please provide all required fields: date, startTime, endTime, courtId, customerName, mobileNumber")
		return
	}

	result, err := h.bookingUseCase.CreateBooking(c.Request.Context(), req.ToParams())
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrSlotUnavailable):
			badRequest(c, conflictMessage(err))
		case errors.Is(err, usecase.ErrValidation):
			badRequest(c, validationMessage(err))
		default:
			internalError(c, err)
		}
		return
	}

	// Single-unit bookings return the object, multi-unit the array.
	var data any
	if len(result.Bookings) == 1 {
		data = resdto.FromBooking(result.Bookings[0])
	} else {
		data = resdto.FromBookings(result.Bookings)
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"message":    "Booking created successfully",
		"totalPrice": result.TotalPrice,
		"data":       data,
	})
}

// @Summary Update booking
// @Description Update customer fields or cascade a status change across the group
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.UpdateBookingRequest true "Fields to update"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /bookings/{id} [put]
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req reqdto.UpdateBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		badRequest(c, "Invalid request format")
		return
	}

	b, err := h.bookingUseCase.UpdateBooking(c.Request.Context(), id, req.ToParams())
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrBookingNotFound):
			notFound(c, "Booking not found")
		case errors.Is(err, usecase.ErrStatusTerminal):
			badRequest(c, "Completed or cancelled bookings cannot change status")
		case errors.Is(err, usecase.ErrValidation):
			badRequest(c, validationMessage(err))
		default:
			internalError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Booking updated successfully",
		"data":    resdto.FromBooking(b),
	})
}

// @Summary Delete booking
// @Description Delete a booking; grouped bookings are removed as a whole
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /bookings/{id} [delete]
func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.bookingUseCase.DeleteBooking(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrBookingNotFound):
			notFound(c, "Booking not found")
		default:
			internalError(c, err)
		}
		return
	}

	if result.WasGrouped {
		c.JSON(http.StatusOK, gin.H{
			"success":      true,
			"message":      "Deleted related bookings",
			"deletedCount": result.DeletedCount,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Booking deleted successfully",
	})
}

// @Summary Bulk delete bookings
// @Description Delete exactly the given booking ids, no group cascade
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.BulkDeleteRequest true "Booking ids"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /bookings/bulk-delete [post]
func (h *BookingHandler) BulkDeleteBookings(c *gin.Context) {
	var req reqdto.BulkDeleteRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		badRequest(c, "Please provide an array of booking IDs to delete")
		return
	}

	count, err := h.bookingUseCase.BulkDeleteBookings(c.Request.Context(), req.BookingIDs)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrValidation):
			badRequest(c, "Please provide an array of booking IDs to delete")
		default:
			internalError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "Bookings deleted successfully",
		"deletedCount": count,
	})
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "Invalid ID format")
		return uuid.Nil, false
	}
	return id, true
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error":   gin.H{"message": msg},
	})
}

func notFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, gin.H{
		"success": false,
		"error":   gin.H{"message": msg},
	})
}

// internalError hides the cause from the client but keeps it on the context
// for the logging middleware.
func internalError(c *gin.Context, err error) {
	httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
}

// conflictMessage surfaces the blocking slot when the usecase reported one.
func conflictMessage(err error) string {
	var conflict *usecase.SlotConflictError
	if errors.As(err, &conflict) {
		return conflict.Error()
	}
	return "Requested slot is unavailable"
}

// validationMessage keeps the domain's field-level message for the caller.
func validationMessage(err error) string {
	return err.Error()
}
