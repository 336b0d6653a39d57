package api

import (
	"errors"
	"net/http"

	reqdto "courtdesk/internal/handler/dto/request"
	resdto "courtdesk/internal/handler/dto/response"
	"courtdesk/internal/handler/middleware"
	"courtdesk/internal/usecase"

	"github.com/gin-gonic/gin"
)

type CourtStatusHandler struct {
	courtStatusUseCase usecase.CourtStatusUseCase
}

func NewCourtStatusHandler(courtStatusUseCase usecase.CourtStatusUseCase) *CourtStatusHandler {
	return &CourtStatusHandler{
		courtStatusUseCase: courtStatusUseCase,
	}
}

// @Summary List closures
// @Description List court closures for a date
// @Tags court-status
// @Produce json
// @Security BearerAuth
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /court-status [get]
func (h *CourtStatusHandler) GetByDate(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		badRequest(c, "Date parameter is required (format: YYYY-MM-DD)")
		return
	}

	closures, err := h.courtStatusUseCase.GetByDate(c.Request.Context(), date)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrValidation):
			badRequest(c, validationMessage(err))
		default:
			internalError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(closures),
		"data":    resdto.FromClosures(closures),
	})
}

// @Summary Close a slot
// @Description Close one slot, or the whole day when closeFullDay is set
// @Tags court-status
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CloseSlotRequest true "Closure request"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /court-status/close [post]
func (h *CourtStatusHandler) CloseSlot(c *gin.Context) {
	var req reqdto.CloseSlotRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		badRequest(c, "Please provide date and courtId")
		return
	}

	closedBy := middleware.GetAdminUser(c)

	if req.CloseFullDay {
		created, err := h.courtStatusUseCase.CloseDay(c.Request.Context(), usecase.CloseDayParams{
			Date:     req.Date,
			CourtID:  req.CourtID,
			Kind:     req.Status,
			Reason:   req.Reason,
			ClosedBy: closedBy,
		})
		if err != nil {
			h.respondCloseError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "Court closed for the full day",
			"count":   len(created),
			"data":    resdto.FromClosures(created),
		})
		return
	}

	if req.StartTime == "" {
		badRequest(c, "startTime is required unless closeFullDay is set")
		return
	}

	created, err := h.courtStatusUseCase.CloseSlot(c.Request.Context(), usecase.CloseSlotParams{
		Date:      req.Date,
		StartTime: req.StartTime,
		CourtID:   req.CourtID,
		Kind:      req.Status,
		Reason:    req.Reason,
		ClosedBy:  closedBy,
	})
	if err != nil {
		h.respondCloseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Slot closed successfully",
		"count":   len(created),
		"data":    resdto.FromClosures(created),
	})
}

// @Summary Close a day
// @Description Close every open slot of a day for the selected court(s)
// @Tags court-status
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CloseDayRequest true "Close-day request"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /court-status/close-day [post]
func (h *CourtStatusHandler) CloseDay(c *gin.Context) {
	var req reqdto.CloseDayRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		badRequest(c, "Please provide date and courtId")
		return
	}

	created, err := h.courtStatusUseCase.CloseDay(c.Request.Context(), usecase.CloseDayParams{
		Date:     req.Date,
		CourtID:  req.CourtID,
		Kind:     req.Status,
		Reason:   req.Reason,
		ClosedBy: middleware.GetAdminUser(c),
	})
	if err != nil {
		h.respondCloseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Court closed for the full day",
		"count":   len(created),
		"data":    resdto.FromClosures(created),
	})
}

// @Summary Reopen a slot
// @Description Delete a closure by id
// @Tags court-status
// @Produce json
// @Security BearerAuth
// @Param id path string true "Closure ID"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /court-status/{id} [delete]
func (h *CourtStatusHandler) Reopen(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	reopened, err := h.courtStatusUseCase.Reopen(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrClosureNotFound):
			notFound(c, "Closure not found")
		default:
			internalError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Slot reopened successfully",
		"data":    resdto.FromClosure(reopened),
	})
}

// @Summary Reopen a day
// @Description Delete every closure of a day for the selected court(s)
// @Tags court-status
// @Produce json
// @Security BearerAuth
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param courtId query string true "Court 1, Court 2 or Both"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /court-status/day [delete]
func (h *CourtStatusHandler) ReopenDay(c *gin.Context) {
	date := c.Query("date")
	courtID := c.Query("courtId")
	if date == "" || courtID == "" {
		badRequest(c, "date and courtId query parameters are required")
		return
	}

	count, err := h.courtStatusUseCase.ReopenDay(c.Request.Context(), date, courtID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrValidation):
			badRequest(c, validationMessage(err))
		default:
			internalError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "Court reopened for the day",
		"deletedCount": count,
	})
}

// @Summary Check a slot
// @Description Report whether a single slot is closed
// @Tags court-status
// @Produce json
// @Security BearerAuth
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param startTime query string true "Start time (HH:00)"
// @Param courtId query string true "Court 1 or Court 2"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /court-status/check [get]
func (h *CourtStatusHandler) CheckSlot(c *gin.Context) {
	date := c.Query("date")
	startTime := c.Query("startTime")
	courtID := c.Query("courtId")
	if date == "" || startTime == "" || courtID == "" {
		badRequest(c, "date, startTime and courtId query parameters are required")
		return
	}

	status, err := h.courtStatusUseCase.CheckSlot(c.Request.Context(), date, startTime, courtID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrValidation):
			badRequest(c, validationMessage(err))
		default:
			internalError(c, err)
		}
		return
	}

	body := gin.H{
		"success":  true,
		"isClosed": status.IsClosed,
	}
	if status.Closure != nil {
		body["data"] = resdto.FromClosure(status.Closure)
	}
	c.JSON(http.StatusOK, body)
}

func (h *CourtStatusHandler) respondCloseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrSlotAlreadyClosed):
		badRequest(c, conflictMessage(err))
	case errors.Is(err, usecase.ErrSlotBooked):
		badRequest(c, conflictMessage(err))
	case errors.Is(err, usecase.ErrValidation):
		badRequest(c, validationMessage(err))
	default:
		internalError(c, err)
	}
}
