package api

import (
	"errors"
	"net/http"
	"strconv"

	reqdto "courtdesk/internal/handler/dto/request"
	resdto "courtdesk/internal/handler/dto/response"
	"courtdesk/internal/handler/middleware"
	"courtdesk/internal/usecase"

	"github.com/gin-gonic/gin"
)

type PricingHandler struct {
	pricingUseCase usecase.PricingUseCase
}

func NewPricingHandler(pricingUseCase usecase.PricingUseCase) *PricingHandler {
	return &PricingHandler{
		pricingUseCase: pricingUseCase,
	}
}

// @Summary Current pricing
// @Description Get the rate in effect today
// @Tags pricing
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Router /pricing/current [get]
func (h *PricingHandler) GetCurrent(c *gin.Context) {
	current, err := h.pricingUseCase.GetCurrent(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    resdto.FromCurrentPricing(current),
	})
}

// @Summary Pricing history
// @Description List price records, most recent effective date first
// @Tags pricing
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max records (default 10)"
// @Success 200 {object} map[string]any
// @Router /pricing/history [get]
func (h *PricingHandler) GetHistory(c *gin.Context) {
	var limit int32
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || n <= 0 {
			badRequest(c, "limit must be a positive integer")
			return
		}
		limit = int32(n)
	}

	records, err := h.pricingUseCase.GetHistory(c.Request.Context(), limit)
	if err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(records),
		"data":    resdto.FromPricingList(records),
	})
}

// @Summary Update pricing
// @Description Create a price record, or rewrite the one for the effective date
// @Tags pricing
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.UpdatePricingRequest true "Pricing request"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /pricing [post]
func (h *PricingHandler) Update(c *gin.Context) {
	var req reqdto.UpdatePricingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		badRequest(c, "Please provide pricePerCourtPerHour and effectiveDate")
		return
	}

	result, err := h.pricingUseCase.Update(c.Request.Context(), usecase.UpdatePricingParams{
		PricePerCourtPerHour: req.PricePerCourtPerHour,
		EffectiveDate:        req.EffectiveDate,
		Reason:               req.Reason,
		ChangedBy:            middleware.GetAdminUser(c),
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrValidation):
			badRequest(c, validationMessage(err))
		default:
			internalError(c, err)
		}
		return
	}

	status := http.StatusOK
	message := "Pricing updated successfully"
	if result.Created {
		status = http.StatusCreated
		message = "Pricing created successfully"
	}

	c.JSON(status, gin.H{
		"success": true,
		"message": message,
		"data":    resdto.FromPricing(result.Record),
	})
}

// @Summary Delete pricing
// @Description Delete a price record by id
// @Tags pricing
// @Produce json
// @Security BearerAuth
// @Param id path string true "Pricing ID"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /pricing/{id} [delete]
func (h *PricingHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.pricingUseCase.Delete(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, usecase.ErrPricingNotFound):
			notFound(c, "Pricing record not found")
		default:
			internalError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Pricing record deleted successfully",
	})
}
