package request

type UpdatePricingRequest struct {
	PricePerCourtPerHour int64  `json:"pricePerCourtPerHour" binding:"required"`
	EffectiveDate        string `json:"effectiveDate" binding:"required"`
	Reason               string `json:"reason,omitempty"`
}
