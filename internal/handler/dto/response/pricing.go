package response

import (
	"time"

	"courtdesk/internal/domain/pricing"
	"courtdesk/internal/usecase"

	"github.com/google/uuid"
)

type PricingResponse struct {
	ID                   uuid.UUID `json:"id"`
	PricePerCourtPerHour int64     `json:"pricePerCourtPerHour"`
	EffectiveDate        string    `json:"effectiveDate"`
	ChangedBy            string    `json:"changedBy"`
	Reason               string    `json:"reason,omitempty"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

type CurrentPricingResponse struct {
	PricePerCourtPerHour int64  `json:"pricePerCourtPerHour"`
	EffectiveDate        string `json:"effectiveDate"`
	IsDefault            bool   `json:"isDefault,omitempty"`
}

func FromPricing(r *pricing.Record) *PricingResponse {
	return &PricingResponse{
		ID:                   r.ID,
		PricePerCourtPerHour: r.PricePerCourtPerHour,
		EffectiveDate:        r.EffectiveDate,
		ChangedBy:            r.ChangedBy,
		Reason:               r.Reason,
		CreatedAt:            r.CreatedAt,
		UpdatedAt:            r.UpdatedAt,
	}
}

func FromPricingList(rs []*pricing.Record) []*PricingResponse {
	result := make([]*PricingResponse, len(rs))
	for i, r := range rs {
		result[i] = FromPricing(r)
	}
	return result
}

func FromCurrentPricing(cp *usecase.CurrentPricing) *CurrentPricingResponse {
	resp := &CurrentPricingResponse{
		PricePerCourtPerHour: cp.Price,
		EffectiveDate:        cp.AsOf,
		IsDefault:            cp.IsDefault,
	}
	if cp.Record != nil {
		resp.EffectiveDate = cp.Record.EffectiveDate
	}
	return resp
}
