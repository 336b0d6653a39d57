package usecase

import (
	"context"

	"courtdesk/internal/domain/pricing"
	"courtdesk/internal/infra"
	"courtdesk/internal/pkg/clock"
	"courtdesk/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrPricingNotFound = errs.New("pricing not found")

const dateLayout = "2006-01-02"

type PricingRepository interface {
	FindEffective(ctx context.Context, asOf string) (*pricing.Record, error)
	FindByEffectiveDate(ctx context.Context, effectiveDate string) (*pricing.Record, error)
	FindHistory(ctx context.Context, limit int32) ([]*pricing.Record, error)
	Upsert(ctx context.Context, rec *pricing.Record) (*pricing.Record, bool, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

// CurrentPricing is the rate in effect today. IsDefault marks the hard-coded
// fallback used when no record covers the date.
type CurrentPricing struct {
	Record    *pricing.Record
	Price     int64
	AsOf      string
	IsDefault bool
}

type UpdatePricingParams struct {
	PricePerCourtPerHour int64
	EffectiveDate        string
	Reason               string
	ChangedBy            string
}

type UpdatePricingResult struct {
	Record  *pricing.Record
	Created bool
}

type PricingUseCase interface {
	GetCurrent(ctx context.Context) (*CurrentPricing, error)
	GetHistory(ctx context.Context, limit int32) ([]*pricing.Record, error)
	Update(ctx context.Context, params UpdatePricingParams) (*UpdatePricingResult, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type pricingUseCaseImpl struct {
	pricingRepo PricingRepository
	clock       clock.Clock
}

func NewPricingUseCase(pricingRepo PricingRepository, clk clock.Clock) PricingUseCase {
	return &pricingUseCaseImpl{
		pricingRepo: pricingRepo,
		clock:       clk,
	}
}

func (u *pricingUseCaseImpl) GetCurrent(ctx context.Context) (*CurrentPricing, error) {
	today := u.clock.Now().Format(dateLayout)

	rec, err := u.pricingRepo.FindEffective(ctx, today)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return &CurrentPricing{
				Price:     pricing.DefaultPricePerCourtPerHour,
				AsOf:      today,
				IsDefault: true,
			}, nil
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return &CurrentPricing{
		Record: rec,
		Price:  rec.PricePerCourtPerHour,
		AsOf:   today,
	}, nil
}

func (u *pricingUseCaseImpl) GetHistory(ctx context.Context, limit int32) ([]*pricing.Record, error) {
	if limit <= 0 {
		limit = 10
	}

	records, err := u.pricingRepo.FindHistory(ctx, limit)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return records, nil
}

// Update creates a price record, or rewrites the one already holding the
// effective date. At most one record exists per effective date.
func (u *pricingUseCaseImpl) Update(ctx context.Context, params UpdatePricingParams) (*UpdatePricingResult, error) {
	rec, err := pricing.NewRecord(params.PricePerCourtPerHour, params.EffectiveDate, params.ChangedBy, params.Reason)
	if err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}

	stored, created, err := u.pricingRepo.Upsert(ctx, rec)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return &UpdatePricingResult{Record: stored, Created: created}, nil
}

func (u *pricingUseCaseImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := u.pricingRepo.DeleteByID(ctx, id); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrPricingNotFound
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}
