package components

import (
	"courtdesk/internal/infra/repository"
	"courtdesk/internal/usecase"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			repository.NewBookingRepository,
			fx.As(new(usecase.BookingRepository)),
		),
		fx.Annotate(
			repository.NewClosureRepository,
			fx.As(new(usecase.ClosureRepository)),
		),
		fx.Annotate(
			repository.NewPricingRepository,
			fx.As(new(usecase.PricingRepository)),
		),
	),
)
