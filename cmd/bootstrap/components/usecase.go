package components

import (
	"courtdesk/internal/pkg/clock"
	"courtdesk/internal/pkg/config"
	"courtdesk/internal/pkg/jwt"
	"courtdesk/internal/usecase"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		usecase.NewBookingUseCase,
		usecase.NewCourtStatusUseCase,
		usecase.NewPricingUseCase,
		usecase.NewTokenValidator,
		func(cfg config.Config, jwtService *jwt.Service) (usecase.AuthUseCase, error) {
			return usecase.NewAuthUseCase(cfg.Admin, jwtService)
		},
	),
)
