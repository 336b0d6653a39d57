package components

import (
	"courtdesk/internal/handler"
	"courtdesk/internal/handler/api"
	"courtdesk/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAdminHandler,
		api.NewBookingHandler,
		api.NewCourtStatusHandler,
		api.NewPricingHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
