package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"courtdesk/internal/handler/api"
	"courtdesk/internal/handler/middleware"
	"courtdesk/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	adminHandler *api.AdminHandler,
	bookingHandler *api.BookingHandler,
	courtStatusHandler *api.CourtStatusHandler,
	pricingHandler *api.PricingHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, adminHandler, bookingHandler, courtStatusHandler, pricingHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	adminHandler *api.AdminHandler,
	bookingHandler *api.BookingHandler,
	courtStatusHandler *api.CourtStatusHandler,
	pricingHandler *api.PricingHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		admin := apiGroup.Group("/admin")
		{
			addRoutes(admin, []route{
				{Method: http.MethodPost, Path: "/login", Handler: adminHandler.Login},
			})

			authRequired := admin.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodGet, Path: "/verify", Handler: adminHandler.Verify},
			})
		}

		bookings := apiGroup.Group("/bookings")
		bookings.Use(authMiddleware.RequireAuth())
		{
			addRoutes(bookings, []route{
				{Method: http.MethodGet, Path: "", Handler: bookingHandler.GetDaySlots},
				{Method: http.MethodPost, Path: "", Handler: bookingHandler.CreateBooking},
				{Method: http.MethodPost, Path: "/bulk-delete", Handler: bookingHandler.BulkDeleteBookings},
				{Method: http.MethodGet, Path: "/:id", Handler: bookingHandler.GetBooking},
				{Method: http.MethodPut, Path: "/:id", Handler: bookingHandler.UpdateBooking},
				{Method: http.MethodDelete, Path: "/:id", Handler: bookingHandler.DeleteBooking},
			})
		}

		courtStatus := apiGroup.Group("/court-status")
		courtStatus.Use(authMiddleware.RequireAuth())
		{
			addRoutes(courtStatus, []route{
				{Method: http.MethodGet, Path: "", Handler: courtStatusHandler.GetByDate},
				{Method: http.MethodGet, Path: "/check", Handler: courtStatusHandler.CheckSlot},
				{Method: http.MethodPost, Path: "/close", Handler: courtStatusHandler.CloseSlot},
				{Method: http.MethodPost, Path: "/close-day", Handler: courtStatusHandler.CloseDay},
				{Method: http.MethodDelete, Path: "/day", Handler: courtStatusHandler.ReopenDay},
				{Method: http.MethodDelete, Path: "/:id", Handler: courtStatusHandler.Reopen},
			})
		}

		pricing := apiGroup.Group("/pricing")
		pricing.Use(authMiddleware.RequireAuth())
		{
			addRoutes(pricing, []route{
				{Method: http.MethodGet, Path: "/current", Handler: pricingHandler.GetCurrent},
				{Method: http.MethodGet, Path: "/history", Handler: pricingHandler.GetHistory},
				{Method: http.MethodPost, Path: "", Handler: pricingHandler.Update},
				{Method: http.MethodDelete, Path: "/:id", Handler: pricingHandler.Delete},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, r.Handler)
		case http.MethodPost:
			g.POST(r.Path, r.Handler)
		case http.MethodPut:
			g.PUT(r.Path, r.Handler)
		case http.MethodDelete:
			g.DELETE(r.Path, r.Handler)
		default:
			g.Any(r.Path, r.Handler)
		}
	}
}
