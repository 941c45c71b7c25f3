package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/handlers"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/cache"
	infraRepo "github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	ucBooking "github.com/BruksfildServices01/salon-scheduler/internal/usecase/booking"
)

// Infra carries the optional collaborators built by the caller. A nil Redis
// disables caching and rate limiting.
type Infra struct {
	Redis  *redis.Client
	Events domain.EventPublisher
	Audit  *audit.Dispatcher
}

// RegisterRoutes wires every handler. The returned func drains background
// work and must run on shutdown.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, infra Infra) func() {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	var availabilityCache domain.AvailabilityCache = cache.Noop{}
	var limiter *middleware.RateLimiter
	if infra.Redis != nil {
		availabilityCache = cache.NewAvailabilityRedis(infra.Redis, cfg.AvailabilityTTL)
		limiter = middleware.NewRateLimiter(infra.Redis, cfg.RateLimitPerMinute, time.Minute)
	}

	// ======================================================
	// USE CASES
	// ======================================================
	selectServicesUC := ucBooking.NewSelectServices(bookingRepo)

	availabilityUC := ucBooking.NewCalculateAvailability(bookingRepo, availabilityCache)

	findSlotsUC := ucBooking.NewFindMultiServiceSlots(
		bookingRepo,
		ucBooking.NewResolveEligibleStaff(bookingRepo),
		cfg.SlotFinderConcurrency,
	)

	createUC := ucBooking.NewCreateMultiServiceAppointment(
		bookingRepo,
		infra.Events,
		infra.Audit,
	)

	waitlistQueue := ucBooking.NewWaitlistQueue(
		ucBooking.NewCheckWaitlistOnCancellation(bookingRepo, infra.Events),
		100,
	)

	confirmUC := ucBooking.NewConfirmAppointment(bookingRepo, availabilityCache, infra.Events, infra.Audit)
	completeUC := ucBooking.NewCompleteAppointment(bookingRepo, infra.Audit)
	cancelUC := ucBooking.NewCancelAppointment(
		bookingRepo,
		availabilityCache,
		waitlistQueue,
		infra.Events,
		infra.Audit,
	)
	listByDateUC := ucBooking.NewListAppointmentsByDate(bookingRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	bookingHandler := handlers.NewBookingHandler(availabilityUC, selectServicesUC, findSlotsUC, createUC)
	publicHandler := handlers.NewPublicHandler(bookingRepo)
	appointmentHandler := handlers.NewAppointmentHandler(confirmUC, completeUC, cancelUC, listByDateUC)
	meHandler := handlers.NewMeHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		publicAPI := api.Group("/public/:businessID")
		publicAPI.Use(limiter.Middleware())
		{
			publicAPI.GET("/services", publicHandler.ListServices)
			publicAPI.GET("/staff", publicHandler.ListStaff)
			publicAPI.GET("/availability", bookingHandler.Availability)
			publicAPI.POST("/slots", bookingHandler.Slots)
			publicAPI.POST("/price", bookingHandler.Price)
			publicAPI.POST("/appointments", bookingHandler.CreateAppointment)
		}

		secured := api.Group("/me")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("", meHandler.GetMe)

			secured.GET("/appointments", appointmentHandler.ListByDate)
			secured.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}

	return waitlistQueue.Close
}
