package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/wizard"
	"github.com/BruksfildServices01/clinic-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/clinic-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-scheduler/internal/metrics"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/notify"
	"github.com/BruksfildServices01/clinic-scheduler/internal/storage"
	ucAppointment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/usecase/booking"
)

// Deps are the process-wide singletons built in main.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Logger   *zap.Logger
	Metrics  *metrics.Metrics
	Sessions wizard.Store
	Audit    *audit.Dispatcher
	Notify   *notify.Dispatcher
	Relay    notify.Notifier
	Email    notify.EmailSender
	Audio    *storage.AudioStore
	Now      func() time.Time
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins...))

	// ======================================================
	// INFRA
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	clock := ucAppointment.Clock{TZ: cfg.Timezone, Now: d.Now}

	// ======================================================
	// USE CASES
	// ======================================================
	listServicesUC := ucAppointment.NewListServices(appointmentRepo)

	availabilityUC := ucAppointment.NewGetAvailability(
		appointmentRepo,
		clock,
		d.Metrics,
	)

	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		clock,
		d.Audit,
		d.Notify,
		d.Metrics,
	)

	completeAppointmentUC := ucAppointment.NewCompleteAppointment(appointmentRepo, clock, d.Audit)
	cancelAppointmentUC := ucAppointment.NewCancelAppointment(appointmentRepo, clock, d.Audit)
	listAppointmentsByDateUC := ucAppointment.NewListAppointmentsByDate(appointmentRepo)
	listAppointmentsByMonthUC := ucAppointment.NewListAppointmentsByMonth(appointmentRepo)
	manageAvailabilityUC := ucAppointment.NewManageAvailability(appointmentRepo, d.Audit)

	bookingWizard := booking.NewWizard(
		d.Sessions,
		appointmentRepo,
		availabilityUC,
		createAppointmentUC,
		d.Metrics,
		d.Logger,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.DB, cfg)
	meHandler := handlers.NewMeHandler(d.DB)

	publicHandler := handlers.NewPublicHandler(listServicesUC, availabilityUC, createAppointmentUC)
	bookingHandler := handlers.NewBookingHandler(bookingWizard)

	appointmentHandler := handlers.NewAppointmentHandler(
		completeAppointmentUC,
		cancelAppointmentUC,
		listAppointmentsByDateUC,
		listAppointmentsByMonthUC,
		cfg.Timezone,
	)
	availabilityHandler := handlers.NewAvailabilityHandler(manageAvailabilityUC)
	serviceHandler := handlers.NewServiceHandler(d.DB, d.Audit)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB, cfg.Timezone)

	contactHandler := handlers.NewContactHandler(d.DB, d.Email, cfg.AdminEmail, cfg.CheckEmailDomain, d.Logger)
	contentHandler := handlers.NewContentHandler()
	assessmentHandler := handlers.NewAssessmentHandler(d.DB, d.Audit)
	journalHandler := handlers.NewJournalHandler(d.DB, cfg.Timezone)
	meditationHandler := handlers.NewMeditationHandler(d.DB, d.Audio, d.Logger)
	notificationHandler := handlers.NewNotificationHandler(d.Relay, d.Metrics, d.Logger)

	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMin)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		publicAPI := api.Group("/public")
		publicAPI.Use(middleware.OptionalAuthMiddleware(cfg))
		{
			publicAPI.GET("/services", publicHandler.ListServices)
			publicAPI.GET("/availability", publicHandler.Availability)
			publicAPI.POST("/appointments", limiter.Middleware(), publicHandler.CreateAppointment)
			publicAPI.POST("/contact", limiter.Middleware(), contactHandler.Submit)

			publicAPI.GET("/assessments", assessmentHandler.List)
			publicAPI.GET("/assessments/:id", assessmentHandler.Get)
			publicAPI.POST("/assessments/:id/responses", limiter.Middleware(), assessmentHandler.SubmitResponses)

			publicAPI.GET("/meditations", meditationHandler.List)

			publicAPI.GET("/treatments", contentHandler.Treatments)
			publicAPI.GET("/testimonials", contentHandler.Testimonials)
			publicAPI.GET("/anatomy/systems", contentHandler.AnatomySystems)
			publicAPI.GET("/anatomy/systems/:id", contentHandler.AnatomySystem)
		}

		// ------------------------------
		// BOOKING WIZARD
		// ------------------------------
		bookingAPI := api.Group("/booking/sessions")
		bookingAPI.Use(limiter.Middleware())
		{
			bookingAPI.POST("", bookingHandler.Start)
			bookingAPI.GET("/:id", bookingHandler.Get)
			bookingAPI.POST("/:id/service", bookingHandler.ChooseService)
			bookingAPI.POST("/:id/date", bookingHandler.ChooseDate)
			bookingAPI.POST("/:id/slot", bookingHandler.ChooseSlot)
			bookingAPI.POST("/:id/submit", bookingHandler.Submit)
			bookingAPI.POST("/:id/back", bookingHandler.Back)
			bookingAPI.POST("/:id/reset", bookingHandler.Reset)
		}

		api.POST("/notifications/appointment", limiter.Middleware(), notificationHandler.Appointment)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", limiter.Middleware(), authHandler.Register)
		api.POST("/auth/login", limiter.Middleware(), authHandler.Login)

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.GET("/me/journal", journalHandler.List)
			secured.POST("/me/journal", journalHandler.Create)
			secured.POST("/me/meditations/:id/complete", meditationHandler.Complete)
		}

		// ------------------------------
		// STAFF
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(cfg), middleware.RequireRole(models.RoleStaff))
		{
			admin.POST("/services", serviceHandler.Create)
			admin.PATCH("/services/:id", serviceHandler.Update)

			admin.GET("/availability", availabilityHandler.Get)
			admin.PUT("/availability", availabilityHandler.Update)

			admin.GET("/appointments", appointmentHandler.ListByDate)
			admin.GET("/appointments/month", appointmentHandler.ListByMonth)
			admin.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			admin.PATCH("/appointments/:id/complete", appointmentHandler.Complete)

			admin.GET("/audit-logs", auditLogsHandler.List)

			admin.POST("/assessments", assessmentHandler.Create)
			admin.POST("/meditations", meditationHandler.Create)
		}
	}
}
