package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/smilecare/clinic-api/internal/api/handler"
	"github.com/smilecare/clinic-api/internal/api/middleware"
	"github.com/smilecare/clinic-api/internal/core/domain"
	"github.com/smilecare/clinic-api/internal/core/ports"
)

// RouterConfig carries the constructed dependencies the route table needs.
type RouterConfig struct {
	DB           *mongo.Database
	Redis        *redis.Client
	Auth         ports.AuthService
	Appointments ports.AppointmentService
	Signer       ports.TokenSigner
	Logger       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("clinic"))

	authHandler := handler.NewAuthHandler(cfg.Auth)
	apptHandler := handler.NewAppointmentHandler(cfg.Appointments)

	requireAuth := middleware.Auth(cfg.Signer)
	clientOnly := middleware.RequireRole(domain.RoleClient)
	staffOnly := middleware.RequireRole(domain.RoleStaff)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/me", authHandler.Me, requireAuth)

	// --- Appointment routes (clients book and see their own) ---
	e.POST("/appointments", apptHandler.Book, requireAuth, clientOnly)
	e.GET("/appointments", apptHandler.ListMine, requireAuth, clientOnly)

	// --- Staff routes ---
	staff := e.Group("/staff", requireAuth, staffOnly)
	staff.GET("/appointments", apptHandler.ListAll)
	staff.GET("/patients", apptHandler.ListPatients)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(cfg.DB, cfg.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
