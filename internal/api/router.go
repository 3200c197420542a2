package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/time/rate"

	_ "github.com/healthhub/fitness-api/docs"
	"github.com/healthhub/fitness-api/internal/api/handler"
	"github.com/healthhub/fitness-api/internal/api/middleware"
	"github.com/healthhub/fitness-api/internal/core/domain"
	"github.com/healthhub/fitness-api/internal/core/ports"
	"github.com/healthhub/fitness-api/internal/infrastructure/http/handlers"
	"github.com/healthhub/fitness-api/internal/realtime"
)

// Services groups the domain services the routes call into.
type Services struct {
	Auth            ports.AuthService
	Users           ports.UserService
	Goals           ports.GoalService
	Activity        ports.ActivityService
	Workouts        ports.WorkoutService
	Sessions        ports.WorkoutSessionService
	Challenges      ports.ChallengeService
	Recommendations ports.RecommendationService
}

type Options struct {
	Services Services
	// Realtime serves /ws when set.
	Realtime *realtime.Handler

	// Optional backing services checked by /health/ready.
	Mongo *mongo.Database
	Redis *redis.Client

	JWTSecret    string
	AuthRequired bool
	CORSOrigins  []string
	// RateLimit is requests per second per client IP; 0 disables limiting.
	RateLimit float64
	RateBurst int
	// Debug adds the error chain to error responses.
	Debug   bool
	Started time.Time

	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer

	Log zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Log, opts.Debug)

	if opts.Registerer == nil {
		opts.Registerer = prometheus.DefaultRegisterer
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}
	if opts.Started.IsZero() {
		opts.Started = time.Now()
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: contentSecurityPolicy,
	}))
	if opts.RateLimit > 0 {
		e.Use(rateLimiter(opts.RateLimit, opts.RateBurst))
	}
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: corsOrigins(opts.CORSOrigins),
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "fitness_api",
		Registerer: opts.Registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics" || c.Path() == "/ws"
		},
	}))

	// --- Operational routes (no auth required) ---
	healthHandler := handlers.NewHealthHandler(opts.Started)
	healthDepsHandler := handlers.NewHealthDependenciesHandler(opts.Mongo, opts.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: opts.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	if opts.Realtime != nil {
		e.GET("/ws", opts.Realtime.Serve)
	}

	// --- API ---
	svc := opts.Services
	authHandler := handler.NewAuthHandler(svc.Auth)
	userHandler := handler.NewUserHandler(svc.Users, svc.Challenges)
	activityHandler := handler.NewActivityHandler(svc.Activity)
	goalHandler := handler.NewGoalHandler(svc.Goals)
	workoutHandler := handler.NewWorkoutHandler(svc.Workouts)
	sessionHandler := handler.NewSessionHandler(svc.Sessions)
	challengeHandler := handler.NewChallengeHandler(svc.Challenges)
	recommendationHandler := handler.NewRecommendationHandler(svc.Recommendations)

	api := e.Group("/api")
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	secured := api.Group("", middleware.Auth(opts.JWTSecret, opts.AuthRequired))

	secured.GET("/users/:id", userHandler.Get)
	secured.PATCH("/users/:id", userHandler.Update)
	secured.GET("/users/:userId/challenges", userHandler.Challenges)

	secured.GET("/activity-stats/:userId", activityHandler.Get)
	secured.POST("/activity-stats", activityHandler.Record)
	secured.GET("/activity-stats/:userId/history", activityHandler.History)

	secured.GET("/goals/:userId", goalHandler.List)
	secured.POST("/goals", goalHandler.Create)
	secured.PATCH("/goals/:id", goalHandler.Update)

	secured.GET("/workouts", workoutHandler.List)
	secured.GET("/workouts/:id", workoutHandler.Get)
	secured.POST("/workouts", workoutHandler.Create, middleware.RBAC(domain.RoleAdmin))

	secured.POST("/workout-sessions", sessionHandler.Start)
	secured.GET("/workout-sessions/:userId", sessionHandler.List)
	secured.PATCH("/workout-sessions/:id", sessionHandler.Update)

	secured.GET("/challenges", challengeHandler.List)
	secured.POST("/challenges", challengeHandler.Create)
	secured.GET("/challenges/:id", challengeHandler.Get)
	secured.GET("/challenges/:id/participants", challengeHandler.Participants)
	secured.POST("/challenges/:id/join", challengeHandler.Join)
	secured.PATCH("/challenges/:challengeId/progress", challengeHandler.Progress)

	secured.GET("/recommendations/:userId", recommendationHandler.List)
	secured.POST("/recommendations/:id/feedback", recommendationHandler.Feedback)
	secured.POST("/workout-plans", recommendationHandler.WorkoutPlan)
	secured.POST("/insights", recommendationHandler.Insight)

	return e
}

// The swagger UI needs inline scripts and styles.
const contentSecurityPolicy = "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; " +
	"img-src 'self' data:; font-src 'self'; connect-src 'self'"

// rateLimiter limits each client IP with an in-memory token bucket.
// Health checks and metrics scrapes are not limited.
func rateLimiter(rps float64, burst int) echo.MiddlewareFunc {
	store := echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(rps),
		Burst:     burst,
		ExpiresIn: 3 * time.Minute,
	})
	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Skipper: func(c echo.Context) bool {
			switch c.Path() {
			case "/health", "/health/ready", "/metrics":
				return true
			}
			return false
		},
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		Store: store,
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusForbidden, "unable to identify client").SetInternal(err)
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, "Too many requests, please try again later.")
		},
	})
}

func corsOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
