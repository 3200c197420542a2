// @title           HealthHub Fitness API
// @version         1.0
// @description     Fitness tracking API: profiles, goals, daily activity, workouts, challenges and recommendations.
// @BasePath        /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/healthhub/fitness-api/internal/api"
	"github.com/healthhub/fitness-api/internal/core/ports"
	"github.com/healthhub/fitness-api/internal/core/service"
	"github.com/healthhub/fitness-api/internal/infrastructure/activitylog"
	"github.com/healthhub/fitness-api/internal/infrastructure/advisor"
	"github.com/healthhub/fitness-api/internal/infrastructure/cache"
	"github.com/healthhub/fitness-api/internal/infrastructure/config"
	"github.com/healthhub/fitness-api/internal/infrastructure/db/mongo"
	"github.com/healthhub/fitness-api/internal/infrastructure/db/redis"
	"github.com/healthhub/fitness-api/internal/infrastructure/queue"
	"github.com/healthhub/fitness-api/internal/infrastructure/repository"
	"github.com/healthhub/fitness-api/internal/realtime"
	"github.com/healthhub/fitness-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Init(logger.Options{Service: "fitness-api"})
		bootLog.Fatal().Err(err).Msg("load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "fitness-api",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Storage ---
	collections := repository.MemoryCollections()
	var db *mongodriver.Database
	if cfg.Storage.Backend == config.StorageMongo {
		client, database, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func() { _ = client.Disconnect(context.Background()) }()

		if err := mongo.EnsureIndexes(ctx, database); err != nil {
			return err
		}
		db = database
		collections = mongo.Collections(database)
	}
	repos := repository.New(collections)
	log.Info().Str("backend", cfg.Storage.Backend).Msg("storage ready")

	// --- Collaborators ---
	var (
		workoutCache ports.Cache = cache.Noop{}
		rdb          *goredis.Client
	)
	if cfg.Redis.Addr != "" {
		client, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()
		rdb = client
		workoutCache = redis.NewCache(client, "fitness:")
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis cache enabled")
	}

	var activityLog ports.ActivityLogger = activitylog.NewLogger(logger.Component("activity"))
	if len(cfg.Kafka.Brokers) > 0 {
		producer := activitylog.NewKafka(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer func() { _ = producer.Close() }()
		activityLog = producer
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("kafka activity log enabled")
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	hub := realtime.NewHub(logger.Component("realtime"))
	go hub.Run(hubCtx)

	// --- Services ---
	recommendations := service.NewRecommendationService(repos.Recommendations, repos.Workouts, advisor.New(), log)
	dispatcher := queue.NewDispatcher(cfg.RecommendationWorkers, recommendations, logger.Component("queue"))
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	dispatcher.Start(workerCtx)

	activity := service.NewActivityService(repos.ActivityStats, repos.Goals, activityLog, log)
	challenges := service.NewChallengeService(repos.Challenges, repos.Participants, repos.Users, hub, log)
	services := api.Services{
		Auth:            service.NewAuthService(repos.Users, repos.Goals, dispatcher, cfg.JWTSecret, cfg.TokenTTL, log),
		Users:           service.NewUserService(repos.Users, log),
		Goals:           service.NewGoalService(repos.Goals, repos.Users, log),
		Activity:        activity,
		Workouts:        service.NewWorkoutService(repos.Workouts, workoutCache, cfg.Redis.CacheTTL, log),
		Sessions:        service.NewWorkoutSessionService(repos.WorkoutSessions, repos.Workouts, repos.Users, activity, activityLog, log),
		Challenges:      challenges,
		Recommendations: recommendations,
	}

	if cfg.Storage.Seed {
		if err := repository.SeedWorkouts(ctx, repos.Workouts, log); err != nil {
			stopWorkers()
			return err
		}
	}

	// --- HTTP ---
	e := api.NewRouter(api.Options{
		Services:     services,
		Realtime:     realtime.NewHandler(hub, challenges, cfg.CORSOrigin, logger.Component("realtime")),
		Mongo:        db,
		Redis:        rdb,
		JWTSecret:    cfg.JWTSecret,
		AuthRequired: cfg.AuthRequired,
		CORSOrigins:  cfg.CORSOrigin,
		RateLimit:    cfg.RateLimit.RPS,
		RateBurst:    cfg.RateLimit.Burst,
		Debug:        cfg.IsDevelopment(),
		Started:      time.Now(),
		Log:          log,
	})

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr()).Str("env", cfg.Env).Msg("http server listening")
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case runErr = <-serverErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}

	stopHub()
	stopWorkers()
	dispatcher.Wait()

	log.Info().Msg("server stopped")
	return runErr
}
