package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/invigilate/internal/app/controllers"
	appJobs "github.com/yigit/invigilate/internal/app/jobs"
	appMigrations "github.com/yigit/invigilate/internal/app/migrations"
	"github.com/yigit/invigilate/internal/app/models/dto"
	appRepos "github.com/yigit/invigilate/internal/app/repositories"
	appRoutes "github.com/yigit/invigilate/internal/app/routes"
	appServices "github.com/yigit/invigilate/internal/app/services"
	"github.com/yigit/invigilate/internal/config"
	"github.com/yigit/invigilate/internal/db"
	appMiddleware "github.com/yigit/invigilate/internal/middleware"
	pkgAuth "github.com/yigit/invigilate/internal/pkg/auth"
	"github.com/yigit/invigilate/internal/pkg/helpers"
	"github.com/yigit/invigilate/internal/pkg/logger"
	"github.com/yigit/invigilate/internal/seed"
)

// ConfigPathEnv overrides the default configs/config.yaml location.
const ConfigPathEnv = "CONFIG_PATH"

// Dependencies holds all the application dependencies
type Dependencies struct {
	Store               appRepos.Store
	JWTService          *pkgAuth.JWTService
	AuthService         appServices.AuthService
	FacultyService      appServices.FacultyService
	TimetableService    appServices.TimetableService
	ExamService         appServices.ExamService
	DutyService         appServices.DutyService
	RequestService      appServices.RequestService
	AuthController      *appControllers.AuthController
	FacultyController   *appControllers.FacultyController
	TimetableController *appControllers.TimetableController
	ExamController      *appControllers.ExamController
	DutyController      *appControllers.DutyController
	RequestController   *appControllers.RequestController
	AuthMiddleware      *appMiddleware.AuthMiddleware
	Jobs                *appJobs.Manager
	Logger              zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := os.Getenv(ConfigPathEnv)
	if configPath == "" {
		configPath = filepath.Join("configs", "config.yaml")
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStore opens the store selected by database.driver. For postgres it
// connects and applies the embedded migrations; the returned database is nil
// for the memory store.
func SetupStore(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (appRepos.Store, *db.PostgresDB, error) {
	if cfg.Database.Driver != config.DriverPostgres {
		lgr.Info().Msg("Using in-memory store")
		return appRepos.NewMemoryStore(), nil, nil
	}

	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool, lgr)
	if err := migrator.Migrate(ctx, appMigrations.Files()); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return appRepos.NewPostgresStore(database), database, nil
}

// BuildDependencies initializes services, controllers and background jobs
// on top of store.
func BuildDependencies(cfg *config.Config, store appRepos.Store, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Store: store, Logger: lgr}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 12*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	loc := cfg.Location()
	component := func(name string) zerolog.Logger {
		return logger.Component(lgr, name)
	}

	deps.FacultyService = appServices.NewFacultyService(store, pkgAuth.HashPassword, component("faculty"))
	deps.AuthService = appServices.NewAuthService(store, deps.JWTService, component("auth"))
	deps.TimetableService = appServices.NewTimetableService(store, pkgAuth.HashPassword, cfg.Scheduling.DefaultFacultyPassword, component("timetable"))
	deps.ExamService = appServices.NewExamService(store, loc, component("exams"))
	deps.DutyService = appServices.NewDutyService(store, component("duties"))
	deps.RequestService = appServices.NewRequestService(store, component("requests"))

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, component("auth"))
	deps.FacultyController = appControllers.NewFacultyController(deps.FacultyService)
	deps.TimetableController = appControllers.NewTimetableController(deps.TimetableService, cfg.Scheduling.TimetableCSV, component("timetable"))
	deps.ExamController = appControllers.NewExamController(deps.ExamService)
	deps.DutyController = appControllers.NewDutyController(deps.DutyService, component("duties"))
	deps.RequestController = appControllers.NewRequestController(deps.RequestService)

	deps.Jobs = appJobs.NewManager(deps.ExamService, cfg.Scheduling.CompletionSchedule, loc, lgr)

	return deps, nil
}

// SeedDefaultData creates the admin account and imports the configured
// timetable. Errors are logged and returned; callers may proceed.
func SeedDefaultData(ctx context.Context, cfg *config.Config, deps *Dependencies) error {
	return seed.CreateDefaultData(ctx, cfg, deps.FacultyService, deps.TimetableService, logger.Component(deps.Logger, "seed"))
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	if err := dto.RegisterBindingValidators(); err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestLogger(lgr))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.FacultyController,
		deps.TimetableController,
		deps.ExamController,
		deps.DutyController,
		deps.RequestController,
		deps.AuthMiddleware,
	)

	return router, nil
}
