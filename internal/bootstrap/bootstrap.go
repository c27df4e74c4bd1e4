package bootstrap

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/ccasilihan/gradebook/internal/app/controllers"
	appMigrations "github.com/ccasilihan/gradebook/internal/app/migrations"
	appRepos "github.com/ccasilihan/gradebook/internal/app/repositories"
	appRoutes "github.com/ccasilihan/gradebook/internal/app/routes"
	appServices "github.com/ccasilihan/gradebook/internal/app/services"
	"github.com/ccasilihan/gradebook/internal/config"
	"github.com/ccasilihan/gradebook/internal/db"
	appMiddleware "github.com/ccasilihan/gradebook/internal/middleware"
	pkgAuth "github.com/ccasilihan/gradebook/internal/pkg/auth"
	"github.com/ccasilihan/gradebook/internal/pkg/email"
	"github.com/ccasilihan/gradebook/internal/pkg/helpers"
	"github.com/ccasilihan/gradebook/internal/pkg/logger"
	"github.com/ccasilihan/gradebook/internal/pkg/otp"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	StudentService    appServices.StudentService
	CourseService     appServices.CourseService
	GradeService      appServices.GradeService
	OTPService        appServices.OTPService
	StudentController *appControllers.StudentController
	CourseController  *appControllers.CourseController
	GradeController   *appControllers.GradeController
	OTPController     *appControllers.OTPController
	AuthMiddleware    *appMiddleware.AuthMiddleware
	Repos             *appRepos.Repositories
	JWTService        *pkgAuth.JWTService
	OTPStore          otp.Store
	Logger            zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")
	return database, nil
}

// SetupOTPStore selects the verification-code store. With a configured
// Redis address codes survive restarts and are shared between instances;
// otherwise an in-process store is used.
func SetupOTPStore(cfg *config.Config, lgr zerolog.Logger) (otp.Store, error) {
	ttl := helpers.ParseDuration(cfg.OTP.TTL, 5*time.Minute)

	if cfg.Redis.Addr != "" {
		client, err := db.NewRedisClient(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		lgr.Info().Str("addr", cfg.Redis.Addr).Msg("Using Redis verification-code store")
		return otp.NewRedisStore(client, ttl), nil
	}

	lgr.Info().Msg("Redis not configured, using in-memory verification-code store")
	return otp.NewMemoryStore(ttl), nil
}

// BuildDependencies initializes repositories, services and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, otpStore otp.Store, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr, OTPStore: otpStore}

	deps.Repos = appRepos.NewRepositories(database)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenExp:    helpers.ParseDuration(cfg.JWT.TokenExpiration, 24*time.Hour),
		TokenIssuer: cfg.JWT.Issuer,
	})

	emailSender := email.NewSMTPSender(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		UseTLS:    cfg.SMTP.UseTLS,
	}, lgr)

	deps.StudentService = appServices.NewStudentService(deps.Repos.Students, deps.JWTService, lgr)
	deps.CourseService = appServices.NewCourseService(deps.Repos.Courses, lgr)
	deps.GradeService = appServices.NewGradeService(deps.Repos.Grades, deps.Repos.Courses, lgr)
	deps.OTPService = appServices.NewOTPService(otpStore, emailSender, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.StudentController = appControllers.NewStudentController(deps.StudentService, lgr)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService, lgr)
	deps.GradeController = appControllers.NewGradeController(deps.GradeService, lgr)
	deps.OTPController = appControllers.NewOTPController(deps.OTPService, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(appMiddleware.RequestLogger())
	router.Use(appMiddleware.Recovery())

	appRoutes.SetupRouter(router,
		deps.StudentController,
		deps.CourseController,
		deps.GradeController,
		deps.OTPController,
		deps.AuthMiddleware,
	)

	setupFrontendServing(router, cfg, lgr)

	return router
}

// setupFrontendServing serves the built frontend bundle when present. Any
// unmatched non-API route falls back to index.html for client-side routing.
func setupFrontendServing(router *gin.Engine, cfg *config.Config, lgr zerolog.Logger) {
	frontendDir := cfg.Server.FrontendDir
	if frontendDir == "" {
		return
	}
	if _, err := os.Stat(frontendDir); os.IsNotExist(err) {
		lgr.Warn().Str("path", frontendDir).Msg("Frontend build directory not found, skipping static serving")
		return
	}

	router.Static("/static", filepath.Join(frontendDir, "static"))
	router.StaticFile("/", filepath.Join(frontendDir, "index.html"))
	router.NoRoute(func(c *gin.Context) {
		c.File(filepath.Join(frontendDir, "index.html"))
	})
	lgr.Info().Str("path", frontendDir).Msg("Static frontend serving configured")
}
