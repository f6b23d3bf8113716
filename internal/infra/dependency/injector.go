// Package dependency provides dependency injection for the application.
package dependency

import (
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/caresync/backend/config"
	"github.com/caresync/backend/internal/application/adapter"
	"github.com/caresync/backend/internal/application/usecase/auth"
	"github.com/caresync/backend/internal/application/usecase/cycle"
	"github.com/caresync/backend/internal/application/usecase/logentry"
	"github.com/caresync/backend/internal/application/usecase/reminder"
	"github.com/caresync/backend/internal/application/usecase/settings"
	infracache "github.com/caresync/backend/internal/infra/cache"
	"github.com/caresync/backend/internal/infra/scheduler"
	"github.com/caresync/backend/internal/infra/server/router"
	"github.com/caresync/backend/internal/integration/adapters"
	"github.com/caresync/backend/internal/integration/cache"
	"github.com/caresync/backend/internal/integration/email"
	"github.com/caresync/backend/internal/integration/email/templates"
	"github.com/caresync/backend/internal/integration/entrypoint/controller"
	"github.com/caresync/backend/internal/integration/entrypoint/middleware"
	"github.com/caresync/backend/internal/integration/persistence"
)

// Options carries the runtime collaborators that differ between the server
// and the integration suite.
type Options struct {
	// DBHealthChecker defaults to pinging db.
	DBHealthChecker func() bool
	// RedisClient enables the prediction cache when set.
	RedisClient *redis.Client
	// EmailSender defaults to Resend when an API key is configured, otherwise
	// to an in-memory mock.
	EmailSender adapter.EmailSender
	// Clock defaults to the system clock in the scheduler time zone.
	Clock adapter.Clock
}

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	DB          *gorm.DB
	Router      *router.Router
	EmailWorker *email.Worker
	EmailSender adapter.EmailSender
	Scheduler   *scheduler.Scheduler
	Reminders   *reminder.ScheduleRemindersUseCase
	Cache       adapter.PredictionCache
	Clock       adapter.Clock
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, opts Options) (*Injector, error) {
	clock := opts.Clock
	if clock == nil {
		clock = adapters.NewSystemClock(cfg.Scheduler.TimeZone)
	}

	// Repositories
	userRepo := persistence.NewUserRepository(db)
	tokenRepo := persistence.NewTokenRepository(db)
	logRepo := persistence.NewLogEntryRepository(db)
	emailQueueRepo := persistence.NewEmailQueueRepository(db)

	// Adapters and services
	passwordService := adapters.NewPasswordService(cfg.JWT.BcryptCost)
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, adapters.TokenDurations{
		Access:            cfg.JWT.AccessTokenExpiry,
		Refresh:           cfg.JWT.RefreshTokenExpiry,
		RememberMeAccess:  cfg.JWT.RememberMeAccessTokenExpiry,
		RememberMeRefresh: cfg.JWT.RememberMeRefreshTokenExpiry,
	}, tokenRepo)

	predictionCache := cache.NewNoopPredictionCache()
	var cacheHealthChecker func() bool
	if opts.RedisClient != nil {
		predictionCache = cache.NewRedisPredictionCache(opts.RedisClient, cfg.Redis.CacheTTL)
		cacheHealthChecker = infracache.HealthChecker(opts.RedisClient)
	}

	sender := opts.EmailSender
	if sender == nil {
		if cfg.Email.ResendAPIKey != "" {
			client := email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
			if cfg.Email.ResendBaseURL != "" {
				var err error
				if client, err = client.WithBaseURL(cfg.Email.ResendBaseURL); err != nil {
					return nil, err
				}
			}
			sender = client
		} else {
			sender = email.NewMockEmailSender()
		}
	}
	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}
	emailService := email.NewService(emailQueueRepo, cfg.Email.AppBaseURL)
	emailWorker := email.NewWorker(emailQueueRepo, sender, renderer, email.WorkerConfig{
		PollInterval: cfg.Email.PollInterval,
		BatchSize:    cfg.Email.BatchSize,
	})

	// Auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService, clock)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)
	deleteAccountUseCase := auth.NewDeleteAccountUseCase(userRepo, logRepo, emailQueueRepo, passwordService, tokenService, predictionCache)

	// Settings use cases
	completeOnboardingUseCase := settings.NewCompleteOnboardingUseCase(userRepo, logRepo, predictionCache, clock, cfg.Cycle.DefaultLutealPhaseLength)
	getSettingsUseCase := settings.NewGetSettingsUseCase(userRepo)
	updateSettingsUseCase := settings.NewUpdateSettingsUseCase(userRepo, predictionCache, clock)

	// Log entry use cases
	saveLogEntryUseCase := logentry.NewSaveLogEntryUseCase(logRepo, predictionCache, clock)
	listLogEntriesUseCase := logentry.NewListLogEntriesUseCase(logRepo)
	getLogEntryUseCase := logentry.NewGetLogEntryUseCase(logRepo)
	deleteLogEntryUseCase := logentry.NewDeleteLogEntryUseCase(logRepo, predictionCache)

	// Cycle use cases
	resolver := cycle.NewProfileResolver(userRepo, logRepo)
	dashboardUseCase := cycle.NewGetDashboardUseCase(resolver, predictionCache, clock)
	calendarUseCase := cycle.NewGetCalendarUseCase(resolver, clock)
	phaseUseCase := cycle.NewGetPhaseUseCase(resolver)
	historyUseCase := cycle.NewGetHistoryUseCase(resolver)

	remindersUseCase := reminder.NewScheduleRemindersUseCase(userRepo, resolver, emailService, clock, cfg.Cycle.ReminderLeadDays)

	// Controllers
	dbHealthChecker := opts.DBHealthChecker
	if dbHealthChecker == nil {
		dbHealthChecker = func() bool {
			sqlDB, err := db.DB()
			if err != nil {
				return false
			}
			return sqlDB.Ping() == nil
		}
	}
	healthController := controller.NewHealthController(dbHealthChecker, cacheHealthChecker)
	authController := controller.NewAuthController(registerUseCase, loginUseCase, refreshTokenUseCase, logoutUseCase)
	userController := controller.NewUserController(deleteAccountUseCase)
	settingsController := controller.NewSettingsController(completeOnboardingUseCase, getSettingsUseCase, updateSettingsUseCase)
	logEntryController := controller.NewLogEntryController(saveLogEntryUseCase, listLogEntriesUseCase, getLogEntryUseCase, deleteLogEntryUseCase)
	cycleController := controller.NewCycleController(dashboardUseCase, calendarUseCase, phaseUseCase, historyUseCase, clock)

	// Middleware
	// Higher limits under automated tests keep login-heavy suites stable.
	var loginRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		loginRateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	} else {
		loginRateLimiter = middleware.NewRateLimiter()
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	r := router.NewRouter(
		healthController,
		authController,
		userController,
		settingsController,
		logEntryController,
		cycleController,
		loginRateLimiter,
		authMiddleware,
	)

	// Background jobs
	var location *time.Location
	if loc, err := time.LoadLocation(cfg.Scheduler.TimeZone); err == nil {
		location = loc
	}
	jobs := scheduler.New(location,
		scheduler.ReminderJob(cfg.Scheduler.ReminderCron, remindersUseCase),
		scheduler.CleanupJob(cfg.Scheduler.CleanupCron, tokenRepo, emailWorker, cfg.Email.SentRetentionDays),
	)

	return &Injector{
		Config:      cfg,
		DB:          db,
		Router:      r,
		EmailWorker: emailWorker,
		EmailSender: sender,
		Scheduler:   jobs,
		Reminders:   remindersUseCase,
		Cache:       predictionCache,
		Clock:       clock,
	}, nil
}
