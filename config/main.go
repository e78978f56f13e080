package config

import (
	"context"
	"fmt"
	"time"

	"github.com/bidoro/waitlist-api/config/router"
	"github.com/bidoro/waitlist-api/internal/log"
	"github.com/bidoro/waitlist-api/internal/models"
	"github.com/bidoro/waitlist-api/internal/reporting"
	"github.com/bidoro/waitlist-api/pkg/constants"
	"github.com/bidoro/waitlist-api/pkg/mailer"
	"github.com/bidoro/waitlist-api/pkg/utils"
	"gorm.io/gorm"
)

type ApplicationConfig struct {
	DB            *gorm.DB
	RouterService *router.RouterService
	Logger        *log.Logger

	// Nil when no mail provider is configured.
	Sender       mailer.Sender
	EmailContent *EmailContentConfig

	Config          *AppConfig
	TracingShutdown func(context.Context) error
}

type AppConfig struct {
	RequestTimeout time.Duration
	Reporting      reporting.Config
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		RequestTimeout: utils.GetEnvPositiveDuration("REQUEST_TIMEOUT", constants.DefaultRequestTimeout),
		Reporting: reporting.Config{
			DSN:         utils.GetEnvTrimmed("SENTRY_DSN"),
			Environment: utils.GetEnvTrimmedOrDefault(AppEnvKey, "development"),
			Release:     utils.GetEnvTrimmed("SENTRY_RELEASE"),
		},
	}
}

func (ac *ApplicationConfig) Cleanup() {
	if ac.TracingShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), constants.ShutdownFlushTimeout)
		defer cancel()
		if err := ac.TracingShutdown(ctx); err != nil {
			ac.Logger.Error("Failed to shutdown tracer provider", "error", err)
		}
	}

	reporting.Flush(constants.ShutdownFlushTimeout)

	if ac.DB != nil {
		CloseDatabase(ac.DB, ac.Logger)
	}

	if ac.RouterService != nil {
		ac.RouterService.Cleanup()
	}

	ac.Logger.Info("Application cleanup completed")
}

func LoadApplicationConfiguration(logger *log.Logger, autoMigrate bool) (*ApplicationConfig, error) {
	InitializeEnvFile(logger)

	if autoMigrate {
		appEnv := GetAppEnv()
		if err := ValidateAutoMigrateAllowed(appEnv); err != nil {
			return nil, err
		}
		if appEnv == "" {
			logger.Warn("APP_ENV not set; allowing --auto-migrate as development")
		}
	}

	appConfig := NewAppConfig()

	if err := reporting.Init(appConfig.Reporting); err != nil {
		return nil, err
	}
	if reporting.Enabled() {
		logger.Info("Sentry error reporting enabled", "environment", appConfig.Reporting.Environment)
	}

	tracingShutdown, err := SetupTracing(logger)
	if err != nil {
		return nil, err
	}

	sender, err := NewMailerConfig().NewSenderOrNil(logger)
	if err != nil {
		return nil, err
	}

	db, err := NewDatabase(logger, nil)
	if err != nil {
		return nil, err
	}

	if autoMigrate {
		if err := AutoMigrate(logger, db, models.ModelRegistry...); err != nil {
			return nil, fmt.Errorf("auto-migrate: %w", err)
		}
	}

	routerService := router.CreateRouterService(logger, &router.RouterConfig{
		RequestTimeout: appConfig.RequestTimeout,
	})

	logger.Info("Application configuration loaded successfully")

	return &ApplicationConfig{
		DB:              db,
		RouterService:   routerService,
		Logger:          logger,
		Sender:          sender,
		EmailContent:    NewEmailContentConfig(),
		Config:          appConfig,
		TracingShutdown: tracingShutdown,
	}, nil
}
