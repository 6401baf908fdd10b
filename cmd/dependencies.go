package cmd

import (
	"context"

	"crm-insights/config"
	"crm-insights/pkg/cache"
	"crm-insights/pkg/logger"
	"crm-insights/pkg/middleware"
	"crm-insights/pkg/objstore"
	"crm-insights/pkg/postgres"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AppDependency struct {
	db        *postgres.DB
	cfg       *config.Config
	log       *logger.Logger
	validator *goValidator.Validate
	echo      *echo.Echo
	cache     cache.Cache
	store     *objstore.Store
}

func NewAppDependency(ctx context.Context) (*AppDependency, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Encoding, cfg.Log.BufferSize)
	if err != nil {
		return nil, err
	}

	db, err := postgres.NewDB(cfg.DB, log)
	if err != nil {
		log.Error("Failed to connect to database", zap.Error(err))
		return nil, err
	}

	var store *objstore.Store
	if cfg.Storage.Enabled() {
		store, err = objstore.New(cfg.Storage)
		if err != nil {
			log.Error("Failed to create object storage client", zap.Error(err))
			return nil, err
		}
	} else {
		log.Warn("Object storage not configured, recording uploads disabled")
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.NewRateLimiterMiddleware())

	return &AppDependency{
		cfg:       cfg,
		log:       log,
		validator: goValidator.New(),
		db:        db,
		echo:      e,
		cache:     cache.NewCache(cfg.Cache.DefaultExpiration, cfg.Cache.CleanupInterval),
		store:     store,
	}, nil
}

func (d *AppDependency) Close() error {
	d.log.Info("Closing app dependency")
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}
