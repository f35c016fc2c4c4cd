package bootstrap

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"pagetitle/app/internal/config"
	"pagetitle/app/internal/db"
	apphttp "pagetitle/app/internal/http"
	applog "pagetitle/app/internal/log"
	"pagetitle/app/internal/pagetitle"
)

type Dependencies struct {
	Config config.Config
	Logger *logrus.Logger
}

type Result struct {
	Repository pagetitle.Repository
	HTTPServer *apphttp.Server
	Database   *gorm.DB
	Cleanup    func() error
}

// Build opens the store, applies the schema when enabled and wires the HTTP transport around it.
// Callers own the returned Cleanup, which stops the transport and closes the database.
func Build(ctx context.Context, deps Dependencies) (Result, error) {
	database, err := db.Open(databaseOptions(deps))
	if err != nil {
		return Result{}, eris.Wrap(err, "opening database")
	}

	closeOnError := func(wrapper error) (Result, error) {
		if closeErr := db.Close(database); closeErr != nil && deps.Logger != nil {
			deps.Logger.WithError(closeErr).Error("closing database after bootstrap failure")
		}
		return Result{}, wrapper
	}

	if deps.Config.DB.AutoMigrate {
		if err := pagetitle.Migrate(ctx, database, deps.Logger); err != nil {
			return closeOnError(eris.Wrap(err, "running page title migrations"))
		}
	}

	repo, err := pagetitle.NewRepository(database, deps.Logger)
	if err != nil {
		return closeOnError(eris.Wrap(err, "creating page title repository"))
	}

	httpServer, err := apphttp.NewServer(apphttp.Options{
		Repository: repo,
		Database:   database,
		Logger:     deps.Logger,
		RateLimiter: apphttp.RateLimiterSettings{
			Burst:             deps.Config.RateLimit.Burst,
			RequestsPerSecond: deps.Config.RateLimit.RequestsPerSecond,
			ClientTTL:         deps.Config.RateLimit.ClientTTL,
			TrustedProxies:    deps.Config.RateLimit.TrustedProxies,
		},
	})
	if err != nil {
		return closeOnError(eris.Wrap(err, "initialising http server"))
	}

	cleanup := func() error {
		httpServer.Close()
		return db.Close(database)
	}

	return Result{
		Repository: repo,
		HTTPServer: httpServer,
		Database:   database,
		Cleanup:    cleanup,
	}, nil
}

func databaseOptions(deps Dependencies) db.Options {
	opts := db.Options{Driver: deps.Config.DB.Driver}
	if deps.Logger != nil {
		opts.Logger = applog.NewGormLogger(deps.Logger)
	}

	switch deps.Config.DB.Driver {
	case config.DriverPostgres:
		opts.DSN = deps.Config.DB.PostgresDSN()
	default:
		opts.Path = deps.Config.DB.Path
	}

	return opts
}
