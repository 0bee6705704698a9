package app

import (
	"time"

	"go.uber.org/fx"

	"github.com/laddertrack/backend/internal/app/appconfig"
	"github.com/laddertrack/backend/internal/app/appcontext"
	"github.com/laddertrack/backend/internal/controller"
	"github.com/laddertrack/backend/internal/infra"
	"github.com/laddertrack/backend/internal/model/cache"
	"github.com/laddertrack/backend/internal/pkg/logger"
	"github.com/laddertrack/backend/internal/repo"
	"github.com/laddertrack/backend/internal/server"
	"github.com/laddertrack/backend/internal/service"
	"github.com/laddertrack/backend/internal/workers/syncwkr"
)

func Options(ctx appcontext.Ctx, additionalOpts ...fx.Option) []fx.Option {
	conf, err := appconfig.Parse(ctx)
	if err != nil {
		panic(err)
	}

	// logger and configuration are the only two things that are not in the fx graph
	// because some other packages need them to be initialized before fx starts
	logger.Configure(conf)

	baseOpts := []fx.Option{
		// fx meta
		fx.WithLogger(logger.Fx),

		// Misc
		fx.Supply(conf),

		// Infrastructures
		infra.Module(),

		// Servers
		server.Module(),

		// Repositories
		repo.Module(),

		// Services
		service.Module(),

		// Global Singleton Inits: Keep those before controllers to ensure they are initialized
		// before controllers are registered as controllers are also fx#Invoke functions which
		// are called in the order of their registration.
		fx.Invoke(cache.Initialize),

		// Controllers
		controller.Module(),

		// Workers
		fx.Invoke(syncwkr.Start),

		// fx Extra Options
		fx.StartTimeout(1 * time.Second),
		// StopTimeout is not typically needed, since we're using fiber's Shutdown(),
		// in which fiber has its own IdleTimeout for controlling the shutdown timeout.
		// It acts as a countermeasure in case the fiber app is not properly shutting down.
		fx.StopTimeout(5 * time.Minute),
	}

	return append(baseOpts, additionalOpts...)
}

func New(ctx appcontext.Ctx, additionalOpts ...fx.Option) *fx.App {
	return fx.New(Options(ctx, additionalOpts...)...)
}
