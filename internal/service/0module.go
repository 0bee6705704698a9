package service

import (
	"go.uber.org/fx"

	"github.com/laddertrack/backend/internal/pkg/riot"
	"github.com/laddertrack/backend/internal/repo"
)

func Module() fx.Option {
	return fx.Module("service",
		// bind repo/provider concretes to the interfaces services consume, so tests
		// can substitute fakes without touching the fx graph
		fx.Provide(
			func(r *repo.RankEvent) RankEventStore { return r },
			func(r *repo.Group) GroupStore { return r },
			func(r *repo.Account) AccountStore { return r },
			func(c *riot.Client) LiveFetcher { return c },
		),
		fx.Provide(
			NewSync,
			NewRankEvent,
			NewMemberStats,
		))
}
