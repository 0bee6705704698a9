package infra

import (
	"go.uber.org/fx"

	"github.com/laddertrack/backend/internal/pkg/riot"
)

func Module() fx.Option {
	return fx.Module("infra", fx.Provide(
		Redis,
		RedSync,
		Postgres,
		riot.NewClient,
	))
}
