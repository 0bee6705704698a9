package app

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/laddertrack/backend/cmd/app/server"
	"github.com/laddertrack/backend/internal/pkg/bininfo"
)

func Run() {
	app := &cli.App{
		Name:        "ltbackend",
		Description: "The LadderTrack backend. Built with Go, fiber, bun and go.uber.org/fx. Uses Postgres as the rank event ledger and Redis as the stats cache.",
		Version:     bininfo.Version,
		Commands: []*cli.Command{
			server.Command(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run app")
	}
}
