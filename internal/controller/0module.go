package controller

import (
	"go.uber.org/fx"

	controllerv1 "github.com/laddertrack/backend/internal/controller/v1"
)

func Module() fx.Option {
	return fx.Module("controller",
		// Controllers (v1)
		controllerv1.Module(),

		// Controllers (admin)
		fx.Invoke(RegisterAdminController),
	)
}
