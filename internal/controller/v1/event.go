package v1

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"github.com/laddertrack/backend/internal/model/types"
	"github.com/laddertrack/backend/internal/server/svr"
	"github.com/laddertrack/backend/internal/service"
	"github.com/laddertrack/backend/internal/util/rekuest"
)

type RankEvent struct {
	fx.In

	RankEventService *service.RankEvent
}

func RegisterRankEvent(v1 *svr.V1, c RankEvent) {
	v1.Post("/events", c.CreateRankEvent)
}

// @Summary  Submit a Rank Event
// @Tags     RankEvent
// @Accept   json
// @Produce  json
// @Param    event  body      types.CreateRankEventRequest  true  "Rank event"
// @Success  201    {object}  model.RankEvent               "Event has been recorded"
// @Failure  400    {object}  lterr.LadderError             "Invalid request"
// @Failure  500    {object}  lterr.LadderError             "An unexpected error occurred"
// @Router   /api/v1/events [POST]
func (c *RankEvent) CreateRankEvent(ctx *fiber.Ctx) error {
	var req types.CreateRankEventRequest
	if err := rekuest.ValidBody(ctx, &req); err != nil {
		return err
	}

	event, err := c.RankEventService.Ingest(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(event)
}
