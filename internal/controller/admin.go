package controller

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	modelcache "github.com/laddertrack/backend/internal/model/cache"
	"github.com/laddertrack/backend/internal/model/types"
	"github.com/laddertrack/backend/internal/pkg/lterr"
	"github.com/laddertrack/backend/internal/server/svr"
	"github.com/laddertrack/backend/internal/service"
	"github.com/laddertrack/backend/internal/util/rekuest"
)

type AdminController struct {
	fx.In

	SyncService        *service.Sync
	MemberStatsService *service.MemberStats
}

func RegisterAdminController(admin *svr.Admin, c AdminController) {
	admin.Post("/cache/refresh/:groupID", c.RefreshMemberStats)
	admin.Delete("/cache/member-stats/:groupID", c.InvalidateMemberStats)
	admin.Delete("/cache/member-stats", c.InvalidateAllMemberStats)

	admin.Post("/cache/purge", c.PurgeCache)
	admin.Post("/sync", c.TriggerSync)
}

func (c *AdminController) RefreshMemberStats(ctx *fiber.Ctx) error {
	groupID, err := strconv.Atoi(ctx.Params("groupID"))
	if err != nil {
		return lterr.ErrInvalidReq.Msg("invalid group id: %s", ctx.Params("groupID"))
	}

	stats, err := c.MemberStatsService.RefreshMemberStats(ctx.UserContext(), groupID)
	if err != nil {
		return err
	}

	return ctx.JSON(stats)
}

func (c *AdminController) InvalidateMemberStats(ctx *fiber.Ctx) error {
	groupID, err := strconv.Atoi(ctx.Params("groupID"))
	if err != nil {
		return lterr.ErrInvalidReq.Msg("invalid group id: %s", ctx.Params("groupID"))
	}

	if err := c.MemberStatsService.InvalidateMemberStats(groupID); err != nil {
		return err
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}

func (c *AdminController) InvalidateAllMemberStats(ctx *fiber.Ctx) error {
	if err := c.MemberStatsService.InvalidateAllMemberStats(); err != nil {
		return err
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}

func (c *AdminController) PurgeCache(ctx *fiber.Ctx) error {
	var request types.PurgeCacheRequest
	if err := rekuest.ValidBody(ctx, &request); err != nil {
		return err
	}
	return modelcache.Delete(request.Name)
}

func (c *AdminController) TriggerSync(ctx *fiber.Ctx) error {
	go func() {
		stats, err := c.SyncService.SyncRoster(context.Background())
		if err != nil {
			log.Error().Err(err).Msg("manually triggered roster sync failed")
			return
		}
		log.Info().
			Int("attempted", stats.Attempted).
			Int("succeeded", stats.Succeeded).
			Int("skipped", stats.Skipped).
			Int("failed", stats.Failed).
			Msg("manually triggered roster sync finished")
	}()

	return ctx.SendStatus(fiber.StatusAccepted)
}
