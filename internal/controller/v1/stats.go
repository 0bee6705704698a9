package v1

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"github.com/laddertrack/backend/internal/model/cache"
	"github.com/laddertrack/backend/internal/pkg/cachectrl"
	"github.com/laddertrack/backend/internal/pkg/lterr"
	"github.com/laddertrack/backend/internal/server/svr"
	"github.com/laddertrack/backend/internal/service"
)

type Stats struct {
	fx.In

	MemberStatsService *service.MemberStats
}

func RegisterStats(v1 *svr.V1, c Stats) {
	v1.Get("/groups/:groupID/stats", c.GetMemberStats)
}

// @Summary  Get Member Stats for a Group
// @Tags     Stats
// @Produce  json
// @Param    groupID        path      int     true   "Group ID"
// @Param    live           query     bool    false  "Attach live league entries"
// @Param    force_refresh  query     bool    false  "Bypass the cache and recompute"
// @Success  200            {object}  v1.MemberStats
// @Failure  404            {object}  lterr.LadderError  "Group not found"
// @Failure  500            {object}  lterr.LadderError  "An unexpected error occurred"
// @Router   /api/v1/groups/{groupID}/stats [GET]
func (c *Stats) GetMemberStats(ctx *fiber.Ctx) error {
	groupID, err := strconv.Atoi(ctx.Params("groupID"))
	if err != nil {
		return lterr.ErrInvalidReq.Msg("invalid group id: %s", ctx.Params("groupID"))
	}

	includeLive := ctx.QueryBool("live", false)
	forceRefresh := ctx.QueryBool("force_refresh", false)

	stats, err := c.MemberStatsService.GetMemberStats(ctx.UserContext(), groupID, includeLive, forceRefresh)
	if err != nil {
		return err
	}

	var lastRefreshedAt time.Time
	if err := cache.LastRefreshedAt.Get(strconv.Itoa(groupID), &lastRefreshedAt); err != nil {
		lastRefreshedAt = stats.CachedAt
	}
	cachectrl.OptIn(ctx, lastRefreshedAt)

	return ctx.JSON(stats)
}
