// Package cachectrl sets HTTP caching headers from a server-side freshness instant.
package cachectrl

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

// OptIn marks the response publicly cacheable for half an hour, matching the
// organic member-stats TTL.
func OptIn(ctx *fiber.Ctx, t time.Time) {
	OptInCustom(ctx, t, time.Minute*30)
}

func OptInCustom(ctx *fiber.Ctx, t time.Time, offset time.Duration) {
	ctx.Set(fiber.HeaderCacheControl, "public, max-age="+strconv.Itoa(int(offset.Seconds())))
	ctx.Set(fiber.HeaderExpires, t.Add(offset).Format(time.RFC1123))

	ctx.Response().Header.SetLastModified(t)
}

func OptOut(ctx *fiber.Ctx) {
	ctx.Set(fiber.HeaderCacheControl, "no-cache, no-store, must-revalidate")
	ctx.Set(fiber.HeaderPragma, "no-cache")
	ctx.Set(fiber.HeaderExpires, "0")
}
