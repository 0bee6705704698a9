package main

import (
	"github.com/laddertrack/backend/cmd/app"
)

// @title          LadderTrack API
// @version        1.0.0
// @description    Rank-telemetry backend for tracked TFT players: ingest rank observations, serve bounded per-group rank histories.
// @license.name   MIT License
// @license.url    https://opensource.org/licenses/MIT
// @BasePath       /api
func main() {
	app.Run()
}
